package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func createTrip(t *testing.T, store *SQLiteStore, ids ...string) *models.Trip {
	t.Helper()
	trip := &models.Trip{Name: "Lisbon"}
	for _, id := range ids {
		trip.Members = append(trip.Members, models.Member{ID: id, DisplayName: "Name " + id})
	}
	require.NoError(t, store.CreateTrip(context.Background(), trip))
	return trip
}

func TestSQLiteStore_Trips(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateTrip generates ID and timestamp", func(t *testing.T) {
		trip := createTrip(t, store, "alice", "bob")
		assert.NotEmpty(t, trip.ID)
		assert.NotZero(t, trip.CreatedAt)
	})

	t.Run("GetTrip returns roster in order", func(t *testing.T) {
		trip := createTrip(t, store, "carol", "alice", "bob")

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lisbon", got.Name)
		assert.Equal(t, []string{"carol", "alice", "bob"}, models.MemberIDs(got.Members))
		assert.Equal(t, "Name carol", got.Members[0].DisplayName)
	})

	t.Run("GetTrip returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetTrip(ctx, "nonexistent-id")
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("AddTripMembers appends and skips existing", func(t *testing.T) {
		trip := createTrip(t, store, "alice")

		err := store.AddTripMembers(ctx, trip.ID, []models.Member{{ID: "alice"}, {ID: "dave"}, {ID: "erin"}})
		require.NoError(t, err)

		got, err := store.GetTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice", "dave", "erin"}, models.MemberIDs(got.Members))
	})

	t.Run("AddTripMembers on missing trip", func(t *testing.T) {
		err := store.AddTripMembers(ctx, "nope", []models.Member{{ID: "x"}})
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("ListTrips filters by member", func(t *testing.T) {
		mine := createTrip(t, store, "zed", "yan")
		createTrip(t, store, "someone-else")

		trips, err := store.ListTrips(ctx, "zed")
		require.NoError(t, err)
		require.Len(t, trips, 1)
		assert.Equal(t, mine.ID, trips[0].ID)
		assert.Len(t, trips[0].Members, 2)

		all, err := store.ListTrips(ctx, "")
		require.NoError(t, err)
		assert.GreaterOrEqual(t, len(all), 2)
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "A", "B", "C")

	occurred := time.Date(2026, 6, 1, 19, 30, 0, 0, time.UTC)
	newExpense := func() *models.Expense {
		return &models.Expense{
			TripID:      trip.ID,
			Description: "Dinner",
			Amount:      9000,
			Category:    models.CategoryFood,
			PayerID:     "A",
			SplitType:   models.SplitEqual,
			Splits: []models.ExpenseSplit{
				{MemberID: "A", Amount: 3000},
				{MemberID: "B", Amount: 3000},
				{MemberID: "C", Amount: 3000},
			},
			OccurredAt: occurred,
		}
	}

	t.Run("CreateExpense and GetExpense round trip", func(t *testing.T) {
		expense := newExpense()
		require.NoError(t, store.CreateExpense(ctx, expense))
		assert.NotEmpty(t, expense.ID)
		assert.NotZero(t, expense.CreatedAt)

		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, expense, got)
	})

	t.Run("missing OccurredAt stays zero", func(t *testing.T) {
		expense := newExpense()
		expense.OccurredAt = time.Time{}
		require.NoError(t, store.CreateExpense(ctx, expense))

		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.True(t, got.OccurredAt.IsZero())
	})

	t.Run("UpdateExpense replaces splits", func(t *testing.T) {
		expense := newExpense()
		require.NoError(t, store.CreateExpense(ctx, expense))

		expense.Amount = 5000
		expense.SplitType = models.SplitCustom
		expense.Category = models.CategoryActivities
		expense.Splits = []models.ExpenseSplit{{MemberID: "B", Amount: 5000}}
		require.NoError(t, store.UpdateExpense(ctx, expense))

		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, expense, got)
	})

	t.Run("UpdateExpense on missing expense", func(t *testing.T) {
		expense := newExpense()
		expense.ID = "missing"
		assert.ErrorIs(t, store.UpdateExpense(ctx, expense), storage.ErrNotFound)
	})

	t.Run("DeleteExpense", func(t *testing.T) {
		expense := newExpense()
		require.NoError(t, store.CreateExpense(ctx, expense))
		require.NoError(t, store.DeleteExpense(ctx, expense.ID))

		_, err := store.GetExpense(ctx, expense.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteExpense(ctx, expense.ID), storage.ErrNotFound)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		expense := newExpense()
		expense.Amount = 0
		assert.Error(t, store.CreateExpense(ctx, expense))
	})
}

func TestSQLiteStore_ListExpensesByTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	trip := createTrip(t, store, "A", "B")
	other := createTrip(t, store, "A", "B")

	for i, amount := range []int64{100, 200, 300} {
		e := &models.Expense{
			TripID:    trip.ID,
			Amount:    money.Cents(amount),
			Category:  models.CategoryOther,
			PayerID:   "A",
			SplitType: models.SplitCustom,
			CreatedAt: int64(1000 + i),
		}
		e.Splits = []models.ExpenseSplit{{MemberID: "A", Amount: e.Amount / 2}, {MemberID: "B", Amount: e.Amount / 2}}
		require.NoError(t, store.CreateExpense(ctx, e))
	}
	require.NoError(t, store.CreateExpense(ctx, &models.Expense{
		TripID: other.ID, Amount: 999, Category: models.CategoryOther, PayerID: "B",
		SplitType: models.SplitCustom, Splits: []models.ExpenseSplit{{MemberID: "B", Amount: 999}},
	}))

	expenses, err := store.ListExpensesByTrip(ctx, trip.ID)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	for i, want := range []int64{100, 200, 300} {
		assert.Equal(t, money.Cents(want), expenses[i].Amount)
		require.Len(t, expenses[i].Splits, 2)
		assert.Equal(t, "A", expenses[i].Splits[0].MemberID)
	}

	empty, err := store.ListExpensesByTrip(ctx, "no-such-trip")
	require.NoError(t, err)
	assert.Empty(t, empty)

	t.Run("deleting the trip cascades", func(t *testing.T) {
		_, err := store.db.ExecContext(ctx, "DELETE FROM trips WHERE id = ?", trip.ID)
		require.NoError(t, err)

		expenses, err := store.ListExpensesByTrip(ctx, trip.ID)
		require.NoError(t, err)
		assert.Empty(t, expenses)
	})
}
