package service

import (
	"context"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/tripledger/pkg/api"
)

func splitAmounts(splits []api.Split) map[string]float64 {
	out := make(map[string]float64, len(splits))
	for _, s := range splits {
		out[s.MemberID] = s.Amount
	}
	return out
}

func TestCreateExpense_EqualSplit(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	trip := createTrip(t, alice, "Lisbon", "carol", "alice", "bob")
	occurred := time.Date(2026, 5, 2, 19, 30, 0, 0, time.UTC)

	expense := createExpense(t, alice, trip.ID, api.Expense{
		Description: "Dinner",
		Amount:      100,
		Category:    "FOOD",
		PayerID:     "alice",
		SplitType:   "EQUAL",
		OccurredAt:  &occurred,
	})

	assert.NotEmpty(t, expense.ID)
	assert.Equal(t, trip.ID, expense.TripID)
	require.NotNil(t, expense.OccurredAt)
	assert.True(t, occurred.Equal(*expense.OccurredAt))

	// Sorted by id, the last member takes the remainder.
	require.Len(t, expense.Splits, 3)
	assert.Equal(t, []string{"alice", "bob", "carol"},
		[]string{expense.Splits[0].MemberID, expense.Splits[1].MemberID, expense.Splits[2].MemberID})
	assert.InDelta(t, 33.33, expense.Splits[0].Amount, 1e-9)
	assert.InDelta(t, 33.33, expense.Splits[1].Amount, 1e-9)
	assert.InDelta(t, 33.34, expense.Splits[2].Amount, 1e-9)
}

func TestCreateExpense_CustomSplit(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	trip := createTrip(t, alice, "Lisbon", "alice", "bob", "carol")

	expense := createExpense(t, alice, trip.ID, api.Expense{
		Amount:    100,
		Category:  "ACCOMMODATION",
		PayerID:   "alice",
		SplitType: "CUSTOM",
		Splits: []api.Split{
			{MemberID: "alice", Amount: 0},
			{MemberID: "bob", Amount: 50},
			{MemberID: "carol", Amount: 50},
		},
	})

	assert.Equal(t, map[string]float64{"alice": 0, "bob": 50, "carol": 50}, splitAmounts(expense.Splits))
}

func TestCreateExpense_Rejected(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	ctx := context.Background()
	trip := createTrip(t, alice, "Lisbon", "alice", "bob", "carol")

	tests := []struct {
		name    string
		expense api.Expense
		field   string
		reason  string
	}{
		{
			name:    "splits do not add up",
			expense: api.Expense{Amount: 100, Category: "FOOD", PayerID: "alice", SplitType: "CUSTOM", Splits: []api.Split{{MemberID: "bob", Amount: 60}, {MemberID: "carol", Amount: 30}}},
			field:   "splits",
			reason:  "split_mismatch",
		},
		{
			name:    "payer not on trip",
			expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "mallory", SplitType: "EQUAL"},
			field:   "payerId",
			reason:  "unknown_member",
		},
		{
			name:    "split member not on trip",
			expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "alice", SplitType: "CUSTOM", Splits: []api.Split{{MemberID: "mallory", Amount: 10}}},
			field:   "splits[0].memberId",
			reason:  "unknown_member",
		},
		{
			name:    "zero amount",
			expense: api.Expense{Amount: 0, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
			field:   "amount",
			reason:  "invalid_amount",
		},
		{
			name:    "amount too large for cents",
			expense: api.Expense{Amount: 2e17, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
			field:   "amount",
			reason:  "invalid_amount",
		},
		{
			name:    "split amount too large for cents",
			expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "alice", SplitType: "CUSTOM", Splits: []api.Split{{MemberID: "alice", Amount: 2e17}}},
			field:   "splits[0].amount",
			reason:  "invalid_amount",
		},
		{
			name:    "unknown category",
			expense: api.Expense{Amount: 10, Category: "SOUVENIRS", PayerID: "alice", SplitType: "EQUAL"},
			field:   "category",
			reason:  "invalid_category",
		},
		{
			name:    "unknown split type",
			expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "alice", SplitType: "PERCENT"},
			field:   "splitType",
			reason:  "invalid_split_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := alice.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
				TripID:  trip.ID,
				Expense: tt.expense,
			}))
			requireInvalid(t, err, tt.field)
		})
	}

	failures, err := env.registry.Gather()
	require.NoError(t, err)
	reasons := map[string]float64{}
	for _, mf := range failures {
		if mf.GetName() != "tripledger_validation_failures_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			reasons[metric.GetLabel()[0].GetValue()] = metric.GetCounter().GetValue()
		}
	}
	for _, tt := range tests {
		assert.Positive(t, reasons[tt.reason], tt.reason)
	}
	assert.InDelta(t, 2, reasons["unknown_member"], 0)

	listed, err := alice.expenses.ListExpensesByTrip(ctx, connect.NewRequest(&api.ListExpensesByTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	assert.Empty(t, listed.Msg.Expenses)
}

func TestCreateExpense_RequestShape(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")

	_, err := alice.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
	}))
	requireInvalid(t, err, "tripId")

	count, err := testutil.GatherAndCount(env.registry, "tripledger_validation_failures_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCreateExpense_NonMember(t *testing.T) {
	env := setupTestServer(t)
	trip := createTrip(t, env.as("alice"), "Lisbon", "alice", "bob")

	_, err := env.as("mallory").expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		TripID:  trip.ID,
		Expense: api.Expense{Amount: 10, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestExpenseLifecycle(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	ctx := context.Background()
	trip := createTrip(t, alice, "Lisbon", "alice", "bob", "carol")

	first := createExpense(t, alice, trip.ID, api.Expense{Amount: 90, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"})
	second := createExpense(t, alice, trip.ID, api.Expense{Amount: 30, Category: "TRANSPORTATION", PayerID: "bob", SplitType: "EQUAL"})

	got, err := env.as("bob").expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: first.ID}))
	require.NoError(t, err)
	assert.InDelta(t, 90, got.Msg.Expense.Amount, 1e-9)
	assert.Equal(t, map[string]float64{"alice": 30, "bob": 30, "carol": 30}, splitAmounts(got.Msg.Expense.Splits))

	updated, err := alice.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseID: first.ID,
		Expense: api.Expense{
			Description: "Dinner, with tip",
			Amount:      99,
			Category:    "FOOD",
			PayerID:     "alice",
			SplitType:   "CUSTOM",
			Splits:      []api.Split{{MemberID: "bob", Amount: 49.5}, {MemberID: "carol", Amount: 49.5}},
		},
	}))
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.Msg.Expense.ID)
	assert.Equal(t, trip.ID, updated.Msg.Expense.TripID)
	assert.Equal(t, first.CreatedAt, updated.Msg.Expense.CreatedAt)

	listed, err := alice.expenses.ListExpensesByTrip(ctx, connect.NewRequest(&api.ListExpensesByTripRequest{TripID: trip.ID}))
	require.NoError(t, err)
	require.Len(t, listed.Msg.Expenses, 2)
	assert.Equal(t, first.ID, listed.Msg.Expenses[0].ID)
	assert.Equal(t, "Dinner, with tip", listed.Msg.Expenses[0].Description)
	assert.Equal(t, map[string]float64{"bob": 49.5, "carol": 49.5}, splitAmounts(listed.Msg.Expenses[0].Splits))
	assert.Equal(t, second.ID, listed.Msg.Expenses[1].ID)

	_, err = alice.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: second.ID}))
	require.NoError(t, err)

	_, err = alice.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: second.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = alice.expenses.DeleteExpense(ctx, connect.NewRequest(&api.DeleteExpenseRequest{ExpenseID: second.ID}))
	require.Error(t, err)
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))
}

func TestUpdateExpense_Rejected(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	ctx := context.Background()
	trip := createTrip(t, alice, "Lisbon", "alice", "bob")
	expense := createExpense(t, alice, trip.ID, api.Expense{Amount: 20, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"})

	_, err := alice.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseID: expense.ID,
		Expense:   api.Expense{Amount: 20, Category: "FOOD", PayerID: "alice", SplitType: "CUSTOM", Splits: []api.Split{{MemberID: "bob", Amount: 5}}},
	}))
	requireInvalid(t, err, "splits")

	got, err := alice.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)
	assert.Equal(t, "EQUAL", got.Msg.Expense.SplitType)

	_, err = env.as("mallory").expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseID: expense.ID,
		Expense:   api.Expense{Amount: 1, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
	}))
	require.Error(t, err)
	assert.Equal(t, connect.CodePermissionDenied, connect.CodeOf(err))
}

func TestEqualSplitsStayFixedWhenMembersJoin(t *testing.T) {
	env := setupTestServer(t)
	alice := env.as("alice")
	ctx := context.Background()
	trip := createTrip(t, alice, "Lisbon", "alice", "bob", "carol")

	expense := createExpense(t, alice, trip.ID, api.Expense{Amount: 90, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"})

	_, err := alice.trips.AddMembers(ctx, connect.NewRequest(&api.AddMembersRequest{TripID: trip.ID, Members: members("dave")}))
	require.NoError(t, err)

	got, err := alice.expenses.GetExpense(ctx, connect.NewRequest(&api.GetExpenseRequest{ExpenseID: expense.ID}))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"alice": 30, "bob": 30, "carol": 30}, splitAmounts(got.Msg.Expense.Splits))

	// Editing an EQUAL expense resolves it again over the current roster.
	updated, err := alice.expenses.UpdateExpense(ctx, connect.NewRequest(&api.UpdateExpenseRequest{
		ExpenseID: expense.ID,
		Expense:   api.Expense{Amount: 90, Category: "FOOD", PayerID: "alice", SplitType: "EQUAL"},
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"alice": 22.5, "bob": 22.5, "carol": 22.5, "dave": 22.5}, splitAmounts(updated.Msg.Expense.Splits))
}
