package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/money"
	"github.com/mmynk/tripledger/internal/storage"
)

const expenseColumns = `id, trip_id, description, amount_cents, category, payer_id, split_type, occurred_at, created_at`

// CreateExpense persists a new expense and its resolved splits.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (`+expenseColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.TripID, expense.Description, int64(expense.Amount),
		string(expense.Category), expense.PayerID, string(expense.SplitType),
		occurredAtValue(expense.OccurredAt), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	if err := insertSplits(ctx, tx, expense.ID, expense.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its splits.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`,
		expenseID,
	)
	expense, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, amount_cents FROM expense_splits WHERE expense_id = ? ORDER BY member_id",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		var amount int64
		if err := rows.Scan(&split.MemberID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.Cents(amount)
		expense.Splits = append(expense.Splits, split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return expense, nil
}

// UpdateExpense replaces an expense's fields and splits.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount_cents = ?, category = ?, payer_id = ?, split_type = ?, occurred_at = ?
		 WHERE id = ?`,
		expense.Description, int64(expense.Amount), string(expense.Category), expense.PayerID,
		string(expense.SplitType), occurredAtValue(expense.OccurredAt), expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	} else if n == 0 {
		return fmt.Errorf("expense %s: %w", expense.ID, storage.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to delete splits: %w", err)
	}
	if err := insertSplits(ctx, tx, expense.ID, expense.Splits); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteExpense removes an expense by ID. Splits go with it (ON DELETE CASCADE).
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %s: %w", expenseID, storage.ErrNotFound)
	}
	return nil
}

// ListExpensesByTrip retrieves all expenses of a trip in creation order.
func (s *SQLiteStore) ListExpensesByTrip(ctx context.Context, tripID string) ([]models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE trip_id = ? ORDER BY created_at, rowid`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	index := make(map[string]int)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		index[expense.ID] = len(expenses)
		expenses = append(expenses, *expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	if len(expenses) == 0 {
		return expenses, nil
	}

	// One query for all splits of the trip rather than one per expense.
	splitRows, err := s.db.QueryContext(ctx,
		`SELECT s.expense_id, s.member_id, s.amount_cents
		 FROM expense_splits s JOIN expenses e ON e.id = s.expense_id
		 WHERE e.trip_id = ?
		 ORDER BY s.expense_id, s.member_id`,
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list splits: %w", err)
	}
	defer splitRows.Close()

	for splitRows.Next() {
		var (
			expenseID string
			split     models.ExpenseSplit
			amount    int64
		)
		if err := splitRows.Scan(&expenseID, &split.MemberID, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan split: %w", err)
		}
		split.Amount = money.Cents(amount)
		if i, ok := index[expenseID]; ok {
			expenses[i].Splits = append(expenses[i].Splits, split)
		}
	}
	if err := splitRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate splits: %w", err)
	}
	return expenses, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExpense(row scanner) (*models.Expense, error) {
	var (
		expense             models.Expense
		amount              int64
		category, splitType string
		occurredAt          sql.NullInt64
	)
	err := row.Scan(&expense.ID, &expense.TripID, &expense.Description, &amount,
		&category, &expense.PayerID, &splitType, &occurredAt, &expense.CreatedAt)
	if err != nil {
		return nil, err
	}
	expense.Amount = money.Cents(amount)
	expense.Category = models.Category(category)
	expense.SplitType = models.SplitType(splitType)
	if occurredAt.Valid {
		expense.OccurredAt = time.Unix(occurredAt.Int64, 0).UTC()
	}
	return &expense, nil
}

func insertSplits(ctx context.Context, tx *sql.Tx, expenseID string, splits []models.ExpenseSplit) error {
	for _, split := range splits {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expense_splits (expense_id, member_id, amount_cents) VALUES (?, ?, ?)",
			expenseID, split.MemberID, int64(split.Amount),
		)
		if err != nil {
			return fmt.Errorf("failed to insert split: %w", err)
		}
	}
	return nil
}

func occurredAtValue(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.Unix()
}
