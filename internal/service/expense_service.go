package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/pkg/api"
)

// ExpenseService implements the Connect ExpenseService.
// Every write goes through the split validator before it is stored.
type ExpenseService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

var _ api.ExpenseServiceHandler = (*ExpenseService)(nil)

// NewExpenseService creates a new ExpenseService. m may be nil.
func NewExpenseService(store storage.Store, m *metrics.Metrics) *ExpenseService {
	return &ExpenseService{store: store, metrics: m}
}

// CreateExpense validates an expense against the trip roster and stores it
// with its resolved splits.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	slog.Info("CreateExpense request received",
		"trip_id", req.Msg.TripID,
		"amount", req.Msg.Expense.Amount,
		"split_type", req.Msg.Expense.SplitType,
	)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	trip, err := authorizeTrip(ctx, s.store, "CreateExpense", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	expense, err := toExpense(req.Msg.Expense)
	if err != nil {
		return nil, ledgerError(s.metrics, "CreateExpense", err, "trip_id", trip.ID)
	}
	expense.ID = ""
	expense.TripID = trip.ID
	expense.CreatedAt = 0

	validated, err := calculator.ValidateExpense(expense, trip.Members)
	if err != nil {
		return nil, ledgerError(s.metrics, "CreateExpense", err, "trip_id", trip.ID)
	}
	if err := s.checkTripTotal(ctx, "CreateExpense", &validated); err != nil {
		return nil, err
	}

	if err := s.store.CreateExpense(ctx, &validated); err != nil {
		return nil, storageError("CreateExpense", err, "trip_id", trip.ID)
	}

	slog.Info("Expense created", "trip_id", trip.ID, "expense_id", validated.ID)

	return connect.NewResponse(&api.CreateExpenseResponse{Expense: fromExpense(&validated)}), nil
}

// GetExpense retrieves an expense with its stored splits.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	slog.Info("GetExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	expense, _, err := s.loadExpense(ctx, "GetExpense", req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: fromExpense(expense)}), nil
}

// UpdateExpense replaces an expense's fields after re-validating it. An EQUAL
// expense is re-resolved against the roster as it is now.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	slog.Info("UpdateExpense request received",
		"expense_id", req.Msg.ExpenseID,
		"amount", req.Msg.Expense.Amount,
		"split_type", req.Msg.Expense.SplitType,
	)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	existing, trip, err := s.loadExpense(ctx, "UpdateExpense", req.Msg.ExpenseID)
	if err != nil {
		return nil, err
	}

	expense, err := toExpense(req.Msg.Expense)
	if err != nil {
		return nil, ledgerError(s.metrics, "UpdateExpense", err, "expense_id", existing.ID)
	}
	expense.ID = existing.ID
	expense.TripID = existing.TripID
	expense.CreatedAt = existing.CreatedAt

	validated, err := calculator.ValidateExpense(expense, trip.Members)
	if err != nil {
		return nil, ledgerError(s.metrics, "UpdateExpense", err, "expense_id", existing.ID)
	}
	if err := s.checkTripTotal(ctx, "UpdateExpense", &validated); err != nil {
		return nil, err
	}

	if err := s.store.UpdateExpense(ctx, &validated); err != nil {
		return nil, storageError("UpdateExpense", err, "expense_id", existing.ID)
	}

	slog.Info("Expense updated", "trip_id", trip.ID, "expense_id", validated.ID)

	return connect.NewResponse(&api.UpdateExpenseResponse{Expense: fromExpense(&validated)}), nil
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	slog.Info("DeleteExpense request received", "expense_id", req.Msg.ExpenseID)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	if _, _, err := s.loadExpense(ctx, "DeleteExpense", req.Msg.ExpenseID); err != nil {
		return nil, err
	}

	if err := s.store.DeleteExpense(ctx, req.Msg.ExpenseID); err != nil {
		return nil, storageError("DeleteExpense", err, "expense_id", req.Msg.ExpenseID)
	}

	slog.Info("Expense deleted", "expense_id", req.Msg.ExpenseID)

	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpensesByTrip lists a trip's expenses in the order they were recorded.
func (s *ExpenseService) ListExpensesByTrip(ctx context.Context, req *connect.Request[api.ListExpensesByTripRequest]) (*connect.Response[api.ListExpensesByTripResponse], error) {
	slog.Info("ListExpensesByTrip request received", "trip_id", req.Msg.TripID)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	if _, err := authorizeTrip(ctx, s.store, "ListExpensesByTrip", req.Msg.TripID); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storageError("ListExpensesByTrip", err, "trip_id", req.Msg.TripID)
	}

	out := make([]*api.Expense, len(expenses))
	for i := range expenses {
		out[i] = fromExpense(&expenses[i])
	}

	slog.Info("ListExpensesByTrip successful", "trip_id", req.Msg.TripID, "count", len(out))

	return connect.NewResponse(&api.ListExpensesByTripResponse{Expenses: out}), nil
}

// loadExpense fetches an expense and the trip it belongs to, checking the
// caller is a member of that trip.
func (s *ExpenseService) loadExpense(ctx context.Context, op, expenseID string) (*models.Expense, *models.Trip, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, nil, storageError(op, err, "expense_id", expenseID)
	}
	trip, err := authorizeTrip(ctx, s.store, op, expense.TripID)
	if err != nil {
		return nil, nil, err
	}
	return expense, trip, nil
}

// checkTripTotal rejects a write that would push the trip's expense total past
// the ledger limit. An expense with an id replaces its stored version.
func (s *ExpenseService) checkTripTotal(ctx context.Context, op string, expense *models.Expense) error {
	expenses, err := s.store.ListExpensesByTrip(ctx, expense.TripID)
	if err != nil {
		return storageError(op, err, "trip_id", expense.TripID)
	}

	replaced := false
	for i := range expenses {
		if expense.ID != "" && expenses[i].ID == expense.ID {
			expenses[i] = *expense
			replaced = true
		}
	}
	if !replaced {
		expenses = append(expenses, *expense)
	}

	if err := calculator.CheckLedgerTotal(expenses); err != nil {
		return ledgerError(s.metrics, op, err, "trip_id", expense.TripID)
	}
	return nil
}
