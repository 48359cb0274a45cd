package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/internal/telemetry"
	"github.com/mmynk/tripledger/pkg/api"
)

// LedgerService implements the Connect LedgerService: balances, settlements
// and category totals, derived on every call and never stored.
type LedgerService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

var _ api.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a new LedgerService. m may be nil.
func NewLedgerService(store storage.Store, m *metrics.Metrics) *LedgerService {
	return &LedgerService{store: store, metrics: m}
}

// Settle computes the ledger for a snapshot supplied in the request.
// Nothing is read from or written to storage.
func (s *LedgerService) Settle(ctx context.Context, req *connect.Request[api.SettleRequest]) (*connect.Response[api.SettleResponse], error) {
	slog.Info("Settle request received",
		"trip_id", req.Msg.TripID,
		"expenses_count", len(req.Msg.Expenses),
		"members_count", len(req.Msg.Members),
	)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	summary, err := settleSnapshot(ctx, req.Msg)
	if err != nil {
		return nil, ledgerError(s.metrics, "Settle", err, "trip_id", req.Msg.TripID)
	}
	s.metrics.ObserveSettlement(len(summary.Settlements))

	slog.Info("Settle successful",
		"trip_id", req.Msg.TripID,
		"settlements_count", len(summary.Settlements),
	)

	return connect.NewResponse(&api.SettleResponse{Summary: *summary}), nil
}

// GetTripSummary computes the ledger over a trip's stored expenses.
func (s *LedgerService) GetTripSummary(ctx context.Context, req *connect.Request[api.GetTripSummaryRequest]) (*connect.Response[api.GetTripSummaryResponse], error) {
	slog.Info("GetTripSummary request received", "trip_id", req.Msg.TripID)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	trip, err := authorizeTrip(ctx, s.store, "GetTripSummary", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpensesByTrip(ctx, trip.ID)
	if err != nil {
		return nil, storageError("GetTripSummary", err, "trip_id", trip.ID)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "ledger.GetTripSummary", trace.WithAttributes(
		attribute.String("trip.id", trip.ID),
		attribute.Int("expenses.count", len(expenses)),
		attribute.Int("members.count", len(trip.Members)),
	))
	defer span.End()

	// Stored expenses were validated on write; only the ledger invariant can fail here.
	summary, err := summarize(ctx, expenses, trip.Members)
	if err != nil {
		return nil, ledgerError(s.metrics, "GetTripSummary", err, "trip_id", trip.ID)
	}
	s.metrics.ObserveSettlement(len(summary.Settlements))

	return connect.NewResponse(&api.GetTripSummaryResponse{
		TripID:  trip.ID,
		Summary: fromSummary(summary),
	}), nil
}

// SettleSnapshot runs the full engine over a request snapshot: request shape
// checks, split validation (EQUAL expenses without splits are resolved against
// the request roster), balances, settlement and category totals.
func SettleSnapshot(ctx context.Context, req *api.SettleRequest) (*api.Summary, error) {
	if err := checkRequest(nil, req); err != nil {
		return nil, err
	}
	return settleSnapshot(ctx, req)
}

func settleSnapshot(ctx context.Context, req *api.SettleRequest) (*api.Summary, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "ledger.Settle", trace.WithAttributes(
		attribute.String("trip.id", req.TripID),
		attribute.Int("expenses.count", len(req.Expenses)),
		attribute.Int("members.count", len(req.Members)),
	))
	defer span.End()

	members := toMembers(req.Members)
	expenses, err := toExpenses(req.Expenses)
	if err == nil {
		expenses, err = calculator.ResolveSnapshot(expenses, members)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "invalid snapshot")
		return nil, err
	}

	summary, err := summarize(ctx, expenses, members)
	if err != nil {
		return nil, err
	}
	out := fromSummary(summary)
	return &out, nil
}

func summarize(ctx context.Context, expenses []models.Expense, members []models.Member) (*calculator.Summary, error) {
	span := trace.SpanFromContext(ctx)

	summary, err := calculator.Summarize(expenses, members)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "inconsistent ledger")
		return nil, err
	}

	span.SetAttributes(attribute.Int("settlements.count", len(summary.Settlements)))
	return summary, nil
}
