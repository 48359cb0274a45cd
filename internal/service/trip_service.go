package service

import (
	"context"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/calculator"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/middleware"
	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/pkg/api"
)

// TripService implements the Connect TripService.
type TripService struct {
	store   storage.Store
	metrics *metrics.Metrics
}

var _ api.TripServiceHandler = (*TripService)(nil)

// NewTripService creates a new TripService with the given storage backend.
// m may be nil.
func NewTripService(store storage.Store, m *metrics.Metrics) *TripService {
	return &TripService{store: store, metrics: m}
}

// CreateTrip creates a trip with its initial roster. The caller must be on it.
func (s *TripService) CreateTrip(ctx context.Context, req *connect.Request[api.CreateTripRequest]) (*connect.Response[api.CreateTripResponse], error) {
	slog.Info("CreateTrip request received",
		"name", req.Msg.Name,
		"members_count", len(req.Msg.Members),
	)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	trip := &models.Trip{
		Name:    req.Msg.Name,
		Members: toMembers(req.Msg.Members),
	}
	if err := calculator.CheckRoster(trip.Members); err != nil {
		return nil, ledgerError(s.metrics, "CreateTrip", err)
	}

	caller := middleware.GetMemberID(ctx)
	if caller != "" && !trip.HasMember(caller) {
		return nil, connect.NewError(connect.CodePermissionDenied, fmt.Errorf("you must be a member of the trip you create"))
	}

	if err := s.store.CreateTrip(ctx, trip); err != nil {
		return nil, storageError("CreateTrip", err)
	}

	slog.Info("Trip created", "trip_id", trip.ID)

	return connect.NewResponse(&api.CreateTripResponse{Trip: fromTrip(trip)}), nil
}

// GetTrip retrieves a trip and its roster.
func (s *TripService) GetTrip(ctx context.Context, req *connect.Request[api.GetTripRequest]) (*connect.Response[api.GetTripResponse], error) {
	slog.Info("GetTrip request received", "trip_id", req.Msg.TripID)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	trip, err := authorizeTrip(ctx, s.store, "GetTrip", req.Msg.TripID)
	if err != nil {
		return nil, err
	}

	return connect.NewResponse(&api.GetTripResponse{Trip: fromTrip(trip)}), nil
}

// ListTrips lists the caller's trips, newest first.
func (s *TripService) ListTrips(ctx context.Context, _ *connect.Request[api.ListTripsRequest]) (*connect.Response[api.ListTripsResponse], error) {
	caller := middleware.GetMemberID(ctx)
	slog.Info("ListTrips request received", "member_id", caller)

	trips, err := s.store.ListTrips(ctx, caller)
	if err != nil {
		return nil, storageError("ListTrips", err, "member_id", caller)
	}

	out := make([]*api.Trip, len(trips))
	for i, trip := range trips {
		out[i] = fromTrip(trip)
	}

	slog.Info("ListTrips successful", "count", len(out))

	return connect.NewResponse(&api.ListTripsResponse{Trips: out}), nil
}

// AddMembers appends members to a trip roster. Members cannot be removed,
// so expenses already recorded stay valid.
func (s *TripService) AddMembers(ctx context.Context, req *connect.Request[api.AddMembersRequest]) (*connect.Response[api.AddMembersResponse], error) {
	slog.Info("AddMembers request received",
		"trip_id", req.Msg.TripID,
		"members_count", len(req.Msg.Members),
	)

	if err := checkRequest(s.metrics, req.Msg); err != nil {
		return nil, err
	}

	members := toMembers(req.Msg.Members)
	if err := calculator.CheckRoster(members); err != nil {
		return nil, ledgerError(s.metrics, "AddMembers", err, "trip_id", req.Msg.TripID)
	}

	if _, err := authorizeTrip(ctx, s.store, "AddMembers", req.Msg.TripID); err != nil {
		return nil, err
	}

	if err := s.store.AddTripMembers(ctx, req.Msg.TripID, members); err != nil {
		return nil, storageError("AddMembers", err, "trip_id", req.Msg.TripID)
	}

	trip, err := s.store.GetTrip(ctx, req.Msg.TripID)
	if err != nil {
		return nil, storageError("AddMembers", err, "trip_id", req.Msg.TripID)
	}

	slog.Info("Members added", "trip_id", trip.ID, "roster_size", len(trip.Members))

	return connect.NewResponse(&api.AddMembersResponse{Trip: fromTrip(trip)}), nil
}
