// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tripledger/internal/models"
)

// ErrNotFound is returned (wrapped) when a trip or expense does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for trip roster and expense storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
//
// Balances and settlements are derived on every read and are never stored.
type Store interface {
	// CreateTrip persists a new trip with its initial roster.
	// The trip.ID and trip.CreatedAt fields will be populated by the store.
	CreateTrip(ctx context.Context, trip *models.Trip) error

	// GetTrip retrieves a trip and its roster in roster order.
	GetTrip(ctx context.Context, tripID string) (*models.Trip, error)

	// ListTrips returns trips the member belongs to, newest first.
	// An empty memberID lists every trip.
	ListTrips(ctx context.Context, memberID string) ([]*models.Trip, error)

	// AddTripMembers appends members to a trip roster.
	// Members already on the roster are left untouched.
	AddTripMembers(ctx context.Context, tripID string, members []models.Member) error

	// CreateExpense persists an already validated expense with its resolved splits.
	// The expense.ID and expense.CreatedAt fields will be populated by the store.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense and its splits.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// UpdateExpense replaces an expense's fields and splits.
	// TripID and CreatedAt are not changed.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListExpensesByTrip returns a trip's expenses in creation order.
	ListExpensesByTrip(ctx context.Context, tripID string) ([]models.Expense, error)

	// Close releases any resources held by the store.
	Close() error
}
