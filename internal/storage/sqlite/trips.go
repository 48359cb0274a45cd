package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tripledger/internal/models"
	"github.com/mmynk/tripledger/internal/storage"
)

// CreateTrip persists a new trip and its roster.
func (s *SQLiteStore) CreateTrip(ctx context.Context, trip *models.Trip) error {
	// Generate IDs if not set
	if trip.ID == "" {
		trip.ID = uuid.New().String()
	}
	if trip.CreatedAt == 0 {
		trip.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO trips (id, name, created_at) VALUES (?, ?, ?)",
		trip.ID, trip.Name, trip.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert trip: %w", err)
	}

	if err := insertMembers(ctx, tx, trip.ID, trip.Members, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetTrip retrieves a trip by ID, including its roster.
func (s *SQLiteStore) GetTrip(ctx context.Context, tripID string) (*models.Trip, error) {
	trip := &models.Trip{}
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM trips WHERE id = ?",
		tripID,
	).Scan(&trip.ID, &trip.Name, &trip.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}

	members, err := s.listMembers(ctx, tripID)
	if err != nil {
		return nil, err
	}
	trip.Members = members
	return trip, nil
}

// ListTrips returns the trips memberID belongs to (all trips if empty), newest first.
func (s *SQLiteStore) ListTrips(ctx context.Context, memberID string) ([]*models.Trip, error) {
	query := "SELECT id, name, created_at FROM trips ORDER BY created_at DESC, id"
	args := []any{}
	if memberID != "" {
		query = `SELECT t.id, t.name, t.created_at FROM trips t
			JOIN trip_members m ON m.trip_id = t.id
			WHERE m.member_id = ?
			ORDER BY t.created_at DESC, t.id`
		args = append(args, memberID)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}
	defer rows.Close()

	var trips []*models.Trip
	for rows.Next() {
		trip := &models.Trip{}
		if err := rows.Scan(&trip.ID, &trip.Name, &trip.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, trip)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trips: %w", err)
	}

	for _, trip := range trips {
		if trip.Members, err = s.listMembers(ctx, trip.ID); err != nil {
			return nil, err
		}
	}
	return trips, nil
}

// AddTripMembers appends new members to the end of a trip roster.
func (s *SQLiteStore) AddTripMembers(ctx context.Context, tripID string, members []models.Member) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM trips WHERE id = ?", tripID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("trip %s: %w", tripID, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to check trip existence: %w", err)
	}

	var next int
	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM trip_members WHERE trip_id = ?",
		tripID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read roster position: %w", err)
	}

	if err := insertMembers(ctx, tx, tripID, members, next); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, tripID string, members []models.Member, position int) error {
	for _, m := range members {
		res, err := tx.ExecContext(ctx,
			`INSERT OR IGNORE INTO trip_members (trip_id, member_id, display_name, position)
			 VALUES (?, ?, ?, ?)`,
			tripID, m.ID, m.DisplayName, position,
		)
		if err != nil {
			return fmt.Errorf("failed to insert member: %w", err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			position++
		}
	}
	return nil
}

func (s *SQLiteStore) listMembers(ctx context.Context, tripID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT member_id, display_name FROM trip_members WHERE trip_id = ? ORDER BY position",
		tripID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.DisplayName); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate members: %w", err)
	}
	return members, nil
}
