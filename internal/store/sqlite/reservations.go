package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/store"
)

// reservationColumns is the ordered list of columns selected in reservation
// queries. Must match the scan order in scanReservation.
const reservationColumns = `id, created_at, updated_at,
	organizer_id, restaurant_name, restaurant_address, starts_at, party_size, status`

// scanReservation scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Reservation.
func scanReservation(scanner interface{ Scan(dest ...any) error }) (*domain.Reservation, error) {
	var res domain.Reservation

	var (
		createdAt string
		updatedAt string
		startsAt  string
		status    string
	)

	err := scanner.Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
		&res.OrganizerID,
		&res.RestaurantName,
		&res.RestaurantAddress,
		&startsAt,
		&res.PartySize,
		&status,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	res.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	res.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	res.StartsAt, err = parseTime(startsAt)
	if err != nil {
		return nil, err
	}

	res.Status = domain.ReservationStatus(status)

	return &res, nil
}

func createReservation(ctx context.Context, q querier, res *domain.Reservation) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO reservations (
			id, created_at, updated_at,
			organizer_id, restaurant_name, restaurant_address, starts_at, party_size, status
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID,
		formatTime(res.CreatedAt),
		formatTime(res.UpdatedAt),
		res.OrganizerID,
		res.RestaurantName,
		res.RestaurantAddress,
		formatTime(res.StartsAt),
		res.PartySize,
		string(res.Status),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func getReservation(ctx context.Context, q querier, id string) (*domain.Reservation, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)

	res, err := scanReservation(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// transitionReservation moves a reservation from one status to another with
// a guarded update. The WHERE clause re-checks the source status so a lost
// race surfaces as store.ErrConflict rather than a silent overwrite.
func transitionReservation(ctx context.Context, q querier, id string, from, to domain.ReservationStatus) error {
	result, err := q.ExecContext(ctx, `
		UPDATE reservations SET status = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		string(to),
		formatTime(time.Now()),
		id,
		string(from),
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		// Distinguish a missing row from a status mismatch.
		if _, err := getReservation(ctx, q, id); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return nil
}

// CreateReservation inserts a new reservation.
// Returns store.ErrAlreadyExists if the ID is already taken.
func (s *Store) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	return createReservation(ctx, s.db, res)
}

// GetReservation retrieves a reservation by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return getReservation(ctx, s.db, id)
}

// TransitionReservation moves a reservation along a status edge.
// Returns store.ErrConflict if the reservation is no longer in the source
// status, store.ErrNotFound if it does not exist.
func (s *Store) TransitionReservation(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	return transitionReservation(ctx, s.db, id, from, to)
}

// CreateReservation inserts a new reservation within the transaction.
func (t *Tx) CreateReservation(ctx context.Context, res *domain.Reservation) error {
	return createReservation(ctx, t.tx, res)
}

// GetReservation retrieves a reservation by ID within the transaction.
func (t *Tx) GetReservation(ctx context.Context, id string) (*domain.Reservation, error) {
	return getReservation(ctx, t.tx, id)
}

// TransitionReservation moves a reservation along a status edge within the
// transaction.
func (t *Tx) TransitionReservation(ctx context.Context, id string, from, to domain.ReservationStatus) error {
	return transitionReservation(ctx, t.tx, id, from, to)
}
