package sqlite

import (
	"context"

	"github.com/tablematch/tablematch-server/internal/domain"
)

// ensureCommitment inserts a calendar commitment if one does not already
// exist for the (reservation, user) pair. Returns whether a new row was
// created, so callers can fan out delivery only for fresh commitments.
func ensureCommitment(ctx context.Context, q querier, c *domain.CalendarCommitment) (bool, error) {
	result, err := q.ExecContext(ctx, `
		INSERT INTO calendar_commitments (id, reservation_id, user_id, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (reservation_id, user_id) DO NOTHING`,
		c.ID,
		c.ReservationID,
		c.UserID,
		formatTime(c.CreatedAt),
	)
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func listCommitmentsByReservation(ctx context.Context, q querier, reservationID string) ([]*domain.CalendarCommitment, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, reservation_id, user_id, created_at
		FROM calendar_commitments
		WHERE reservation_id = ?
		ORDER BY created_at, id`,
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commitments []*domain.CalendarCommitment
	for rows.Next() {
		var c domain.CalendarCommitment
		var createdAt string
		if err := rows.Scan(&c.ID, &c.ReservationID, &c.UserID, &createdAt); err != nil {
			return nil, err
		}
		c.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		commitments = append(commitments, &c)
	}
	return commitments, rows.Err()
}

// EnsureCommitment creates a calendar commitment if absent. The boolean
// reports whether this call created it.
func (s *Store) EnsureCommitment(ctx context.Context, c *domain.CalendarCommitment) (bool, error) {
	return ensureCommitment(ctx, s.db, c)
}

// ListCommitmentsByReservation returns all commitments for a reservation.
func (s *Store) ListCommitmentsByReservation(ctx context.Context, reservationID string) ([]*domain.CalendarCommitment, error) {
	return listCommitmentsByReservation(ctx, s.db, reservationID)
}

// EnsureCommitment creates a calendar commitment within the transaction.
func (t *Tx) EnsureCommitment(ctx context.Context, c *domain.CalendarCommitment) (bool, error) {
	return ensureCommitment(ctx, t.tx, c)
}

// ListCommitmentsByReservation returns all commitments for a reservation
// within the transaction.
func (t *Tx) ListCommitmentsByReservation(ctx context.Context, reservationID string) ([]*domain.CalendarCommitment, error) {
	return listCommitmentsByReservation(ctx, t.tx, reservationID)
}
