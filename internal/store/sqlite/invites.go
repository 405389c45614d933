package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/store"
)

// inviteColumns is the ordered list of columns selected in invite queries.
// Must match the scan order in scanInvite.
const inviteColumns = `id, created_at, updated_at,
	reservation_id, phone, invitee_id, rsvp, responded_at`

// scanInvite scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Invite.
func scanInvite(scanner interface{ Scan(dest ...any) error }) (*domain.Invite, error) {
	var inv domain.Invite

	var (
		createdAt   string
		updatedAt   string
		inviteeID   sql.NullString
		rsvp        string
		respondedAt sql.NullString
	)

	err := scanner.Scan(
		&inv.ID,
		&createdAt,
		&updatedAt,
		&inv.ReservationID,
		&inv.Phone,
		&inviteeID,
		&rsvp,
		&respondedAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	inv.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	inv.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	inv.RespondedAt, err = parseNullableTime(respondedAt)
	if err != nil {
		return nil, err
	}

	inv.RSVP = domain.RSVPStatus(rsvp)

	if inviteeID.Valid {
		inv.InviteeID = inviteeID.String
	}

	return &inv, nil
}

func createInvite(ctx context.Context, q querier, inv *domain.Invite) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO invites (
			id, created_at, updated_at,
			reservation_id, phone, invitee_id, rsvp, responded_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		formatTime(inv.CreatedAt),
		formatTime(inv.UpdatedAt),
		inv.ReservationID,
		inv.Phone,
		nullString(inv.InviteeID),
		string(inv.RSVP),
		nullTimeString(inv.RespondedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func getInvite(ctx context.Context, q querier, id string) (*domain.Invite, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE id = ?`, id)

	inv, err := scanInvite(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return inv, nil
}

func listInvitesByReservation(ctx context.Context, q querier, reservationID string) ([]*domain.Invite, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+inviteColumns+` FROM invites WHERE reservation_id = ? ORDER BY created_at, id`,
		reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []*domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

// bindInvitee sets the invitee identity with a one-way compare-and-set:
// bind if unset, no-op if already bound to the same identity, conflict if
// bound to anyone else. The WHERE clause makes the check-and-set atomic.
func bindInvitee(ctx context.Context, q querier, id, identity string) error {
	result, err := q.ExecContext(ctx, `
		UPDATE invites SET invitee_id = ?, updated_at = ?
		WHERE id = ? AND (invitee_id IS NULL OR invitee_id = ?)`,
		identity,
		formatTime(time.Now()),
		id,
		identity,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := getInvite(ctx, q, id); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return nil
}

// setInviteRSVP moves an invite out of pending. The guarded update only
// matches pending rows, so a second responder observes store.ErrConflict
// instead of flipping an already-settled invite.
func setInviteRSVP(ctx context.Context, q querier, id string, rsvp domain.RSVPStatus, respondedAt time.Time) error {
	result, err := q.ExecContext(ctx, `
		UPDATE invites SET rsvp = ?, responded_at = ?, updated_at = ?
		WHERE id = ? AND rsvp = 'pending'`,
		string(rsvp),
		formatTime(respondedAt),
		formatTime(respondedAt),
		id,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		if _, err := getInvite(ctx, q, id); err != nil {
			return err
		}
		return store.ErrConflict
	}
	return nil
}

// CreateInvite inserts a new invite.
func (s *Store) CreateInvite(ctx context.Context, inv *domain.Invite) error {
	return createInvite(ctx, s.db, inv)
}

// GetInvite retrieves an invite by ID.
// Returns store.ErrNotFound if it does not exist.
func (s *Store) GetInvite(ctx context.Context, id string) (*domain.Invite, error) {
	return getInvite(ctx, s.db, id)
}

// ListInvitesByReservation returns all invites for a reservation in
// creation order.
func (s *Store) ListInvitesByReservation(ctx context.Context, reservationID string) ([]*domain.Invite, error) {
	return listInvitesByReservation(ctx, s.db, reservationID)
}

// BindInvitee binds an identity to an invite.
// Returns store.ErrConflict if a different identity is already bound.
func (s *Store) BindInvitee(ctx context.Context, id, identity string) error {
	return bindInvitee(ctx, s.db, id, identity)
}

// SetInviteRSVP sets the RSVP on a pending invite.
// Returns store.ErrConflict if the invite has already responded.
func (s *Store) SetInviteRSVP(ctx context.Context, id string, rsvp domain.RSVPStatus, respondedAt time.Time) error {
	return setInviteRSVP(ctx, s.db, id, rsvp, respondedAt)
}

// CreateInvite inserts a new invite within the transaction.
func (t *Tx) CreateInvite(ctx context.Context, inv *domain.Invite) error {
	return createInvite(ctx, t.tx, inv)
}

// GetInvite retrieves an invite by ID within the transaction.
func (t *Tx) GetInvite(ctx context.Context, id string) (*domain.Invite, error) {
	return getInvite(ctx, t.tx, id)
}

// ListInvitesByReservation returns all invites for a reservation within the
// transaction.
func (t *Tx) ListInvitesByReservation(ctx context.Context, reservationID string) ([]*domain.Invite, error) {
	return listInvitesByReservation(ctx, t.tx, reservationID)
}

// BindInvitee binds an identity to an invite within the transaction.
func (t *Tx) BindInvitee(ctx context.Context, id, identity string) error {
	return bindInvitee(ctx, t.tx, id, identity)
}

// SetInviteRSVP sets the RSVP on a pending invite within the transaction.
func (t *Tx) SetInviteRSVP(ctx context.Context, id string, rsvp domain.RSVPStatus, respondedAt time.Time) error {
	return setInviteRSVP(ctx, t.tx, id, rsvp, respondedAt)
}
