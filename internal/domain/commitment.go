package domain

import "time"

// CalendarCommitment is a participant's calendar entry for a confirmed
// reservation. At most one exists per (reservation, user) pair; the store
// enforces the uniqueness so repeated fan-out never duplicates entries.
type CalendarCommitment struct {
	ID            string    `json:"id"`
	ReservationID string    `json:"reservation_id"`
	UserID        string    `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
}
