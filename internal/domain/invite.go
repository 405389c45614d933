package domain

import (
	"strings"
	"time"
)

// RSVPStatus is an invitee's response state. It is monotonic: once an
// invite leaves pending it never returns, and accepted/declined never flip.
// Re-inviting someone means creating a new invite, not mutating the old one.
type RSVPStatus string

// RSVP states.
const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

// IsValid reports whether the status is one of the known values.
func (s RSVPStatus) IsValid() bool {
	switch s {
	case RSVPPending, RSVPAccepted, RSVPDeclined:
		return true
	default:
		return false
	}
}

// Invite is a single invitee's slot within a reservation. The phone number
// is fixed at creation; the invitee identity is bound on their first
// successful accept or decline and never reassigned.
type Invite struct {
	Entity
	ReservationID string     `json:"reservation_id"`
	Phone         string     `json:"phone"` // E.164
	InviteeID     string     `json:"invitee_id,omitempty"`
	RSVP          RSVPStatus `json:"rsvp"`
	RespondedAt   *time.Time `json:"responded_at,omitempty"`
}

// HasResponded reports whether the invite has left the pending state.
func (i *Invite) HasResponded() bool {
	return i.RSVP != RSVPPending
}

// OwnedBy reports whether identity may act on this invite: either no
// identity is bound yet, or the bound identity matches.
func (i *Invite) OwnedBy(identity string) bool {
	return i.InviteeID == "" || i.InviteeID == identity
}

// MaskedPhone returns the phone number with all but the last four digits
// replaced, for external-facing summaries.
func (i *Invite) MaskedPhone() string {
	if len(i.Phone) <= 4 {
		return i.Phone
	}
	return strings.Repeat("*", len(i.Phone)-4) + i.Phone[len(i.Phone)-4:]
}
