// Package notify defines the outbound notification gateway. The coordinator
// emits messages through a Gateway; delivery transports (SMS, push, email)
// plug in behind the interface.
package notify

import "context"

// Kind classifies an outbound message.
type Kind string

// Message kinds emitted by the coordinator.
const (
	// KindInviteRequest carries accept/decline action links to an invitee.
	KindInviteRequest Kind = "invite_request"
	// KindCancelLink carries the cancel action link to the organizer.
	KindCancelLink Kind = "cancel_link"
	// KindDeclineAlert tells the organizer an invitee declined.
	KindDeclineAlert Kind = "decline_alert"
	// KindCancelAlert tells invitees the organizer canceled.
	KindCancelAlert Kind = "cancel_alert"
	// KindConfirmation tells a participant the reservation is locked in,
	// with their calendar entry attached.
	KindConfirmation Kind = "confirmation"
)

// Attachment is an optional file carried with a message, such as an
// iCalendar entry on a confirmation.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Message is a single outbound notification. Recipient is a phone number in
// E.164 form for invitees, or a user ID for in-app delivery to organizers.
type Message struct {
	Recipient   string
	Kind        Kind
	Subject     string
	Body        string
	Attachments []Attachment
}

// Gateway delivers outbound messages. Implementations must be safe for
// concurrent use. Delivery is best-effort: reservation state never depends
// on whether a message went out.
type Gateway interface {
	Deliver(ctx context.Context, msg Message) error
}
