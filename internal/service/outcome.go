package service

// Outcome classifies the result of presenting an action token. Every respond
// or cancel request resolves to exactly one outcome; transport handlers map
// these to status codes and user-facing copy.
type Outcome string

// Action outcomes.
const (
	// OutcomeAccepted: the invite is now accepted.
	OutcomeAccepted Outcome = "accepted"
	// OutcomeDeclined: the invite is now declined.
	OutcomeDeclined Outcome = "declined"
	// OutcomeCanceled: the reservation is now canceled.
	OutcomeCanceled Outcome = "canceled"
	// OutcomeAlreadyHandled: the request repeats an action whose effect
	// already holds; nothing changed and the caller is told so gently.
	OutcomeAlreadyHandled Outcome = "already_handled"
	// OutcomeExpired: the token is past its expiry.
	OutcomeExpired Outcome = "expired"
	// OutcomeInvalid: the token or the request it authorizes cannot be
	// honored (bad signature, replay with a different effect, identity
	// mismatch, terminal reservation).
	OutcomeInvalid Outcome = "invalid"
)

// Changed reports whether the outcome mutated reservation state.
func (o Outcome) Changed() bool {
	switch o {
	case OutcomeAccepted, OutcomeDeclined, OutcomeCanceled:
		return true
	default:
		return false
	}
}
