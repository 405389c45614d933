package domain

// Action identifies what a signed action token authorizes.
// Tokens carry exactly one action and the ID of the entity it applies to.
type Action string

// Known token actions.
const (
	ActionAcceptInvite  Action = "accept_invite"
	ActionDeclineInvite Action = "decline_invite"
	ActionOwnerCancel   Action = "owner_cancel"
)

// IsValid reports whether the action is one of the known values.
func (a Action) IsValid() bool {
	switch a {
	case ActionAcceptInvite, ActionDeclineInvite, ActionOwnerCancel:
		return true
	default:
		return false
	}
}

// IsInviteAction reports whether the action targets an invite rather than
// the reservation itself.
func (a Action) IsInviteAction() bool {
	return a == ActionAcceptInvite || a == ActionDeclineInvite
}

// RSVP returns the invite state this action produces.
// Only meaningful for invite actions; returns RSVPPending otherwise.
func (a Action) RSVP() RSVPStatus {
	switch a {
	case ActionAcceptInvite:
		return RSVPAccepted
	case ActionDeclineInvite:
		return RSVPDeclined
	default:
		return RSVPPending
	}
}
