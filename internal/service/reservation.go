package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tablematch/tablematch-server/internal/auth"
	"github.com/tablematch/tablematch-server/internal/calendar"
	"github.com/tablematch/tablematch-server/internal/clock"
	"github.com/tablematch/tablematch-server/internal/domain"
	domainerrors "github.com/tablematch/tablematch-server/internal/errors"
	"github.com/tablematch/tablematch-server/internal/id"
	"github.com/tablematch/tablematch-server/internal/notify"
	"github.com/tablematch/tablematch-server/internal/store"
	"github.com/tablematch/tablematch-server/internal/store/sqlite"
)

// busyRetries is how many times a respond/cancel transaction is retried
// when SQLite reports the database busy.
const busyRetries = 3

// errRolledBack aborts a transaction whose outcome was decided without
// wanting its writes. The outcome travels in the enclosing txResult.
var errRolledBack = errors.New("rolled back")

// ReservationService coordinates the reservation lifecycle: creation,
// invite responses, confirmation fan-out, and cancellation.
type ReservationService struct {
	store    *sqlite.Store
	tokens   *auth.TokenService
	gateway  notify.Gateway
	renderer *calendar.Renderer
	logger   *slog.Logger
	clock    clock.Clock
	baseURL  string
}

// NewReservationService creates a new reservation service.
func NewReservationService(
	st *sqlite.Store,
	tokens *auth.TokenService,
	gateway notify.Gateway,
	renderer *calendar.Renderer,
	logger *slog.Logger,
	clk clock.Clock,
	baseURL string,
) *ReservationService {
	if clk == nil {
		clk = clock.NewSystem()
	}
	return &ReservationService{
		store:    st,
		tokens:   tokens,
		gateway:  gateway,
		renderer: renderer,
		logger:   logger,
		clock:    clk,
		baseURL:  baseURL,
	}
}

// CreateReservationRequest contains the data needed to propose a dinner.
type CreateReservationRequest struct {
	OrganizerID       string    `json:"organizer_id" validate:"required"`
	RestaurantName    string    `json:"restaurant_name" validate:"required,max=200"`
	RestaurantAddress string    `json:"restaurant_address" validate:"max=500"`
	StartsAt          time.Time `json:"starts_at" validate:"required"`
	PartySize         int       `json:"party_size" validate:"required,min=2,max=20"`
	InviteePhones     []string  `json:"invitee_phones" validate:"required,min=1,max=19,dive,e164"`
}

// InviteView is an invite as shown to callers. The phone number is masked
// unless the caller organizes the reservation.
type InviteView struct {
	ID          string            `json:"id"`
	Phone       string            `json:"phone"`
	RSVP        domain.RSVPStatus `json:"rsvp"`
	RespondedAt *time.Time        `json:"responded_at,omitempty"`
}

// CreateReservationResponse is returned after creating a reservation. The
// cancel token lets the organizer cancel without further authentication.
type CreateReservationResponse struct {
	Reservation *domain.Reservation `json:"reservation"`
	Invites     []InviteView        `json:"invites"`
	CancelToken string              `json:"cancel_token"`
}

// RespondRequest presents an invite action token together with the identity
// of whoever is responding.
type RespondRequest struct {
	Token    string `json:"token" validate:"required"`
	Identity string `json:"identity" validate:"required"`
}

// RespondResponse reports how an invite response resolved.
type RespondResponse struct {
	Outcome           Outcome                  `json:"outcome"`
	ReservationStatus domain.ReservationStatus `json:"reservation_status,omitempty"`
	RSVP              domain.RSVPStatus        `json:"rsvp,omitempty"`
}

// CancelRequest presents an owner-cancel token.
type CancelRequest struct {
	Token string `json:"token" validate:"required"`
}

// CancelResponse reports how a cancellation resolved.
type CancelResponse struct {
	Outcome           Outcome                  `json:"outcome"`
	ReservationStatus domain.ReservationStatus `json:"reservation_status,omitempty"`
}

// ReservationDetails is a reservation with its invites.
type ReservationDetails struct {
	Reservation *domain.Reservation `json:"reservation"`
	Invites     []InviteView        `json:"invites"`
}

// CreateReservation creates a pending reservation with one invite per
// phone number, then sends each invitee their accept/decline links and the
// organizer their cancel link.
func (s *ReservationService) CreateReservation(ctx context.Context, req CreateReservationRequest) (*CreateReservationResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	now := s.clock.Now()
	if !req.StartsAt.After(now) {
		return nil, domainerrors.Validation("starts_at must be in the future")
	}
	// The party includes the organizer, so the table must seat at least
	// every invitee plus one.
	if req.PartySize < len(req.InviteePhones)+1 {
		return nil, domainerrors.Validation("party_size must cover every invitee plus the organizer")
	}
	if err := validateDistinctPhones(req.InviteePhones); err != nil {
		return nil, err
	}

	res := &domain.Reservation{
		OrganizerID:       req.OrganizerID,
		RestaurantName:    req.RestaurantName,
		RestaurantAddress: req.RestaurantAddress,
		StartsAt:          req.StartsAt.UTC(),
		PartySize:         req.PartySize,
		Status:            domain.ReservationPending,
	}
	res.ID = id.MustGenerate("res")
	res.InitTimestamps()

	invites := make([]*domain.Invite, 0, len(req.InviteePhones))
	for _, phone := range req.InviteePhones {
		inv := &domain.Invite{
			ReservationID: res.ID,
			Phone:         phone,
			RSVP:          domain.RSVPPending,
		}
		inv.ID = id.MustGenerate("inv")
		inv.InitTimestamps()
		invites = append(invites, inv)
	}

	err := s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
		if err := tx.CreateReservation(ctx, res); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		for _, inv := range invites {
			if err := tx.CreateInvite(ctx, inv); err != nil {
				return fmt.Errorf("create invite: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cancelToken, err := s.tokens.IssueActionToken(domain.ActionOwnerCancel, res.ID)
	if err != nil {
		return nil, fmt.Errorf("issue cancel token: %w", err)
	}

	// Invite links go out after commit. Delivery is best-effort; a failed
	// send never unwinds the reservation.
	for _, inv := range invites {
		s.sendInviteRequest(ctx, res, inv)
	}
	s.sendCancelLink(ctx, res, cancelToken)

	s.logger.Info("reservation created",
		"reservation_id", res.ID,
		"organizer_id", res.OrganizerID,
		"party_size", res.PartySize,
	)

	return &CreateReservationResponse{
		Reservation: res,
		Invites:     inviteViews(invites, true),
		CancelToken: cancelToken,
	}, nil
}

// GetReservation returns a reservation with its invites. Phone numbers are
// masked unless the requester is the organizer.
func (s *ReservationService) GetReservation(ctx context.Context, reservationID, requesterID string) (*ReservationDetails, error) {
	if reservationID == "" {
		return nil, domainerrors.Validation("reservation ID is required")
	}

	res, err := s.store.GetReservation(ctx, reservationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("reservation not found")
		}
		return nil, fmt.Errorf("get reservation: %w", err)
	}

	invites, err := s.store.ListInvitesByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("list invites: %w", err)
	}

	return &ReservationDetails{
		Reservation: res,
		Invites:     inviteViews(invites, requesterID == res.OrganizerID),
	}, nil
}

// respondResult carries what a respond transaction decided, so post-commit
// effects (notifications, calendar delivery) run outside the transaction.
type respondResult struct {
	outcome        Outcome
	rsvp           domain.RSVPStatus
	reservation    *domain.Reservation
	invite         *domain.Invite
	confirmed      bool
	newCommitments []*domain.CalendarCommitment
}

// RespondToInvite resolves an accept or decline action token. The whole
// decision runs in one transaction: the token's jti is consumed, the invitee
// identity bound, the RSVP recorded, and, when the last invite accepts, the
// reservation confirmed and calendar commitments written. A token whose
// request cannot be honored is not consumed.
func (s *ReservationService) RespondToInvite(ctx context.Context, req RespondRequest) (*RespondResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	claims, err := s.tokens.VerifyActionToken(req.Token)
	if err != nil {
		return &RespondResponse{Outcome: tokenOutcome(err)}, nil
	}
	if !claims.Action.IsInviteAction() {
		return &RespondResponse{Outcome: OutcomeInvalid}, nil
	}

	var result respondResult
	err = s.withBusyRetry(ctx, func() error {
		result = respondResult{}
		return s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
			return s.respondTx(ctx, tx, claims, req.Identity, &result)
		})
	})
	if err != nil && !errors.Is(err, errRolledBack) {
		return nil, err
	}

	s.deliverRespondEffects(ctx, &result)

	resp := &RespondResponse{Outcome: result.outcome}
	if result.reservation != nil {
		resp.ReservationStatus = result.reservation.Status
	}
	if result.outcome == OutcomeAccepted || result.outcome == OutcomeDeclined {
		resp.RSVP = result.rsvp
	}

	s.logger.Info("invite response resolved",
		"invite_id", claims.SubjectID,
		"action", string(claims.Action),
		"outcome", string(result.outcome),
	)
	return resp, nil
}

// respondTx is the transactional body of RespondToInvite. Returning
// errRolledBack aborts the transaction while keeping the outcome already
// written into result.
func (s *ReservationService) respondTx(ctx context.Context, tx *sqlite.Tx, claims *auth.ActionClaims, identity string, result *respondResult) error {
	now := s.clock.Now()
	rsvp := claims.Action.RSVP()

	invite, err := tx.GetInvite(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			result.outcome = OutcomeInvalid
			return errRolledBack
		}
		return fmt.Errorf("get invite: %w", err)
	}
	result.invite = invite

	res, err := tx.GetReservation(ctx, invite.ReservationID)
	if err != nil {
		return fmt.Errorf("get reservation: %w", err)
	}
	result.reservation = res

	// A canceled reservation accepts no responses, and the token is left
	// unconsumed; there is nothing it could ever do.
	if res.IsTerminal() {
		result.outcome = OutcomeInvalid
		return errRolledBack
	}

	err = tx.ConsumeJTI(ctx, claims.TokenID, now)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Replay. Harmless when the recorded state already matches what
		// this token asks for and the responder is the bound invitee.
		if invite.RSVP == rsvp && invite.InviteeID == identity {
			result.outcome = OutcomeAlreadyHandled
		} else {
			result.outcome = OutcomeInvalid
		}
		return errRolledBack
	}
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}

	if !invite.OwnedBy(identity) {
		result.outcome = OutcomeInvalid
		return errRolledBack
	}
	if err := tx.BindInvitee(ctx, invite.ID, identity); err != nil {
		if errors.Is(err, store.ErrConflict) {
			result.outcome = OutcomeInvalid
			return errRolledBack
		}
		return fmt.Errorf("bind invitee: %w", err)
	}
	invite.InviteeID = identity

	if err := tx.SetInviteRSVP(ctx, invite.ID, rsvp, now); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// Already responded through a different token. Same effect is
			// a gentle no-op; flipping a settled RSVP is not.
			if invite.RSVP == rsvp {
				result.outcome = OutcomeAlreadyHandled
			} else {
				result.outcome = OutcomeInvalid
			}
			return errRolledBack
		}
		return fmt.Errorf("set rsvp: %w", err)
	}
	invite.RSVP = rsvp
	invite.RespondedAt = &now

	switch rsvp {
	case domain.RSVPAccepted:
		result.outcome = OutcomeAccepted
	case domain.RSVPDeclined:
		result.outcome = OutcomeDeclined
	}
	result.rsvp = rsvp

	// Only accepts can complete the party, so the confirmation check runs
	// solely on accepts.
	if rsvp == domain.RSVPAccepted && res.Status == domain.ReservationPending {
		confirmed, err := s.tryConfirm(ctx, tx, res, result)
		if err != nil {
			return err
		}
		result.confirmed = confirmed
	}
	return nil
}

// tryConfirm confirms the reservation when every invite is accepted, and
// writes calendar commitments for the organizer and all invitees in the
// same transaction.
func (s *ReservationService) tryConfirm(ctx context.Context, tx *sqlite.Tx, res *domain.Reservation, result *respondResult) (bool, error) {
	invites, err := tx.ListInvitesByReservation(ctx, res.ID)
	if err != nil {
		return false, fmt.Errorf("list invites: %w", err)
	}
	for _, inv := range invites {
		if inv.RSVP != domain.RSVPAccepted {
			return false, nil
		}
	}

	err = tx.TransitionReservation(ctx, res.ID, domain.ReservationPending, domain.ReservationConfirmed)
	if err != nil {
		// A concurrent responder got here first; the reservation is
		// confirmed either way.
		if errors.Is(err, store.ErrConflict) {
			return false, nil
		}
		return false, fmt.Errorf("confirm reservation: %w", err)
	}
	res.Status = domain.ReservationConfirmed

	users := make([]string, 0, len(invites)+1)
	users = append(users, res.OrganizerID)
	for _, inv := range invites {
		users = append(users, inv.InviteeID)
	}
	now := s.clock.Now()
	for _, userID := range users {
		c := &domain.CalendarCommitment{
			ReservationID: res.ID,
			UserID:        userID,
			CreatedAt:     now,
		}
		c.ID = id.MustGenerate("cal")
		created, err := tx.EnsureCommitment(ctx, c)
		if err != nil {
			return false, fmt.Errorf("ensure commitment: %w", err)
		}
		if created {
			result.newCommitments = append(result.newCommitments, c)
		}
	}
	return true, nil
}

// deliverRespondEffects sends the notifications a committed respond
// transaction calls for. Failures are logged, never surfaced.
func (s *ReservationService) deliverRespondEffects(ctx context.Context, result *respondResult) {
	if !result.outcome.Changed() || result.reservation == nil {
		return
	}
	res := result.reservation

	if result.outcome == OutcomeDeclined {
		msg := notify.Message{
			Recipient: res.OrganizerID,
			Kind:      notify.KindDeclineAlert,
			Subject:   fmt.Sprintf("Declined: dinner at %s", res.RestaurantName),
			Body: fmt.Sprintf("%s declined your invitation for %s.",
				result.invite.MaskedPhone(), res.StartsAt.Format(time.RFC1123)),
		}
		if err := s.gateway.Deliver(ctx, msg); err != nil {
			s.logger.Warn("decline alert delivery failed", "reservation_id", res.ID, "error", err)
		}
	}

	if result.confirmed {
		s.deliverConfirmations(ctx, result)
	}
}

// deliverConfirmations sends each newly committed participant their
// confirmation with the calendar entry attached.
func (s *ReservationService) deliverConfirmations(ctx context.Context, result *respondResult) {
	res := result.reservation

	// Invitee commitments are delivered to the invite's phone number;
	// the organizer's goes to their user ID for in-app delivery.
	phoneByUser := make(map[string]string)
	invites, err := s.store.ListInvitesByReservation(ctx, res.ID)
	if err != nil {
		s.logger.Warn("confirmation fan-out failed", "reservation_id", res.ID, "error", err)
		return
	}
	for _, inv := range invites {
		if inv.InviteeID != "" {
			phoneByUser[inv.InviteeID] = inv.Phone
		}
	}

	for _, c := range result.newCommitments {
		recipient := c.UserID
		if phone, ok := phoneByUser[c.UserID]; ok {
			recipient = phone
		}

		msg := notify.Message{
			Recipient: recipient,
			Kind:      notify.KindConfirmation,
			Subject:   fmt.Sprintf("Confirmed: dinner at %s", res.RestaurantName),
			Body: fmt.Sprintf("Everyone is in. See you at %s on %s.",
				res.RestaurantName, res.StartsAt.Format(time.RFC1123)),
		}
		if ics, err := s.renderer.Render(res, c); err != nil {
			s.logger.Warn("calendar render failed", "commitment_id", c.ID, "error", err)
		} else {
			msg.Attachments = append(msg.Attachments, notify.Attachment{
				Filename:    "dinner.ics",
				ContentType: "text/calendar",
				Data:        []byte(ics),
			})
		}

		if err := s.gateway.Deliver(ctx, msg); err != nil {
			s.logger.Warn("confirmation delivery failed", "commitment_id", c.ID, "error", err)
		}
	}
}

// cancelResult mirrors respondResult for cancellations.
type cancelResult struct {
	outcome     Outcome
	reservation *domain.Reservation
	invites     []*domain.Invite
}

// CancelReservation resolves an owner-cancel token. Cancellation is legal
// from pending or confirmed; a replayed token on an already-canceled
// reservation resolves as already handled.
func (s *ReservationService) CancelReservation(ctx context.Context, req CancelRequest) (*CancelResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}

	claims, err := s.tokens.VerifyActionToken(req.Token)
	if err != nil {
		return &CancelResponse{Outcome: tokenOutcome(err)}, nil
	}
	if claims.Action != domain.ActionOwnerCancel {
		return &CancelResponse{Outcome: OutcomeInvalid}, nil
	}

	var result cancelResult
	err = s.withBusyRetry(ctx, func() error {
		result = cancelResult{}
		return s.store.WithTx(ctx, func(tx *sqlite.Tx) error {
			return s.cancelTx(ctx, tx, claims, &result)
		})
	})
	if err != nil && !errors.Is(err, errRolledBack) {
		return nil, err
	}

	if result.outcome == OutcomeCanceled {
		s.deliverCancelAlerts(ctx, &result)
	}

	resp := &CancelResponse{Outcome: result.outcome}
	if result.reservation != nil {
		resp.ReservationStatus = result.reservation.Status
	}

	s.logger.Info("cancellation resolved",
		"reservation_id", claims.SubjectID,
		"outcome", string(result.outcome),
	)
	return resp, nil
}

func (s *ReservationService) cancelTx(ctx context.Context, tx *sqlite.Tx, claims *auth.ActionClaims, result *cancelResult) error {
	now := s.clock.Now()

	res, err := tx.GetReservation(ctx, claims.SubjectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			result.outcome = OutcomeInvalid
			return errRolledBack
		}
		return fmt.Errorf("get reservation: %w", err)
	}
	result.reservation = res

	err = tx.ConsumeJTI(ctx, claims.TokenID, now)
	if errors.Is(err, store.ErrAlreadyExists) {
		// A replayed cancel on a canceled reservation repeats its own
		// effect; anything else is a defect.
		if res.Status == domain.ReservationCanceled {
			result.outcome = OutcomeAlreadyHandled
		} else {
			result.outcome = OutcomeInvalid
		}
		return errRolledBack
	}
	if err != nil {
		return fmt.Errorf("consume token: %w", err)
	}

	// A second, unspent cancel token meeting an already-canceled
	// reservation: the effect holds, the token stays unburned.
	if res.Status == domain.ReservationCanceled {
		result.outcome = OutcomeAlreadyHandled
		return errRolledBack
	}

	err = tx.TransitionReservation(ctx, res.ID, res.Status, domain.ReservationCanceled)
	if err != nil {
		return fmt.Errorf("cancel reservation: %w", err)
	}
	res.Status = domain.ReservationCanceled

	invites, err := tx.ListInvitesByReservation(ctx, res.ID)
	if err != nil {
		return fmt.Errorf("list invites: %w", err)
	}
	result.invites = invites
	result.outcome = OutcomeCanceled
	return nil
}

// deliverCancelAlerts tells every invitee, whatever their RSVP, that the
// dinner is off.
func (s *ReservationService) deliverCancelAlerts(ctx context.Context, result *cancelResult) {
	res := result.reservation
	for _, inv := range result.invites {
		msg := notify.Message{
			Recipient: inv.Phone,
			Kind:      notify.KindCancelAlert,
			Subject:   fmt.Sprintf("Canceled: dinner at %s", res.RestaurantName),
			Body: fmt.Sprintf("The dinner at %s on %s has been canceled by the organizer.",
				res.RestaurantName, res.StartsAt.Format(time.RFC1123)),
		}
		if err := s.gateway.Deliver(ctx, msg); err != nil {
			s.logger.Warn("cancel alert delivery failed", "invite_id", inv.ID, "error", err)
		}
	}
}

// sendInviteRequest issues fresh accept and decline tokens for the invite
// and delivers the links to the invitee's phone.
func (s *ReservationService) sendInviteRequest(ctx context.Context, res *domain.Reservation, inv *domain.Invite) {
	acceptToken, err := s.tokens.IssueActionToken(domain.ActionAcceptInvite, inv.ID)
	if err != nil {
		s.logger.Error("issue accept token failed", "invite_id", inv.ID, "error", err)
		return
	}
	declineToken, err := s.tokens.IssueActionToken(domain.ActionDeclineInvite, inv.ID)
	if err != nil {
		s.logger.Error("issue decline token failed", "invite_id", inv.ID, "error", err)
		return
	}

	msg := notify.Message{
		Recipient: inv.Phone,
		Kind:      notify.KindInviteRequest,
		Subject:   fmt.Sprintf("Dinner at %s", res.RestaurantName),
		Body: fmt.Sprintf("You're invited to dinner at %s on %s.\nAccept: %s\nDecline: %s",
			res.RestaurantName,
			res.StartsAt.Format(time.RFC1123),
			s.actionURL(acceptToken),
			s.actionURL(declineToken),
		),
	}
	if err := s.gateway.Deliver(ctx, msg); err != nil {
		s.logger.Warn("invite request delivery failed", "invite_id", inv.ID, "error", err)
	}
}

// sendCancelLink delivers the owner-cancel link to the organizer's own
// channel. The token also rides in the create response, so a lost message
// does not strand the organizer.
func (s *ReservationService) sendCancelLink(ctx context.Context, res *domain.Reservation, token string) {
	msg := notify.Message{
		Recipient: res.OrganizerID,
		Kind:      notify.KindCancelLink,
		Subject:   fmt.Sprintf("Your dinner at %s", res.RestaurantName),
		Body: fmt.Sprintf("Dinner at %s on %s is set up. Need to call it off? Cancel: %s",
			res.RestaurantName,
			res.StartsAt.Format(time.RFC1123),
			s.actionURL(token),
		),
	}
	if err := s.gateway.Deliver(ctx, msg); err != nil {
		s.logger.Warn("cancel link delivery failed", "reservation_id", res.ID, "error", err)
	}
}

// actionURL builds the public link carrying an action token.
func (s *ReservationService) actionURL(token string) string {
	if s.baseURL == "" {
		return token
	}
	return fmt.Sprintf("%s/respond?token=%s", s.baseURL, token)
}

// withBusyRetry retries fn a bounded number of times when SQLite reports
// the database busy.
func (s *ReservationService) withBusyRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= busyRetries; attempt++ {
		err = fn()
		if err == nil || !sqlite.IsBusy(err) {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt+1) * 25 * time.Millisecond):
		}
	}
	return err
}

// tokenOutcome maps a token verification error to an outcome.
func tokenOutcome(err error) Outcome {
	if errors.Is(err, domainerrors.ErrTokenExpired) {
		return OutcomeExpired
	}
	return OutcomeInvalid
}

// validateDistinctPhones rejects duplicate invitee phone numbers.
func validateDistinctPhones(phones []string) error {
	seen := make(map[string]bool, len(phones))
	for _, phone := range phones {
		if seen[phone] {
			return domainerrors.Validationf("duplicate invitee phone %s", phone)
		}
		seen[phone] = true
	}
	return nil
}

// inviteViews converts invites for external callers, masking phone numbers
// unless the caller owns the reservation.
func inviteViews(invites []*domain.Invite, organizer bool) []InviteView {
	views := make([]InviteView, 0, len(invites))
	for _, inv := range invites {
		phone := inv.MaskedPhone()
		if organizer {
			phone = inv.Phone
		}
		views = append(views, InviteView{
			ID:          inv.ID,
			Phone:       phone,
			RSVP:        inv.RSVP,
			RespondedAt: inv.RespondedAt,
		})
	}
	return views
}
