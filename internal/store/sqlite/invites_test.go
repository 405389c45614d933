package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/store"
)

// seedReservation creates a reservation for invite tests to attach to,
// since invites carry a foreign key to their reservation.
func seedReservation(t *testing.T, s *Store) *domain.Reservation {
	t.Helper()

	res := newTestReservation(t, "usr-organizer")
	if err := s.CreateReservation(context.Background(), res); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}
	return res
}

func TestCreateAndGetInvite(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)

	inv := newTestInvite(t, res.ID, "+15551234567")
	if err := s.CreateInvite(ctx, inv); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	got, err := s.GetInvite(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvite() error = %v", err)
	}

	if got.ReservationID != res.ID {
		t.Errorf("ReservationID = %s, want %s", got.ReservationID, res.ID)
	}
	if got.Phone != inv.Phone {
		t.Errorf("Phone = %s, want %s", got.Phone, inv.Phone)
	}
	if got.RSVP != domain.RSVPPending {
		t.Errorf("RSVP = %s, want %s", got.RSVP, domain.RSVPPending)
	}
	if got.InviteeID != "" {
		t.Errorf("InviteeID = %q, want empty", got.InviteeID)
	}
	if got.RespondedAt != nil {
		t.Errorf("RespondedAt = %v, want nil", got.RespondedAt)
	}
}

func TestCreateInviteUnknownReservation(t *testing.T) {
	s := newTestStore(t)

	inv := newTestInvite(t, "res-missing", "+15551234567")
	if err := s.CreateInvite(context.Background(), inv); err == nil {
		t.Error("CreateInvite() with missing reservation succeeded, want FK error")
	}
}

func TestGetInviteNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetInvite(context.Background(), "inv-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetInvite() error = %v, want ErrNotFound", err)
	}
}

func TestListInvitesByReservation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)
	other := seedReservation(t, s)

	phones := []string{"+15551110001", "+15551110002", "+15551110003"}
	for _, phone := range phones {
		if err := s.CreateInvite(ctx, newTestInvite(t, res.ID, phone)); err != nil {
			t.Fatalf("CreateInvite() error = %v", err)
		}
	}
	if err := s.CreateInvite(ctx, newTestInvite(t, other.ID, "+15559990000")); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	invites, err := s.ListInvitesByReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("ListInvitesByReservation() error = %v", err)
	}
	if len(invites) != len(phones) {
		t.Fatalf("got %d invites, want %d", len(invites), len(phones))
	}
	for _, inv := range invites {
		if inv.ReservationID != res.ID {
			t.Errorf("invite %s belongs to %s, want %s", inv.ID, inv.ReservationID, res.ID)
		}
	}
}

func TestBindInvitee(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)

	inv := newTestInvite(t, res.ID, "+15551234567")
	if err := s.CreateInvite(ctx, inv); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	// First bind claims the invite.
	if err := s.BindInvitee(ctx, inv.ID, "usr-alice"); err != nil {
		t.Fatalf("BindInvitee() error = %v", err)
	}

	// Re-binding the same identity is a no-op, not a conflict.
	if err := s.BindInvitee(ctx, inv.ID, "usr-alice"); err != nil {
		t.Errorf("BindInvitee() same identity error = %v", err)
	}

	// A different identity must not take over.
	if err := s.BindInvitee(ctx, inv.ID, "usr-mallory"); !errors.Is(err, store.ErrConflict) {
		t.Errorf("BindInvitee() different identity error = %v, want ErrConflict", err)
	}

	got, err := s.GetInvite(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvite() error = %v", err)
	}
	if got.InviteeID != "usr-alice" {
		t.Errorf("InviteeID = %s, want usr-alice", got.InviteeID)
	}
}

func TestBindInviteeMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.BindInvitee(context.Background(), "inv-missing", "usr-alice")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("BindInvitee() error = %v, want ErrNotFound", err)
	}
}

func TestSetInviteRSVP(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)

	inv := newTestInvite(t, res.ID, "+15551234567")
	if err := s.CreateInvite(ctx, inv); err != nil {
		t.Fatalf("CreateInvite() error = %v", err)
	}

	respondedAt := time.Now().UTC().Truncate(time.Second)
	if err := s.SetInviteRSVP(ctx, inv.ID, domain.RSVPAccepted, respondedAt); err != nil {
		t.Fatalf("SetInviteRSVP() error = %v", err)
	}

	got, err := s.GetInvite(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvite() error = %v", err)
	}
	if got.RSVP != domain.RSVPAccepted {
		t.Errorf("RSVP = %s, want %s", got.RSVP, domain.RSVPAccepted)
	}
	if got.RespondedAt == nil || !got.RespondedAt.Equal(respondedAt) {
		t.Errorf("RespondedAt = %v, want %v", got.RespondedAt, respondedAt)
	}

	// Second response must not overwrite the first.
	err = s.SetInviteRSVP(ctx, inv.ID, domain.RSVPDeclined, time.Now())
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("second SetInviteRSVP() error = %v, want ErrConflict", err)
	}

	got, err = s.GetInvite(ctx, inv.ID)
	if err != nil {
		t.Fatalf("GetInvite() error = %v", err)
	}
	if got.RSVP != domain.RSVPAccepted {
		t.Errorf("RSVP after rejected overwrite = %s, want %s", got.RSVP, domain.RSVPAccepted)
	}
}
