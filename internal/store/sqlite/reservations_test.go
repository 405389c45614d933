package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/store"
)

func TestCreateAndGetReservation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := newTestReservation(t, "usr-organizer")
	if err := s.CreateReservation(ctx, res); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	got, err := s.GetReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetReservation() error = %v", err)
	}

	if got.ID != res.ID {
		t.Errorf("ID = %s, want %s", got.ID, res.ID)
	}
	if got.OrganizerID != res.OrganizerID {
		t.Errorf("OrganizerID = %s, want %s", got.OrganizerID, res.OrganizerID)
	}
	if got.RestaurantName != res.RestaurantName {
		t.Errorf("RestaurantName = %s, want %s", got.RestaurantName, res.RestaurantName)
	}
	if got.PartySize != res.PartySize {
		t.Errorf("PartySize = %d, want %d", got.PartySize, res.PartySize)
	}
	if got.Status != domain.ReservationPending {
		t.Errorf("Status = %s, want %s", got.Status, domain.ReservationPending)
	}
	if !got.StartsAt.Equal(res.StartsAt) {
		t.Errorf("StartsAt = %v, want %v", got.StartsAt, res.StartsAt)
	}
}

func TestCreateReservationDuplicateID(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := newTestReservation(t, "usr-organizer")
	if err := s.CreateReservation(ctx, res); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	if err := s.CreateReservation(ctx, res); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate CreateReservation() error = %v, want ErrAlreadyExists", err)
	}
}

func TestGetReservationNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetReservation(context.Background(), "res-missing")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetReservation() error = %v, want ErrNotFound", err)
	}
}

func TestTransitionReservation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := newTestReservation(t, "usr-organizer")
	if err := s.CreateReservation(ctx, res); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	err := s.TransitionReservation(ctx, res.ID,
		domain.ReservationPending, domain.ReservationConfirmed)
	if err != nil {
		t.Fatalf("TransitionReservation() error = %v", err)
	}

	got, err := s.GetReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetReservation() error = %v", err)
	}
	if got.Status != domain.ReservationConfirmed {
		t.Errorf("Status = %s, want %s", got.Status, domain.ReservationConfirmed)
	}
}

func TestTransitionReservationWrongPrecondition(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	res := newTestReservation(t, "usr-organizer")
	if err := s.CreateReservation(ctx, res); err != nil {
		t.Fatalf("CreateReservation() error = %v", err)
	}

	// The reservation is pending, so a confirmed->canceled transition must
	// not match.
	err := s.TransitionReservation(ctx, res.ID,
		domain.ReservationConfirmed, domain.ReservationCanceled)
	if !errors.Is(err, store.ErrConflict) {
		t.Errorf("TransitionReservation() error = %v, want ErrConflict", err)
	}

	got, err := s.GetReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("GetReservation() error = %v", err)
	}
	if got.Status != domain.ReservationPending {
		t.Errorf("Status = %s, want unchanged %s", got.Status, domain.ReservationPending)
	}
}

func TestTransitionReservationMissing(t *testing.T) {
	s := newTestStore(t)

	err := s.TransitionReservation(context.Background(), "res-missing",
		domain.ReservationPending, domain.ReservationCanceled)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("TransitionReservation() error = %v, want ErrNotFound", err)
	}
}
