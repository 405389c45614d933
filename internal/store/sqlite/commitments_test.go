package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/tablematch/tablematch-server/internal/domain"
	"github.com/tablematch/tablematch-server/internal/id"
)

func newTestCommitment(t *testing.T, reservationID, userID string) *domain.CalendarCommitment {
	t.Helper()

	return &domain.CalendarCommitment{
		ID:            id.MustGenerate("cal"),
		ReservationID: reservationID,
		UserID:        userID,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestEnsureCommitment(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)

	c := newTestCommitment(t, res.ID, "usr-alice")
	created, err := s.EnsureCommitment(ctx, c)
	if err != nil {
		t.Fatalf("EnsureCommitment() error = %v", err)
	}
	if !created {
		t.Error("first EnsureCommitment() created = false, want true")
	}

	// A repeat for the same (reservation, user) pair is absorbed, even with
	// a fresh commitment ID.
	dup := newTestCommitment(t, res.ID, "usr-alice")
	created, err = s.EnsureCommitment(ctx, dup)
	if err != nil {
		t.Fatalf("repeat EnsureCommitment() error = %v", err)
	}
	if created {
		t.Error("repeat EnsureCommitment() created = true, want false")
	}

	commitments, err := s.ListCommitmentsByReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("ListCommitmentsByReservation() error = %v", err)
	}
	if len(commitments) != 1 {
		t.Fatalf("got %d commitments, want 1", len(commitments))
	}
	if commitments[0].ID != c.ID {
		t.Errorf("surviving commitment ID = %s, want original %s", commitments[0].ID, c.ID)
	}
}

func TestEnsureCommitmentDistinctUsers(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	res := seedReservation(t, s)

	for _, user := range []string{"usr-alice", "usr-bob", "usr-carol"} {
		created, err := s.EnsureCommitment(ctx, newTestCommitment(t, res.ID, user))
		if err != nil {
			t.Fatalf("EnsureCommitment(%s) error = %v", user, err)
		}
		if !created {
			t.Errorf("EnsureCommitment(%s) created = false, want true", user)
		}
	}

	commitments, err := s.ListCommitmentsByReservation(ctx, res.ID)
	if err != nil {
		t.Fatalf("ListCommitmentsByReservation() error = %v", err)
	}
	if len(commitments) != 3 {
		t.Errorf("got %d commitments, want 3", len(commitments))
	}
}
