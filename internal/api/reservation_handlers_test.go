package api

import (
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablematch/tablematch-server/internal/auth"
	"github.com/tablematch/tablematch-server/internal/calendar"
	"github.com/tablematch/tablematch-server/internal/clock"
	"github.com/tablematch/tablematch-server/internal/notify"
	"github.com/tablematch/tablematch-server/internal/service"
	"github.com/tablematch/tablematch-server/internal/store/sqlite"
)

const testKeyHex = "000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f"

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details any    `json:"details"`
}

// apiTestServer wraps the API server for handler testing.
type apiTestServer struct {
	*Server
	api     humatest.TestAPI
	gateway *notify.CaptureGateway
	clock   *clock.Fixed
}

func setupTestServer(t *testing.T) *apiTestServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	clk := clock.NewFixed(time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
	tokens, err := auth.NewTokenService(testKeyHex, time.Hour, clk)
	require.NoError(t, err)

	gateway := notify.NewCaptureGateway()
	reservations := service.NewReservationService(st, tokens, gateway, calendar.NewRenderer(), logger, clk, "")

	s := NewServer(st, reservations, "TableMatch API Test", logger)
	t.Cleanup(s.Close)

	return &apiTestServer{
		Server:  s,
		api:     humatest.Wrap(t, s.api),
		gateway: gateway,
		clock:   clk,
	}
}

// createReservation creates a reservation over the API and returns the
// decoded response body.
func (ts *apiTestServer) createReservation(t *testing.T, phones ...string) CreateReservationResponse {
	t.Helper()

	resp := ts.api.Post("/api/v1/reservations", map[string]any{
		"organizer_id":       "usr-organizer",
		"restaurant_name":    "Lucia's",
		"restaurant_address": "12 Via Roma",
		"starts_at":          ts.clock.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"party_size":         len(phones) + 1,
		"invitee_phones":     phones,
	})
	require.Equal(t, http.StatusOK, resp.Code, "create failed: %s", resp.Body.String())

	var envelope testEnvelope[CreateReservationResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

// acceptToken pulls the accept action token out of the invite request
// delivered to the given phone number.
func (ts *apiTestServer) acceptToken(t *testing.T, phone string) string {
	t.Helper()

	for _, msg := range ts.gateway.ByKind(notify.KindInviteRequest) {
		if msg.Recipient != phone {
			continue
		}
		for _, line := range strings.Split(msg.Body, "\n") {
			if after, ok := strings.CutPrefix(line, "Accept: "); ok {
				return after
			}
		}
	}
	t.Fatalf("no accept token delivered to %s", phone)
	return ""
}

func TestCreateReservationEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createReservation(t, "+15551110001", "+15551110002")

	assert.Equal(t, "pending", created.Reservation.Status)
	assert.Equal(t, 3, created.Reservation.PartySize)
	assert.Equal(t, "Lucia's", created.Reservation.RestaurantName)
	assert.Len(t, created.Invites, 2)
	assert.NotEmpty(t, created.CancelToken)
	assert.NotEmpty(t, created.Reservation.ID)

	// The cancel link also went out on the organizer's channel.
	assert.Len(t, ts.gateway.ByKind(notify.KindCancelLink), 1)
}

func TestCreateReservationEndpointValidation(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/reservations", map[string]any{
		"organizer_id":    "usr-organizer",
		"restaurant_name": "Lucia's",
		"starts_at":       ts.clock.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"party_size":      2,
		"invitee_phones":  []string{"not-a-phone"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "VALIDATION", envelope.Code)
	assert.NotEmpty(t, envelope.Error)
}

func TestGetReservationEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createReservation(t, "+15551110001")

	// The organizer sees full phone numbers.
	resp := ts.api.Get("/api/v1/reservations/"+created.Reservation.ID, "X-Identity: usr-organizer")
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ReservationDetailsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Invites, 1)
	assert.Equal(t, "+15551110001", envelope.Data.Invites[0].Phone)

	// Anyone else gets masked numbers.
	resp = ts.api.Get("/api/v1/reservations/" + created.Reservation.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Invites, 1)
	assert.Equal(t, "********0001", envelope.Data.Invites[0].Phone)
}

func TestGetReservationEndpointNotFound(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Get("/api/v1/reservations/res-missing")
	assert.Equal(t, http.StatusNotFound, resp.Code)

	var envelope testEnvelope[struct{}]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	assert.Equal(t, "NOT_FOUND", envelope.Code)
}

func TestRespondEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	ts.createReservation(t, "+15551110001", "+15551110002")
	token := ts.acceptToken(t, "+15551110001")

	resp := ts.api.Post("/api/v1/invites/respond", map[string]any{
		"token":    token,
		"identity": "usr-alice",
	})
	require.Equal(t, http.StatusOK, resp.Code, "respond failed: %s", resp.Body.String())

	var envelope testEnvelope[RespondResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "accepted", envelope.Data.Outcome)
	assert.Equal(t, "accepted", envelope.Data.RSVP)
	assert.Equal(t, "pending", envelope.Data.ReservationStatus)

	// The replayed token is reported, not re-applied.
	resp = ts.api.Post("/api/v1/invites/respond", map[string]any{
		"token":    token,
		"identity": "usr-alice",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "already_handled", envelope.Data.Outcome)
}

func TestRespondEndpointConfirmsReservation(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createReservation(t, "+15551110001", "+15551110002")

	for i, phone := range []string{"+15551110001", "+15551110002"} {
		token := ts.acceptToken(t, phone)
		identity := []string{"usr-alice", "usr-bob"}[i]

		resp := ts.api.Post("/api/v1/invites/respond", map[string]any{
			"token":    token,
			"identity": identity,
		})
		require.Equal(t, http.StatusOK, resp.Code)
	}

	resp := ts.api.Get("/api/v1/reservations/" + created.Reservation.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[ReservationDetailsResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "confirmed", envelope.Data.Reservation.Status)

	// Every party member received a confirmation with the calendar file.
	confirmations := ts.gateway.ByKind(notify.KindConfirmation)
	assert.Len(t, confirmations, 3)
}

func TestRespondEndpointGarbageToken(t *testing.T) {
	ts := setupTestServer(t)

	resp := ts.api.Post("/api/v1/invites/respond", map[string]any{
		"token":    "not-a-token",
		"identity": "usr-alice",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RespondResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid", envelope.Data.Outcome)
}

func TestRespondEndpointExpiredToken(t *testing.T) {
	ts := setupTestServer(t)

	ts.createReservation(t, "+15551110001")
	token := ts.acceptToken(t, "+15551110001")

	ts.clock.Advance(2 * time.Hour)

	resp := ts.api.Post("/api/v1/invites/respond", map[string]any{
		"token":    token,
		"identity": "usr-alice",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[RespondResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "expired", envelope.Data.Outcome)
}

func TestCancelEndpoint(t *testing.T) {
	ts := setupTestServer(t)

	created := ts.createReservation(t, "+15551110001", "+15551110002")

	resp := ts.api.Post("/api/v1/reservations/cancel", map[string]any{
		"token": created.CancelToken,
	})
	require.Equal(t, http.StatusOK, resp.Code, "cancel failed: %s", resp.Body.String())

	var envelope testEnvelope[CancelResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "canceled", envelope.Data.Outcome)
	assert.Equal(t, "canceled", envelope.Data.ReservationStatus)

	// Replay reports already handled.
	resp = ts.api.Post("/api/v1/reservations/cancel", map[string]any{
		"token": created.CancelToken,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "already_handled", envelope.Data.Outcome)
}

func TestCancelEndpointRejectsInviteToken(t *testing.T) {
	ts := setupTestServer(t)

	ts.createReservation(t, "+15551110001")
	token := ts.acceptToken(t, "+15551110001")

	resp := ts.api.Post("/api/v1/reservations/cancel", map[string]any{
		"token": token,
	})
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[CancelResponse]
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &envelope))
	assert.Equal(t, "invalid", envelope.Data.Outcome)
}
