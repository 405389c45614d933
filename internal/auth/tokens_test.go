package auth

import (
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablematch/tablematch-server/internal/clock"
	"github.com/tablematch/tablematch-server/internal/domain"
	domainerrors "github.com/tablematch/tablematch-server/internal/errors"
)

func newTestTokenService(t *testing.T, clk clock.Clock) *TokenService {
	t.Helper()

	key, err := LoadOrGenerateKey(t.TempDir())
	require.NoError(t, err)

	svc, err := NewTokenService(hex.EncodeToString(key), time.Hour, clk)
	require.NoError(t, err)
	return svc
}

func TestIssueAndVerifyActionToken(t *testing.T) {
	svc := newTestTokenService(t, nil)

	token, err := svc.IssueActionToken(domain.ActionAcceptInvite, "inv-123")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.VerifyActionToken(token)
	require.NoError(t, err)

	assert.Equal(t, domain.ActionAcceptInvite, claims.Action)
	assert.Equal(t, "inv-123", claims.SubjectID)
	assert.NotEmpty(t, claims.TokenID)
	assert.WithinDuration(t, claims.IssuedAt.Add(time.Hour), claims.Expiration, time.Second)
}

func TestIssueActionToken_FreshJTIPerToken(t *testing.T) {
	svc := newTestTokenService(t, nil)

	seen := make(map[string]bool)
	for range 20 {
		token, err := svc.IssueActionToken(domain.ActionDeclineInvite, "inv-1")
		require.NoError(t, err)

		claims, err := svc.VerifyActionToken(token)
		require.NoError(t, err)
		assert.False(t, seen[claims.TokenID], "jti should be unique: %s", claims.TokenID)
		seen[claims.TokenID] = true
	}
}

func TestIssueActionToken_RejectsUnknownAction(t *testing.T) {
	svc := newTestTokenService(t, nil)

	_, err := svc.IssueActionToken(domain.Action("make_coffee"), "inv-1")
	assert.Error(t, err)

	_, err = svc.IssueActionToken(domain.ActionAcceptInvite, "")
	assert.Error(t, err)
}

func TestVerifyActionToken_Expired(t *testing.T) {
	clk := clock.NewFixed(time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC))
	svc := newTestTokenService(t, clk)

	token, err := svc.IssueActionToken(domain.ActionAcceptInvite, "inv-1")
	require.NoError(t, err)

	// Still valid just inside the hour.
	clk.Advance(59 * time.Minute)
	_, err = svc.VerifyActionToken(token)
	require.NoError(t, err)

	// 61 minutes after issuance the token is expired, not merely invalid.
	clk.Advance(2 * time.Minute)
	_, err = svc.VerifyActionToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	assert.NotErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestVerifyActionToken_ExpiredInRealPast(t *testing.T) {
	// A token whose whole lifetime lies before the wall clock must still
	// surface as expired, not as a generic parse failure.
	clk := clock.NewFixed(time.Now().Add(-2 * time.Hour))
	svc := newTestTokenService(t, clk)

	token, err := svc.IssueActionToken(domain.ActionAcceptInvite, "inv-1")
	require.NoError(t, err)

	clk.Advance(61 * time.Minute)
	_, err = svc.VerifyActionToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenExpired)
	assert.NotErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestVerifyActionToken_Tampered(t *testing.T) {
	svc := newTestTokenService(t, nil)

	token, err := svc.IssueActionToken(domain.ActionOwnerCancel, "res-1")
	require.NoError(t, err)

	// Flip a character in the body.
	tampered := []byte(token)
	mid := len(tampered) / 2
	if tampered[mid] == 'A' {
		tampered[mid] = 'B'
	} else {
		tampered[mid] = 'A'
	}

	_, err = svc.VerifyActionToken(string(tampered))
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestVerifyActionToken_WrongKey(t *testing.T) {
	svcA := newTestTokenService(t, nil)
	svcB := newTestTokenService(t, nil)

	token, err := svcA.IssueActionToken(domain.ActionAcceptInvite, "inv-1")
	require.NoError(t, err)

	_, err = svcB.VerifyActionToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid)
}

func TestVerifyActionToken_Garbage(t *testing.T) {
	svc := newTestTokenService(t, nil)

	for _, input := range []string{"", "not-a-token", "v4.local.AAAA"} {
		_, err := svc.VerifyActionToken(input)
		assert.ErrorIs(t, err, domainerrors.ErrTokenInvalid, "input %q", input)
	}
}

func TestNewTokenService_KeyValidation(t *testing.T) {
	_, err := NewTokenService("tooshort", time.Hour, nil)
	assert.Error(t, err)

	_, err = NewTokenService("zz"+hex.EncodeToString(make([]byte, 31)), time.Hour, nil)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey_RoundTrip(t *testing.T) {
	dir := t.TempDir()

	key1, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	require.Len(t, key1, 32)

	// Second load returns the same key.
	key2, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, key1, key2)
}
