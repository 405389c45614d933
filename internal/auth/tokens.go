package auth

import (
	"encoding/hex"
	"encoding/json/v2"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/google/uuid"

	"github.com/tablematch/tablematch-server/internal/clock"
	"github.com/tablematch/tablematch-server/internal/domain"
	domainerrors "github.com/tablematch/tablematch-server/internal/errors"
)

const (
	tokenIssuer   = "tablematch-server"
	tokenAudience = "tablematch-action"

	// PASETO v4 symmetric key requirements.
	keyBytesSize = 32 // 256 bits
	keyHexSize   = 64 // 32 bytes as hex string
)

// TokenService handles PASETO action token generation and verification.
// Issuing has no side effects beyond signing; the single-use guarantee is
// enforced by the store's used-jti ledger, not here.
type TokenService struct {
	symmetricKey paseto.V4SymmetricKey
	tokenTTL     time.Duration
	clock        clock.Clock
}

// NewTokenService creates a new token service with the given configuration.
func NewTokenService(keyHex string, tokenTTL time.Duration, clk clock.Clock) (*TokenService, error) {
	if len(keyHex) != keyHexSize {
		return nil, fmt.Errorf("PASETO v4 key must be exactly %d hex characters (%d bytes), got %d", keyHexSize, keyBytesSize, len(keyHex))
	}

	keyBytes, err := hex.DecodeString(keyHex)
	if err != nil {
		return nil, fmt.Errorf("invalid hex string for PASETO key: %w", err)
	}

	if len(keyBytes) != keyBytesSize {
		return nil, fmt.Errorf("decoded key must be exactly %d bytes, got %d", keyBytesSize, len(keyBytes))
	}

	key, err := paseto.V4SymmetricKeyFromBytes(keyBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to create PASETO symmetric key: %w", err)
	}

	if clk == nil {
		clk = clock.NewSystem()
	}

	return &TokenService{
		symmetricKey: key,
		tokenTTL:     tokenTTL,
		clock:        clk,
	}, nil
}

// IssueActionToken creates a PASETO v4.local token authorizing a single
// action on a single subject, with a fresh jti and an expiry of TTL from now.
func (s *TokenService) IssueActionToken(action domain.Action, subjectID string) (string, error) {
	if !action.IsValid() {
		return "", fmt.Errorf("unknown action %q", action)
	}
	if subjectID == "" {
		return "", fmt.Errorf("subject ID is required")
	}

	now := s.clock.Now()

	token := paseto.NewToken()

	// Standard claims
	token.SetIssuer(tokenIssuer)
	token.SetSubject(subjectID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.tokenTTL))
	token.SetJti(uuid.NewString())

	// Our custom claims
	//nolint:errcheck // Token.Set only errors on invalid types, which we control
	_ = token.Set("action", string(action))

	encrypted := token.V4Encrypt(s.symmetricKey, nil)
	return encrypted, nil
}

// VerifyActionToken verifies and parses a PASETO action token.
// Returns errors.ErrTokenExpired when the token is past its expiry and
// errors.ErrTokenInvalid for any other defect (bad signature, wrong
// issuer/audience, malformed or missing claims). It does NOT consult the
// used-jti ledger; the caller decides what consumption means.
func (s *TokenService) VerifyActionToken(tokenString string) (*ActionClaims, error) {
	// The default parser checks expiry against the wall clock, which would
	// collapse an expired token into a generic parse error. Skip that rule
	// and check expiry below against the injected clock, so the boundary is
	// exact and an expired token is reported as expired.
	parser := paseto.NewParserWithoutExpiryCheck()

	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))

	token, err := parser.ParseV4Local(s.symmetricKey, tokenString, nil)
	if err != nil {
		return nil, domainerrors.ErrTokenInvalid.WithCause(err)
	}

	var claims ActionClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, domainerrors.ErrTokenInvalid.WithCause(err)
	}

	if !claims.Action.IsValid() || claims.SubjectID == "" || claims.TokenID == "" {
		return nil, domainerrors.TokenInvalid("token is missing required claims")
	}

	now := s.clock.Now()
	if now.Before(claims.NotBefore) {
		return nil, domainerrors.TokenInvalid("token is not yet valid")
	}
	if !now.Before(claims.Expiration) {
		return nil, domainerrors.TokenExpired("token has expired")
	}

	return &claims, nil
}

// TokenTTL returns the configured action token lifetime.
func (s *TokenService) TokenTTL() time.Duration {
	return s.tokenTTL
}
