package auth

import (
	"time"

	"github.com/tablematch/tablematch-server/internal/domain"
)

// ActionClaims represents the claims stored in a PASETO action token.
// These are encrypted in v4.local tokens, so they're not readable without
// the key. The subject is the invite ID for invite actions and the
// reservation ID for owner cancellation.
type ActionClaims struct {
	Action domain.Action `json:"action"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	SubjectID  string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}
