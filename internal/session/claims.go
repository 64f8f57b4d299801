package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the unverified JWT claims of the stored token. The signature
// is never checked here; the backend remains the authority.
type Claims struct {
	Subject   string
	ExpiresAt time.Time
}

func (c *Claims) Expired(now time.Time) bool {
	return c != nil && !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// parseClaims returns nil for opaque (non-JWT) tokens.
func parseClaims(token string) *Claims {
	var rc jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil
	}
	c := &Claims{Subject: rc.Subject}
	if rc.ExpiresAt != nil {
		c.ExpiresAt = rc.ExpiresAt.Time
	}
	return c
}
