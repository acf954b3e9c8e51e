package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields read from a JWT bearer token. The signature is not
// verified; the server stays the authority on validity.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
	HasExpiry bool
}

// Expired reports whether the token carries an expiry that has passed.
func (c Claims) Expired(now time.Time) bool {
	return c.HasExpiry && !now.Before(c.ExpiresAt)
}

// ParseClaims decodes token without verifying it. Opaque tokens return an error.
func ParseClaims(token string) (Claims, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, fmt.Errorf("decode token: unexpected claims type %T", parsed.Claims)
	}

	var c Claims
	c.Subject, _ = mc.GetSubject()
	if role, ok := mc["role"].(string); ok {
		c.Role = role
	}
	exp, err := mc.GetExpirationTime()
	if err != nil {
		return Claims{}, fmt.Errorf("decode token: %w", err)
	}
	if exp != nil {
		c.ExpiresAt = exp.Time
		c.HasExpiry = true
	}
	return c, nil
}

// Claims decodes the stored token.
func (g *Guard) Claims() (Claims, error) {
	token := g.Token()
	if token == "" {
		return Claims{}, ErrUnauthenticated
	}
	return ParseClaims(token)
}
