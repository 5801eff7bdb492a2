package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default lifetimes. Access tokens are short lived; refresh tokens last a day,
// which keeps a 1:96 ratio between the two.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 24 * time.Hour
)

// TokenType separates access tokens from refresh tokens so one can never be
// presented in place of the other.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims carried by both token types.
type Claims struct {
	jwt.RegisteredClaims

	TokenType TokenType `json:"token_type"`

	// Email of the subject at issue time, informational only.
	Email string `json:"email,omitempty"`

	// Staff mirrors the is_staff flag at issue time.
	Staff bool `json:"staff,omitempty"`
}

// NewClaims builds claims for a token of the given type with a fresh jti.
func NewClaims(typ TokenType, subject, email string, staff bool, ttl time.Duration, issuer string, now time.Time) Claims {
	now = now.UTC().Truncate(time.Second)
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		TokenType: typ,
		Email:     email,
		Staff:     staff,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}

// ValidateType checks the token_type claim.
func (c *Claims) ValidateType(want TokenType) error {
	if c.TokenType != want {
		return ErrWrongType
	}
	return nil
}

// Expiry returns the exp claim, or the zero time when absent.
func (c *Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.UTC()
}
