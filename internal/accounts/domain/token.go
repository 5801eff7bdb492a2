package domain

import "time"

// TokenPair is what a successful login or refresh hands to the cookie
// transport. RefreshToken is empty when a refresh did not rotate.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Rotated reports whether the pair carries a new refresh token.
func (p TokenPair) Rotated() bool { return p.RefreshToken != "" }

// OutstandingToken records every refresh token ever issued, so all of a
// user's sessions can be revoked at once.
type OutstandingToken struct {
	JTI       string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// BlacklistedToken is an entry of the append-only revocation set. Entries
// are only removed once ExpiresAt has passed, when the token is dead anyway.
type BlacklistedToken struct {
	JTI           string
	UserID        string
	ExpiresAt     time.Time
	BlacklistedAt time.Time
}
