package store

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Drivers implement it and expose
// sub-repositories; the Tx variant hands out the same repositories bound to
// one transaction so multi-step operations stay atomic.
type Store interface {
	Users() Users
	OutstandingTokens() OutstandingTokens
	Blacklist() Blacklist

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail matches case-insensitively.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	GetUserByMobileNumber(ctx context.Context, mobile string) (domain.User, error)

	// CreateUser inserts u. Returns ErrAlreadyExists when the email or mobile
	// number is taken.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateProfile writes the editable profile fields and last_updated.
	UpdateProfile(ctx context.Context, u domain.User) error

	UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error

	// SetActive flips is_active. Returns ErrNotFound for unknown users.
	SetActive(ctx context.Context, userID string, active bool, at time.Time) error

	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

type OutstandingTokens interface {
	CreateOutstandingToken(ctx context.Context, t domain.OutstandingToken) error

	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Blacklist is an append-only set of revoked token ids.
type Blacklist interface {
	// Add inserts t. Returns ErrAlreadyExists when the jti is already
	// present, which lets callers detect a lost race on single-use tokens.
	Add(ctx context.Context, t domain.BlacklistedToken) error

	Contains(ctx context.Context, jti string) (bool, error)

	// AddAllForUser blacklists every live outstanding token of the user and
	// reports how many entries were added.
	AddAllForUser(ctx context.Context, userID string, now time.Time) (int64, error)

	// DeleteExpired prunes entries whose token has expired by now.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
