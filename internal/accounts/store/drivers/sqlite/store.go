package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite/gen"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Connection pragmas applied to every pooled connection. Transactions begin
// IMMEDIATE so two writers racing on the blacklist serialize on the write lock
// instead of failing a deferred lock upgrade.
const defaultParams = "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate"

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

// NewStore opens the database at dsn. A bare path gets the default pragmas
// and WAL; in-memory databases are pinned to a single connection so every
// query sees the same database.
func NewStore(dsn string) (*Store, error) {
	full, memory := buildDSN(dsn)

	db, err := sql.Open("sqlite", full)
	if err != nil {
		return nil, err
	}
	if memory {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func buildDSN(dsn string) (string, bool) {
	memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if strings.Contains(dsn, "?") {
		return dsn + "&" + defaultParams, memory
	}
	if memory {
		return dsn + "?" + defaultParams, true
	}
	return dsn + "?" + defaultParams + "&_pragma=journal_mode(WAL)", false
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users                         { return &usersRepo{q: s.q} }
func (s *Store) OutstandingTokens() store.OutstandingTokens { return &outstandingRepo{q: s.q} }
func (s *Store) Blacklist() store.Blacklist                 { return &blacklistRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConstraint turns unique and primary key violations into
// store.ErrAlreadyExists.
func mapConstraint(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		case sqlite3.SQLITE_CONSTRAINT:
			if strings.Contains(se.Error(), "UNIQUE") {
				return store.ErrAlreadyExists
			}
		}
	}
	return err
}

func unix(t time.Time) int64 { return t.UTC().Unix() }

func fromUnix(v int64) time.Time { return time.Unix(v, 0).UTC() }

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if ns.Valid {
		val := ns.String
		return &val
	}
	return nil
}

func mapUser(row gen.User) domain.User {
	var lastLogin *time.Time
	if row.LastLogin.Valid {
		t := fromUnix(row.LastLogin.Int64)
		lastLogin = &t
	}

	return domain.User{
		ID:              row.ID,
		Email:           row.Email,
		FirstName:       row.FirstName,
		LastName:        row.LastName,
		MobileNumber:    mapNullStringPtr(row.MobileNumber),
		Bio:             row.Bio,
		Role:            domain.Role(row.Role),
		PasswordHash:    row.PasswordHash,
		IsActive:        row.IsActive,
		IsEmailVerified: row.IsEmailVerified,
		IsStaff:         row.IsStaff,
		IsSuperuser:     row.IsSuperuser,
		LastLogin:       lastLogin,
		DateJoined:      fromUnix(row.DateJoined),
		LastUpdated:     fromUnix(row.LastUpdated),
	}
}
