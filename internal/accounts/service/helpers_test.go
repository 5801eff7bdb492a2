package service

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "accounts-service")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store  *sqlite.Store
	tokens *TokenService
	users  *UserService
	clock  *fakeClock
}

type fixtureOption func(*TokenConfig)

func withoutRotation(cfg *TokenConfig) { cfg.RotateRefreshTokens = false }

func withLeeway(d time.Duration) fixtureOption {
	return func(cfg *TokenConfig) { cfg.Leeway = d }
}

func newFixture(t *testing.T, dsn string, opts ...fixtureOption) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256("test", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	clock := newFakeClock()
	cfg := TokenConfig{
		Issuer:              "university-test",
		AccessTTL:           15 * time.Minute,
		RefreshTTL:          24 * time.Hour,
		RotateRefreshTokens: true,
		Now:                 clock.Now,
	}
	for _, o := range opts {
		o(&cfg)
	}

	tokens, err := NewTokenService(st, signer, cfg)
	require.NoError(t, err)

	return &fixture{
		store:  st,
		tokens: tokens,
		users: &UserService{
			Store:               st,
			BlockedEmailDomains: DefaultBlockedEmailDomains,
			Now:                 clock.Now,
		},
		clock: clock,
	}
}

const testPassword = "s3cret!pass"

func (f *fixture) register(t *testing.T, email string) RegisterInput {
	t.Helper()
	in := RegisterInput{
		Email:     email,
		Password:  testPassword,
		FirstName: "ada",
		LastName:  "lovelace",
	}
	_, err := f.users.Register(t.Context(), in)
	require.NoError(t, err)
	return in
}
