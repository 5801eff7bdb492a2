package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	accountshttp "github.com/aussiebroadwan/university/internal/accounts/http"
	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/jwtx"
	"github.com/aussiebroadwan/university/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "accounts-http")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

const password = "s3cret!pass"

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testServer struct {
	router  *accountshttp.Router
	store   *sqlite.Store
	srv     *httptest.Server
	users   *service.UserService
	tokens  *service.TokenService
	metrics *metrics.Metrics
	clock   *clock
}

func newTestServer(t *testing.T, mutate ...func(*accountshttp.Options)) *testServer {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	signer, err := jwtx.NewSignerHS256("test", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	clk := &clock{t: time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)}
	tokens, err := service.NewTokenService(st, signer, service.TokenConfig{
		Issuer:              "university-test",
		AccessTTL:           15 * time.Minute,
		RefreshTTL:          24 * time.Hour,
		RotateRefreshTokens: true,
		Now:                 clk.Now,
	})
	require.NoError(t, err)
	users := &service.UserService{Store: st, BlockedEmailDomains: service.DefaultBlockedEmailDomains, Now: clk.Now}

	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	m := metrics.New()
	opts := accountshttp.Options{
		BuildVersion: "test",
		CSRF:         &httpx.CSRF{Secret: []byte("csrf-secret"), Now: clk.Now},
		CSRFEnabled:  true,
		RateLimits:   httpx.RateLimits{Strict: generous, Moderate: generous, Lenient: generous, Public: generous},
		Metrics:      m,
		Now:          clk.Now,
	}
	for _, fn := range mutate {
		fn(&opts)
	}

	router := accountshttp.NewRouter(st, slogx.Discard(), opts)
	router.TokenService = tokens
	router.UserService = users
	router.ApplyRoutes()

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &testServer{router: router, store: st, srv: srv, users: users, tokens: tokens, metrics: m, clock: clk}
}

func (s *testServer) client(t *testing.T) *accountsdk.Client {
	t.Helper()
	c, err := accountsdk.NewClient(s.srv.URL)
	require.NoError(t, err)
	c.Logger = slogx.Discard()
	return c
}

func (s *testServer) register(t *testing.T, email string) *accountsdk.Client {
	t.Helper()
	c := s.client(t)
	_, err := c.Register(t.Context(), accountsdk.RegisterRequest{
		Email:     email,
		Password:  password,
		FirstName: "ada",
		LastName:  "lovelace",
	})
	require.NoError(t, err)
	return c
}

// serve runs req against the router directly, bypassing the network.
func (s *testServer) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) csrfCookie(t *testing.T) *http.Cookie {
	t.Helper()
	rec := s.serve(httptest.NewRequest(http.MethodGet, accountsdk.PathCSRF, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return findCookie(t, rec, httpx.CSRFCookie)
}

// post builds an unsafe request carrying a valid CSRF pair and cookies.
func (s *testServer) post(t *testing.T, path, body string, cookies ...*http.Cookie) *http.Request {
	t.Helper()
	csrf := s.csrfCookie(t)
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(httpx.CSRFHeader, csrf.Value)
	req.AddCookie(csrf)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) accountsdk.APIError {
	t.Helper()
	var e accountsdk.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	ctx := t.Context()

	require.True(t, c.Session.IsAuthenticated())
	carrier := c.Carrier.(*accountsdk.CookieCarrier)
	firstRefresh := carrier.Cookie(httpx.RefreshTokenCookie)
	require.NotEmpty(t, carrier.Cookie(httpx.AccessTokenCookie))
	require.NotEmpty(t, firstRefresh)

	me, err := c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Ada Lovelace", me.FullName)
	require.Equal(t, "student", me.Role)

	// The access token expires; the next call refreshes silently.
	s.clock.Advance(16 * time.Minute)
	me, err = c.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "ada@uni.edu", me.Email)

	rotated := carrier.Cookie(httpx.RefreshTokenCookie)
	require.NotEqual(t, firstRefresh, rotated)

	// The rotated-out refresh token is dead.
	rec := s.serve(s.post(t, accountsdk.PathRefresh, "", &http.Cookie{Name: httpx.RefreshTokenCookie, Value: firstRefresh}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeRevokedToken, decodeError(t, rec).Code)

	require.NoError(t, c.Logout(ctx))
	require.False(t, c.Session.IsAuthenticated())

	rec = s.serve(s.post(t, accountsdk.PathRefresh, "", &http.Cookie{Name: httpx.RefreshTokenCookie, Value: rotated}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeRevokedToken, decodeError(t, rec).Code)

	_, err = c.Me(ctx)
	require.ErrorIs(t, err, accountsdk.ErrSessionExpired)
	require.ErrorIs(t, err, accountsdk.ErrRefreshTokenMissing)
}

func TestLoginCookies(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@uni.edu")

	rec := s.serve(s.post(t, accountsdk.PathLogin, `{"email":" ADA@uni.edu ","password":"`+password+`"}`))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	require.NotContains(t, rec.Body.String(), "eyJ", "tokens must not appear in the body")

	var body accountsdk.AuthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "ada@uni.edu", body.User.Email)
	require.NotNil(t, body.User.LastLogin)

	access := findCookie(t, rec, httpx.AccessTokenCookie)
	refresh := findCookie(t, rec, httpx.RefreshTokenCookie)
	for _, c := range []*http.Cookie{access, refresh} {
		require.True(t, c.HttpOnly, c.Name)
		require.Equal(t, http.SameSiteStrictMode, c.SameSite, c.Name)
		require.Equal(t, "/", c.Path, c.Name)
	}
	require.Equal(t, int((15 * time.Minute).Seconds()), access.MaxAge)
	require.Equal(t, int((24 * time.Hour).Seconds()), refresh.MaxAge)

	// The cookie value set on login is accepted verbatim.
	req := httptest.NewRequest(http.MethodGet, accountsdk.PathMe, nil)
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: access.Value})
	rec = s.serve(req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ada@uni.edu")

	login := func(email, pw string) *httptest.ResponseRecorder {
		return s.serve(s.post(t, accountsdk.PathLogin, `{"email":"`+email+`","password":"`+pw+`"}`))
	}

	rec := login("ada@uni.edu", "wrong!pass1")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeInvalidCredentials, decodeError(t, rec).Code)

	unknown := login("nobody@uni.edu", password)
	require.Equal(t, rec.Body.String(), unknown.Body.String())

	rec = login("", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	e := decodeError(t, rec)
	require.Equal(t, accountsdk.ErrorCodeValidationFailure, e.Code)
	require.Contains(t, e.Details, "email")
	require.Contains(t, e.Details, "password")

	u, err := s.users.FindByEmail(t.Context(), "ada@uni.edu")
	require.NoError(t, err)
	require.NoError(t, s.users.Deactivate(t.Context(), u.ID))

	rec = login("ada@uni.edu", "wrong!pass1")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = login("ada@uni.edu", password)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeInactiveAccount, decodeError(t, rec).Code)
}

func TestAuthenticationFailuresLookAlike(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	carrier := c.Carrier.(*accountsdk.CookieCarrier)
	access := carrier.Cookie(httpx.AccessTokenCookie)

	me := func(cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, accountsdk.PathMe, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: cookie})
		}
		return s.serve(req)
	}

	const want = `{"code":"authentication_failed","message":"authentication failed"}`

	missing := me("")
	garbage := me("not-a-jwt")
	s.clock.Advance(16 * time.Minute)
	expired := me(access)

	for name, rec := range map[string]*httptest.ResponseRecorder{
		"missing": missing,
		"garbage": garbage,
		"expired": expired,
	} {
		require.Equal(t, http.StatusUnauthorized, rec.Code, name)
		require.JSONEq(t, want, rec.Body.String(), name)
	}

	require.Equal(t, 1.0, s.authFailures(t, "missing"))
	require.Equal(t, 1.0, s.authFailures(t, "malformed"))
	require.Equal(t, 1.0, s.authFailures(t, "expired"))
}

func TestHeaderAuth(t *testing.T) {
	bearer := func(s *testServer, token string) int {
		req := httptest.NewRequest(http.MethodGet, accountsdk.PathMe, nil)
		req.Header.Set("Authorization", "Bearer "+token)
		return s.serve(req).Code
	}

	t.Run("ignored by default", func(t *testing.T) {
		s := newTestServer(t)
		c := s.register(t, "ada@uni.edu")
		token := c.Carrier.(*accountsdk.CookieCarrier).Cookie(httpx.AccessTokenCookie)
		require.Equal(t, http.StatusUnauthorized, bearer(s, token))
	})

	t.Run("accepted when enabled", func(t *testing.T) {
		s := newTestServer(t, func(o *accountshttp.Options) { o.AllowHeaderAuth = true })
		c := s.register(t, "ada@uni.edu")
		token := c.Carrier.(*accountsdk.CookieCarrier).Cookie(httpx.AccessTokenCookie)
		require.Equal(t, http.StatusOK, bearer(s, token))
	})
}

func TestCSRFEnforced(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, accountsdk.PathLogin, strings.NewReader(`{}`))
	rec := s.serve(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeCSRFFailed, decodeError(t, rec).Code)

	csrf := s.csrfCookie(t)
	require.False(t, csrf.HttpOnly)
	req = httptest.NewRequest(http.MethodPost, accountsdk.PathLogin, strings.NewReader(`{}`))
	req.AddCookie(csrf)
	req.Header.Set(httpx.CSRFHeader, csrf.Value+"x")
	require.Equal(t, http.StatusForbidden, s.serve(req).Code)
}

func TestRefreshWithoutCookie(t *testing.T) {
	s := newTestServer(t)
	rec := s.serve(s.post(t, accountsdk.PathRefresh, ""))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeRefreshTokenMissing, decodeError(t, rec).Code)
}

func TestRefreshClearsCookiesOnRejection(t *testing.T) {
	s := newTestServer(t)
	rec := s.serve(s.post(t, accountsdk.PathRefresh, "", &http.Cookie{Name: httpx.RefreshTokenCookie, Value: "junk"}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeMalformedToken, decodeError(t, rec).Code)
	require.Negative(t, findCookie(t, rec, httpx.AccessTokenCookie).MaxAge)
	require.Negative(t, findCookie(t, rec, httpx.RefreshTokenCookie).MaxAge)
}

func TestRefreshInactiveAccount(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	ctx := t.Context()
	u, err := c.Me(ctx)
	require.NoError(t, err)
	refresh := c.Carrier.(*accountsdk.CookieCarrier).Cookie(httpx.RefreshTokenCookie)

	// Flip the flag without revoking tokens so the refresh token itself
	// stays valid.
	require.NoError(t, s.store.Users().SetActive(ctx, u.ID, false, s.clock.Now()))

	rec := s.serve(s.post(t, accountsdk.PathRefresh, "", &http.Cookie{Name: httpx.RefreshTokenCookie, Value: refresh}))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeInactiveAccount, decodeError(t, rec).Code)
	require.Negative(t, findCookie(t, rec, httpx.AccessTokenCookie).MaxAge)
	require.Negative(t, findCookie(t, rec, httpx.RefreshTokenCookie).MaxAge)
}

func TestAuthenticationStoreFailure(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	access := c.Carrier.(*accountsdk.CookieCarrier).Cookie(httpx.AccessTokenCookie)

	require.NoError(t, s.store.Close())

	req := httptest.NewRequest(http.MethodGet, accountsdk.PathMe, nil)
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: access})
	rec := s.serve(req)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Equal(t, accountsdk.ErrorCodeServerError, decodeError(t, rec).Code)
	require.Equal(t, 1.0, s.authFailures(t, "error"))
}

func TestProfileUpdate(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	ctx := t.Context()

	first, mobile := "augusta", "98765 43210"
	u, err := c.UpdateProfile(ctx, accountsdk.ProfileUpdateRequest{FirstName: &first, MobileNumber: &mobile})
	require.NoError(t, err)
	require.Equal(t, "Augusta", u.FirstName)
	require.Equal(t, "+919876543210", u.MobileNumber)

	sessionUser, ok := c.Session.User()
	require.True(t, ok)
	require.Equal(t, "Augusta", sessionUser.FirstName)

	err = c.Do(ctx, http.MethodPatch, accountsdk.PathMe, map[string]string{"email": "eve@uni.edu", "role": "admin"}, nil)
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, accountsdk.ErrorCodeValidationFailure, apiErr.Code)
	require.NotEmpty(t, apiErr.FieldError("email"))
	require.NotEmpty(t, apiErr.FieldError("role"))

	bad := "12345"
	_, err = c.UpdateProfile(ctx, accountsdk.ProfileUpdateRequest{MobileNumber: &bad})
	require.ErrorAs(t, err, &apiErr)
	require.NotEmpty(t, apiErr.FieldError("mobile_number"))
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t)

	_, err := c.Register(t.Context(), accountsdk.RegisterRequest{
		Email:     "someone@example.com",
		Password:  "short",
		FirstName: "ada",
	})
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.NotEmpty(t, apiErr.FieldError("email"))
	require.NotEmpty(t, apiErr.FieldError("password"))
	require.NotEmpty(t, apiErr.FieldError("last_name"))
	require.False(t, c.Session.IsAuthenticated())
}

func TestPasswordChangeEndsEverySession(t *testing.T) {
	s := newTestServer(t)
	ctx := t.Context()
	a := s.register(t, "ada@uni.edu")

	b := s.client(t)
	_, err := b.Login(ctx, "ada@uni.edu", password)
	require.NoError(t, err)

	var expired bool
	b.OnSessionExpired = func() { expired = true }

	require.NoError(t, a.ChangePassword(ctx, password, "n3w!password"))
	require.False(t, a.Session.IsAuthenticated())

	_, err = a.Me(ctx)
	require.ErrorIs(t, err, accountsdk.ErrSessionExpired)

	// b keeps its access token until it expires, then cannot refresh.
	_, err = b.Me(ctx)
	require.NoError(t, err)
	s.clock.Advance(16 * time.Minute)
	_, err = b.Me(ctx)
	require.ErrorIs(t, err, accountsdk.ErrSessionExpired)
	require.ErrorIs(t, err, accountsdk.ErrRevokedToken)
	require.True(t, expired)
	require.False(t, b.Session.IsAuthenticated())

	_, err = a.Login(ctx, "ada@uni.edu", password)
	require.ErrorIs(t, err, accountsdk.ErrInvalidCredentials)
	_, err = a.Login(ctx, "ada@uni.edu", "n3w!password")
	require.NoError(t, err)
}

func TestPasswordChangeWrongOldPassword(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")

	err := c.ChangePassword(t.Context(), "nope!nope1", "n3w!password")
	var apiErr *accountsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.NotEmpty(t, apiErr.FieldError("old_password"))
	require.True(t, c.Session.IsAuthenticated())
}

func TestConcurrentCallsShareOneRefresh(t *testing.T) {
	s := newTestServer(t)
	c := s.register(t, "ada@uni.edu")
	s.clock.Advance(16 * time.Minute)

	const n = 6
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = c.Me(t.Context())
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, 1.0, s.refreshes(t, "success"))
	require.Zero(t, s.refreshes(t, "revoked_token"))
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)
	c := s.client(t)

	live, err := c.GetLiveness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.Equal(t, "test", live.Version)

	ready, err := c.GetReadiness(t.Context())
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Checks.Database)
	require.Equal(t, "ok", ready.Checks.Signer)

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `university_http_request_duration_seconds_count{method="GET",route="GET /livez",status="200"} 1`)
}

// counter reads a labelled counter from the server registry, 0 when the
// series does not exist yet.
func (s *testServer) counter(t *testing.T, name, label, value string) float64 {
	t.Helper()
	families, err := s.metrics.Registry().Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func (s *testServer) authFailures(t *testing.T, reason string) float64 {
	return s.counter(t, "university_auth_authentication_failures_total", "reason", reason)
}

func (s *testServer) refreshes(t *testing.T, outcome string) float64 {
	return s.counter(t, "university_auth_refreshes_total", "outcome", outcome)
}
