package httpx_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/stretchr/testify/require"
)

var (
	errExpired = errors.New("expired")
	errRevoked = errors.New("revoked")
)

// fakeAuthenticator accepts "good" and rejects anything else with the error
// mapped in failures.
type fakeAuthenticator struct {
	failures map[string]error
	seen     []string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (httpx.Principal, error) {
	f.seen = append(f.seen, token)
	if token == "good" {
		return httpx.Principal{UserID: "user-1", Email: "a@uni.edu", TokenID: "jti-1"}, nil
	}
	if err, ok := f.failures[token]; ok {
		return httpx.Principal{}, err
	}
	return httpx.Principal{}, errors.New("malformed")
}

func protected(t *testing.T, a httpx.Authenticator, opts httpx.AuthnOptions) http.Handler {
	t.Helper()
	return httpx.AuthnMiddleware(a, opts)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := httpx.PrincipalFromContext(r.Context())
		require.True(t, ok)
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"user": p.UserID})
	}))
}

func TestAuthnMiddlewareCookie(t *testing.T) {
	a := &fakeAuthenticator{}
	h := protected(t, a, httpx.AuthnOptions{})

	req := httptest.NewRequest(http.MethodGet, "/auth/me/", nil)
	req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "good"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"user":"user-1"}`, rec.Body.String())
}

func TestAuthnMiddlewareFailuresAreIndistinguishable(t *testing.T) {
	a := &fakeAuthenticator{failures: map[string]error{"expired": errExpired, "revoked": errRevoked}}

	var causes []error
	h := protected(t, a, httpx.AuthnOptions{OnFailure: func(_ *http.Request, err error) { causes = append(causes, err) }})

	var bodies []string
	for _, token := range []string{"", "expired", "revoked", "garbage"} {
		req := httptest.NewRequest(http.MethodGet, "/auth/me/", nil)
		if token != "" {
			req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: token})
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		bodies = append(bodies, rec.Body.String())
	}

	for _, b := range bodies[1:] {
		require.Equal(t, bodies[0], b)
	}
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(bodies[0]), &body))
	require.Equal(t, "authentication_failed", body["code"])
	require.Equal(t, "authentication failed", body["message"])

	require.Len(t, causes, 4)
	require.ErrorIs(t, causes[0], httpx.ErrNoToken)
	require.ErrorIs(t, causes[1], errExpired)
	require.ErrorIs(t, causes[2], errRevoked)
}

func TestAuthnMiddlewareInfrastructureFailure(t *testing.T) {
	errDown := errors.New("database is locked")
	a := &fakeAuthenticator{failures: map[string]error{"expired": errExpired, "down": errDown}}

	var causes []error
	h := protected(t, a, httpx.AuthnOptions{
		OnFailure:   func(_ *http.Request, err error) { causes = append(causes, err) },
		IsRejection: func(err error) bool { return !errors.Is(err, errDown) },
	})

	status := func(token string) (int, string) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me/", nil)
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: token})
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		return rec.Code, body["code"]
	}

	code, errCode := status("down")
	require.Equal(t, http.StatusInternalServerError, code)
	require.Equal(t, "server_error", errCode)

	code, errCode = status("expired")
	require.Equal(t, http.StatusUnauthorized, code)
	require.Equal(t, "authentication_failed", errCode)

	require.Len(t, causes, 2)
	require.ErrorIs(t, causes[0], errDown)
}

func TestAuthnMiddlewareHeaderFallback(t *testing.T) {
	t.Run("ignored when disabled", func(t *testing.T) {
		a := &fakeAuthenticator{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		protected(t, a, httpx.AuthnOptions{}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Empty(t, a.seen)
	})

	t.Run("used when enabled", func(t *testing.T) {
		a := &fakeAuthenticator{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()
		protected(t, a, httpx.AuthnOptions{AllowHeaderAuth: true}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("cookie wins over header", func(t *testing.T) {
		a := &fakeAuthenticator{}
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		req.AddCookie(&http.Cookie{Name: httpx.AccessTokenCookie, Value: "from-cookie"})
		rec := httptest.NewRecorder()
		protected(t, a, httpx.AuthnOptions{AllowHeaderAuth: true}).ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, []string{"from-cookie"}, a.seen)
	})
}

func TestAuthenticatorFunc(t *testing.T) {
	f := httpx.AuthenticatorFunc(func(context.Context, string) (httpx.Principal, error) {
		return httpx.Principal{UserID: "x"}, nil
	})
	p, err := f.Authenticate(context.Background(), "t")
	require.NoError(t, err)
	require.Equal(t, "x", p.UserID)
}
