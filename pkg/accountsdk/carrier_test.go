package accountsdk

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestCookieCarrier(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: httpx.AccessTokenCookie, Value: "a1", Path: "/", HttpOnly: true})
		http.SetCookie(w, &http.Cookie{Name: httpx.RefreshTokenCookie, Value: "r1", Path: "/", HttpOnly: true})
		http.SetCookie(w, &http.Cookie{Name: httpx.CSRFCookie, Value: "c1", Path: "/"})
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	carrier, err := NewCookieCarrier(srv.URL)
	require.NoError(t, err)

	resp, err := srv.Client().Get(srv.URL + "/auth/login/")
	require.NoError(t, err)
	resp.Body.Close()
	carrier.Capture(resp)

	require.Equal(t, "a1", carrier.Cookie(httpx.AccessTokenCookie))
	require.Equal(t, "r1", carrier.Cookie(httpx.RefreshTokenCookie))
	require.Equal(t, "c1", carrier.CSRFToken())

	t.Run("attaches cookies and csrf header on unsafe methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, srv.URL+PathMe, nil)
		carrier.Attach(req)
		require.Equal(t, "a1", httpx.ReadCookie(req, httpx.AccessTokenCookie))
		require.Equal(t, "c1", req.Header.Get(httpx.CSRFHeader))
	})

	t.Run("no csrf header on safe methods", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, srv.URL+PathMe, nil)
		carrier.Attach(req)
		require.Equal(t, "r1", httpx.ReadCookie(req, httpx.RefreshTokenCookie))
		require.Empty(t, req.Header.Get(httpx.CSRFHeader))
	})

	t.Run("clear drops tokens but keeps csrf", func(t *testing.T) {
		carrier.Clear()
		require.Empty(t, carrier.Cookie(httpx.AccessTokenCookie))
		require.Empty(t, carrier.Cookie(httpx.RefreshTokenCookie))
		require.Equal(t, "c1", carrier.CSRFToken())
	})
}
