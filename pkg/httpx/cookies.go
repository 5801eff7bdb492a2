package httpx

import (
	"net/http"
	"time"
)

// Cookie names used for token transport.
const (
	AccessTokenCookie  = "access_token"
	RefreshTokenCookie = "refresh_token"
)

// CookieConfig controls the attributes shared by every cookie the service
// sets. Secure is off only in debug deployments served over plain HTTP.
type CookieConfig struct {
	Secure bool
	Domain string
}

// SetTokenCookie writes an HttpOnly, SameSite=Strict cookie whose Max-Age is
// the time left until expires. The value is written verbatim.
func SetTokenCookie(w http.ResponseWriter, cfg CookieConfig, name, value string, expires, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   maxAge(expires, now),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearCookie expires name on the client.
func ClearCookie(w http.ResponseWriter, cfg CookieConfig, name string, httpOnly bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: httpOnly,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// ClearTokenCookies expires both token cookies.
func ClearTokenCookies(w http.ResponseWriter, cfg CookieConfig) {
	ClearCookie(w, cfg, AccessTokenCookie, true)
	ClearCookie(w, cfg, RefreshTokenCookie, true)
}

// ReadCookie returns the raw value of the named cookie, or "" when absent.
func ReadCookie(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

// maxAge converts an absolute expiry into whole seconds, at least 1 so the
// cookie is never turned into a session cookie or a deletion.
func maxAge(expires, now time.Time) int {
	secs := int(expires.Sub(now) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
