package httpx

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

// Double-submit CSRF cookie and header names.
const (
	CSRFCookie = "csrftoken"
	CSRFHeader = "X-CSRF-Token"
)

// DefaultCSRFTTL is how long an issued CSRF cookie lives.
const DefaultCSRFTTL = 365 * 24 * time.Hour

var (
	ErrCSRFMissing  = errors.New("csrf token missing")
	ErrCSRFMismatch = errors.New("csrf header does not match cookie")
	ErrCSRFInvalid  = errors.New("csrf token signature invalid")
)

// CSRF implements the signed double-submit cookie pattern. A token is
// "nonce.sig" where sig is an HMAC of nonce under Secret; it is set in a
// readable cookie and must be echoed in the X-CSRF-Token header on every
// unsafe request.
type CSRF struct {
	Secret []byte
	Cookie CookieConfig
	TTL    time.Duration
	Now    func() time.Time
}

// Issue generates a fresh token, sets it as the CSRF cookie and returns it.
func (c *CSRF) Issue(w http.ResponseWriter) (string, error) {
	nonce, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}
	token := nonce + "." + cryptox.SignHMAC(c.Secret, nonce)

	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	ttl := c.TTL
	if ttl <= 0 {
		ttl = DefaultCSRFTTL
	}

	http.SetCookie(w, &http.Cookie{
		Name:     CSRFCookie,
		Value:    token,
		Path:     "/",
		Domain:   c.Cookie.Domain,
		MaxAge:   maxAge(now.Add(ttl), now),
		HttpOnly: false, // the client must read it back into the header
		Secure:   c.Cookie.Secure,
		SameSite: http.SameSiteStrictMode,
	})
	return token, nil
}

// Check validates the double-submit pair on r.
func (c *CSRF) Check(r *http.Request) error {
	cookie := ReadCookie(r, CSRFCookie)
	header := r.Header.Get(CSRFHeader)
	if cookie == "" || header == "" {
		return ErrCSRFMissing
	}
	if subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
		return ErrCSRFMismatch
	}
	nonce, sig, ok := strings.Cut(header, ".")
	if !ok || !cryptox.VerifyHMAC(c.Secret, nonce, sig) {
		return ErrCSRFInvalid
	}
	return nil
}

// Middleware enforces Check on unsafe methods. Requests that authenticate
// with a bearer header and carry no token cookies are not exposed to
// cross-site forgery and pass through.
func (c *CSRF) Middleware() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if IsSafeMethod(r.Method) || headerOnly(r) {
				next.ServeHTTP(w, r)
				return
			}

			if err := c.Check(r); err != nil {
				slogx.FromContext(r.Context()).Warn("csrf check failed", "err", err)
				WriteError(w, http.StatusForbidden, "csrf_failed", "CSRF verification failed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func headerOnly(r *http.Request) bool {
	if r.Header.Get("Authorization") == "" {
		return false
	}
	return ReadCookie(r, AccessTokenCookie) == "" && ReadCookie(r, RefreshTokenCookie) == ""
}
