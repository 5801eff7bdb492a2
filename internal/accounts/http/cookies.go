package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/pkg/httpx"
)

// sessionCookies writes token pairs to the response as HttpOnly cookies.
type sessionCookies struct {
	Config httpx.CookieConfig
	Now    func() time.Time
}

// set writes the access cookie and, when the pair carries one, the refresh
// cookie. Each cookie lives exactly as long as its token.
func (c sessionCookies) set(w http.ResponseWriter, pair domain.TokenPair) {
	now := c.Now()
	httpx.SetTokenCookie(w, c.Config, httpx.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt, now)
	if pair.Rotated() {
		httpx.SetTokenCookie(w, c.Config, httpx.RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt, now)
	}
}

func (c sessionCookies) clear(w http.ResponseWriter) {
	httpx.ClearTokenCookies(w, c.Config)
}
