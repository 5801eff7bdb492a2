package http

import (
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type LogoutHandler struct {
	TokenService    *service.TokenService
	Cookies         sessionCookies
	AllowHeaderAuth bool
}

// ServeHTTP godoc
//
//	@Summary		Sign out
//	@Description	Revokes the refresh token (cookie, or the refresh field of the body) and the current access token, then clears both cookies.
//	@Description	Always succeeds so a client can sign out with broken credentials.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LogoutRequest	false	"Refresh token when no cookie is sent"
//	@Success		200		{object}	accountsdk.MessageResponse	"message"
//	@Failure		403		{object}	accountsdk.APIError			"csrf_failed"
//	@Router			/auth/logout/ [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	refresh := httpx.ReadCookie(r, httpx.RefreshTokenCookie)
	if refresh == "" {
		var body accountsdk.LogoutRequest
		if err := httpx.DecodeJSON(w, r, &body); err == nil {
			refresh = body.Refresh
		}
	}

	for _, token := range []string{refresh, httpx.AccessTokenFromRequest(r, h.AllowHeaderAuth)} {
		if err := h.TokenService.Blacklist(ctx, token); err != nil {
			log.Warn("failed to revoke token on logout", "err", err)
		}
	}

	h.Cookies.clear(w)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.MessageResponse{Message: "logout successful"})
}
