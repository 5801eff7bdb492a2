package http

import (
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type PasswordChangeHandler struct {
	UserService     *service.UserService
	TokenService    *service.TokenService
	Cookies         sessionCookies
	Metrics         *metrics.Metrics
	AllowHeaderAuth bool
}

// ServeHTTP godoc
//
//	@Summary		Change password
//	@Description	Replaces the password and revokes every session of the user, including the current one. Both cookies are cleared; the client signs in again.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.PasswordChangeRequest	true	"Old and new password"
//	@Success		200		{object}	accountsdk.MessageResponse			"message"
//	@Failure		400		{object}	accountsdk.APIError					"validation_failure or invalid_request"
//	@Failure		401		{object}	accountsdk.APIError					"authentication_failed"
//	@Failure		403		{object}	accountsdk.APIError					"csrf_failed"
//	@Router			/auth/password/change/ [post].
func (h *PasswordChangeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		accountsdk.ErrAuthenticationFailed.WriteError(w)
		return
	}

	var in service.PasswordChange
	if !decodeBody(w, r, &in) {
		return
	}

	revoked, err := h.UserService.ChangePassword(ctx, p.UserID, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	// Outstanding refresh tokens are covered above; the cookie refresh token
	// and the access token of this request are revoked explicitly.
	for _, token := range []string{
		httpx.ReadCookie(r, httpx.RefreshTokenCookie),
		httpx.AccessTokenFromRequest(r, h.AllowHeaderAuth),
	} {
		if err := h.TokenService.Blacklist(ctx, token); err != nil {
			log.Warn("failed to revoke token after password change", "err", err)
		}
	}
	h.Metrics.ObserveRevocations(int(revoked))

	h.Cookies.clear(w)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.MessageResponse{Message: "password changed, please sign in again"})
}
