package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
)

// errRefreshInactive is inactive_account as refresh reports it: 401, where
// login answers 403.
var errRefreshInactive = accountsdk.NewAPIError(
	http.StatusUnauthorized,
	accountsdk.ErrorCodeInactiveAccount,
	accountsdk.ErrInactiveAccount.Message,
)

type RefreshHandler struct {
	TokenService *service.TokenService
	Cookies      sessionCookies
	Metrics      *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Refresh the access token
//	@Description	Reads the refresh_token cookie and sets a new access_token cookie. With rotation enabled the presented refresh token is revoked and a new refresh_token cookie is set.
//	@Description	Rejected refresh tokens also clear both cookies.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	accountsdk.RefreshResponse	"message, access_expires_at, rotated"
//	@Failure		400	{object}	accountsdk.APIError			"refresh_token_missing"
//	@Failure		401	{object}	accountsdk.APIError			"expired_token, revoked_token, malformed_token or inactive_account"
//	@Failure		403	{object}	accountsdk.APIError			"csrf_failed"
//	@Failure		429	{object}	accountsdk.APIError			"rate_limit_exceeded"
//	@Router			/auth/token/refresh/ [post].
func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	refresh := httpx.ReadCookie(r, httpx.RefreshTokenCookie)
	if refresh == "" {
		h.Metrics.ObserveRefresh("missing")
		accountsdk.ErrRefreshTokenMissing.WriteError(w)
		return
	}

	pair, err := h.TokenService.Refresh(r.Context(), refresh)
	h.Metrics.ObserveRefresh(outcome(err))
	if err != nil {
		if rejected(err) {
			h.Cookies.clear(w)
		}
		if errors.Is(err, service.ErrInactiveAccount) {
			errRefreshInactive.WriteError(w)
			return
		}
		writeServiceError(w, r, err)
		return
	}

	h.Cookies.set(w, pair)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.RefreshResponse{
		Message:         "token refreshed",
		AccessExpiresAt: pair.AccessExpiresAt,
		Rotated:         pair.Rotated(),
	})
}

// rejected reports whether err means the presented credentials can never
// succeed again.
func rejected(err error) bool {
	return errors.Is(err, service.ErrExpiredToken) ||
		errors.Is(err, service.ErrRevokedToken) ||
		errors.Is(err, service.ErrMalformedToken) ||
		errors.Is(err, service.ErrInactiveAccount)
}
