package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type LoginHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	Cookies      sessionCookies
	Metrics      *metrics.Metrics
}

// ServeHTTP godoc
//
//	@Summary		Sign in
//	@Description	Verifies email and password and sets the access_token and refresh_token cookies. Tokens never appear in the body.
//	@Description	An inactive account is only reported once the password has matched.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	accountsdk.AuthResponse	"message, user"
//	@Failure		400		{object}	accountsdk.APIError		"validation_failure or invalid_request"
//	@Failure		401		{object}	accountsdk.APIError		"invalid_credentials"
//	@Failure		403		{object}	accountsdk.APIError		"inactive_account or csrf_failed"
//	@Failure		429		{object}	accountsdk.APIError		"rate_limit_exceeded"
//	@Router			/auth/login/ [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req accountsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	details := map[string][]string{}
	if strings.TrimSpace(req.Email) == "" {
		details["email"] = []string{"cannot be blank"}
	}
	if req.Password == "" {
		details["password"] = []string{"cannot be blank"}
	}
	if len(details) > 0 {
		h.Metrics.ObserveLogin("validation_failure")
		accountsdk.NewValidationError(details).WriteError(w)
		return
	}

	u, err := h.UserService.Login(ctx, req.Email, req.Password)
	h.Metrics.ObserveLogin(outcome(err))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.TokenService.Issue(ctx, u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", u.ID)

	h.Cookies.set(w, pair)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.AuthResponse{
		Message: "login successful",
		User:    toUser(u),
	})
}
