package http

import (
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type RegisterHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	Cookies      sessionCookies
}

// ServeHTTP godoc
//
//	@Summary		Register an account
//	@Description	Creates a student account and signs it in. Field errors are returned under details, keyed by input name.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest	true	"Signup form"
//	@Success		201		{object}	accountsdk.AuthResponse		"message, user"
//	@Failure		400		{object}	accountsdk.APIError			"validation_failure or invalid_request"
//	@Failure		403		{object}	accountsdk.APIError			"csrf_failed"
//	@Failure		429		{object}	accountsdk.APIError			"rate_limit_exceeded"
//	@Router			/auth/register/ [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var in service.RegisterInput
	if !decodeBody(w, r, &in) {
		return
	}

	u, err := h.UserService.Register(ctx, in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	pair, err := h.TokenService.Issue(ctx, u)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID)

	h.Cookies.set(w, pair)
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusCreated, accountsdk.AuthResponse{
		Message: "registration successful",
		User:    toUser(u),
	})
}
