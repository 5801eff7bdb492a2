package http

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"

	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type MeHandler struct {
	UserService *service.UserService
}

// HandleGet godoc
//
//	@Summary		Current user
//	@Description	Returns the profile of the authenticated user.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Produce		json
//	@Success		200	{object}	accountsdk.User			"Profile"
//	@Failure		401	{object}	accountsdk.APIError		"authentication_failed"
//	@Failure		500	{object}	accountsdk.APIError		"Internal server error"
//	@Router			/auth/me/ [get].
func (h *MeHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		accountsdk.ErrAuthenticationFailed.WriteError(w)
		return
	}

	u, err := h.UserService.GetProfile(ctx, p.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}

// HandleUpdate godoc
//
//	@Summary		Update profile
//	@Description	Partially updates first_name, last_name, mobile_number and bio. An empty mobile_number removes it.
//	@Description	Read-only fields such as email, role and date_joined are rejected with a validation error.
//	@Tags			Profile
//	@Security		CookieAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ProfileUpdateRequest	true	"Fields to change"
//	@Success		200		{object}	accountsdk.User					"Updated profile"
//	@Failure		400		{object}	accountsdk.APIError				"validation_failure or invalid_request"
//	@Failure		401		{object}	accountsdk.APIError				"authentication_failed"
//	@Failure		403		{object}	accountsdk.APIError				"csrf_failed"
//	@Router			/auth/me/ [patch]
//	@Router			/auth/me/ [post].
func (h *MeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, ok := httpx.PrincipalFromContext(ctx)
	if !ok {
		accountsdk.ErrAuthenticationFailed.WriteError(w)
		return
	}

	var raw map[string]json.RawMessage
	if !decodeBody(w, r, &raw) {
		return
	}
	if err := service.RejectReadOnlyFields(slices.Sorted(maps.Keys(raw))); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var upd service.ProfileUpdate
	b, _ := json.Marshal(raw) // re-encoding decoded raw messages cannot fail
	if err := json.Unmarshal(b, &upd); err != nil {
		slogx.FromContext(ctx).Debug("rejecting profile update", "err", err)
		accountsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	u, err := h.UserService.UpdateProfile(ctx, p.UserID, upd)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, toUser(u))
}
