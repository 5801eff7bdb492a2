package http

import (
	"net/http"

	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type CSRFHandler struct {
	CSRF *httpx.CSRF
}

// ServeHTTP godoc
//
//	@Summary		Issue a CSRF token
//	@Description	Sets the csrftoken cookie and returns the same value. Browsers echo it in the X-CSRF-Token header on every POST, PUT, PATCH and DELETE.
//	@Tags			Auth
//	@Produce		json
//	@Success		200	{object}	accountsdk.CSRFResponse	"csrfToken"
//	@Failure		500	{object}	accountsdk.APIError		"Internal server error"
//	@Router			/auth/csrf/ [get].
func (h *CSRFHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	token, err := h.CSRF.Issue(w)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to issue csrf token", "err", err)
		accountsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, accountsdk.CSRFResponse{CSRFToken: token})
}
