package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
	"github.com/aussiebroadwan/university/pkg/httpx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

// writeServiceError maps a service error onto the API error envelope.
// Anything unrecognised is logged and reported as a server error.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		accountsdk.NewValidationError(ve.Fields).WriteError(w)
	case errors.Is(err, service.ErrInvalidCredentials):
		accountsdk.ErrInvalidCredentials.WriteError(w)
	case errors.Is(err, service.ErrInactiveAccount):
		accountsdk.ErrInactiveAccount.WriteError(w)
	case errors.Is(err, service.ErrExpiredToken):
		accountsdk.ErrExpiredToken.WriteError(w)
	case errors.Is(err, service.ErrRevokedToken):
		accountsdk.ErrRevokedToken.WriteError(w)
	case errors.Is(err, service.ErrMalformedToken):
		accountsdk.ErrMalformedToken.WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
		accountsdk.ErrServerError.WriteError(w)
	}
}

// decodeBody decodes a JSON request body and writes invalid_request when it
// cannot be parsed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := httpx.DecodeJSON(w, r, dst); err != nil {
		slogx.FromContext(r.Context()).Debug("rejecting request body", "err", err)
		accountsdk.ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}

// outcome labels a service error for the login and refresh counters.
func outcome(err error) string {
	var ve *service.ValidationError
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &ve):
		return "validation_failure"
	case errors.Is(err, service.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, service.ErrInactiveAccount):
		return "inactive_account"
	case errors.Is(err, service.ErrExpiredToken):
		return "expired_token"
	case errors.Is(err, service.ErrRevokedToken):
		return "revoked_token"
	case errors.Is(err, service.ErrMalformedToken):
		return "malformed_token"
	}
	return "error"
}
