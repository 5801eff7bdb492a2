package accountsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"

	"github.com/aussiebroadwan/university/pkg/httpx"
)

// ============================================================================
// Error Codes
// ============================================================================

const (
	ErrorCodeInvalidCredentials   = "invalid_credentials"
	ErrorCodeInactiveAccount      = "inactive_account"
	ErrorCodeExpiredToken         = "expired_token"
	ErrorCodeRevokedToken         = "revoked_token"
	ErrorCodeMalformedToken       = "malformed_token"
	ErrorCodeValidationFailure    = "validation_failure"
	ErrorCodeAuthenticationFailed = "authentication_failed"
	ErrorCodeCSRFFailed           = "csrf_failed"
	ErrorCodeInvalidRequest       = "invalid_request"
	ErrorCodeRateLimitExceeded    = "rate_limit_exceeded"
	ErrorCodeServerError          = "server_error"
	ErrorCodeRefreshTokenMissing  = "refresh_token_missing"
)

// ErrSessionExpired is returned by calls whose credentials could not be
// renewed. The session store and carrier have been cleared by then.
var ErrSessionExpired = errors.New("accountsdk: session expired")

// ============================================================================
// APIError
// ============================================================================

// APIError is the error envelope of the accounts API. The server writes it
// with WriteError and the client decodes it back, so both sides share one
// shape:
//
//	{"code": "...", "message": "...", "details": {"field": ["msg"]}}
type APIError struct {
	StatusCode int                 `json:"-"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Details    map[string][]string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) == 0 {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	fields := slices.Sorted(maps.Keys(e.Details))
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, strings.Join(fields, ", "))
}

// Is matches another *APIError by code, so errors.Is(err, ErrRevokedToken)
// works on decoded responses.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

// FieldError returns the first message for field, or "".
func (e *APIError) FieldError(field string) string {
	if msgs := e.Details[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// WriteError writes e to w.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(e)
}

// NewAPIError creates an APIError without field details.
func NewAPIError(statusCode int, code, message string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Message: message}
}

// NewValidationError creates a 400 validation_failure carrying details.
func NewValidationError(details map[string][]string) *APIError {
	return &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeValidationFailure,
		Message:    "validation failed",
		Details:    details,
	}
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	ErrInvalidCredentials = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeInvalidCredentials,
		Message:    "invalid email or password",
	}

	// ErrInactiveAccount is only reported after the password matched.
	ErrInactiveAccount = &APIError{
		StatusCode: http.StatusForbidden,
		Code:       ErrorCodeInactiveAccount,
		Message:    "this account is inactive",
	}

	ErrExpiredToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeExpiredToken,
		Message:    "token has expired",
	}

	ErrRevokedToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeRevokedToken,
		Message:    "token has been revoked",
	}

	ErrMalformedToken = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeMalformedToken,
		Message:    "token is invalid",
	}

	// ErrAuthenticationFailed is the single response for every rejected
	// access token.
	ErrAuthenticationFailed = &APIError{
		StatusCode: http.StatusUnauthorized,
		Code:       ErrorCodeAuthenticationFailed,
		Message:    "authentication failed",
	}

	ErrRefreshTokenMissing = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeRefreshTokenMissing,
		Message:    "refresh token not provided",
	}

	ErrInvalidRequest = &APIError{
		StatusCode: http.StatusBadRequest,
		Code:       ErrorCodeInvalidRequest,
		Message:    "the request is malformed or missing required parameters",
	}

	ErrServerError = &APIError{
		StatusCode: http.StatusInternalServerError,
		Code:       ErrorCodeServerError,
		Message:    "internal server error",
	}
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies
// that are not the error envelope keep the status and raw text.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	apiErr := &APIError{}
	if err := json.Unmarshal(body, apiErr); err != nil || apiErr.Code == "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       http.StatusText(resp.StatusCode),
			Message:    strings.TrimSpace(string(body)),
		}
	}
	apiErr.StatusCode = resp.StatusCode
	return apiErr
}
