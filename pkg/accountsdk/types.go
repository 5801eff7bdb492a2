package accountsdk

import "time"

// ============================================================================
// Account Types
// ============================================================================

// User is the public representation of an account.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	FullName        string     `json:"full_name"`
	MobileNumber    string     `json:"mobile_number,omitempty"`
	Bio             string     `json:"bio"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"is_email_verified"`
	IsStaff         bool       `json:"is_staff"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	DateJoined      time.Time  `json:"date_joined"`
	LastUpdated     time.Time  `json:"last_updated"`
}

// LoginRequest is the body of POST /auth/login/.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /auth/register/.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	MobileNumber string `json:"mobile_number,omitempty"`
	Bio          string `json:"bio,omitempty"`
}

// ProfileUpdateRequest is a partial update; nil fields are not sent.
type ProfileUpdateRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	MobileNumber *string `json:"mobile_number,omitempty"`
	Bio          *string `json:"bio,omitempty"`
}

// PasswordChangeRequest is the body of POST /auth/password/change/.
type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// LogoutRequest optionally names a refresh token when the cookie is absent.
type LogoutRequest struct {
	Refresh string `json:"refresh,omitempty"`
}

// ============================================================================
// Response Types
// ============================================================================

// AuthResponse is returned by login and register. Tokens never
// appear in bodies; they travel as HttpOnly cookies.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// CSRFResponse is returned by GET /auth/csrf/.
type CSRFResponse struct {
	CSRFToken string `json:"csrfToken"`
}

// RefreshResponse reports the new access token expiry and whether the
// refresh token was rotated.
type RefreshResponse struct {
	Message         string    `json:"message"`
	AccessExpiresAt time.Time `json:"access_expires_at"`
	Rotated         bool      `json:"rotated"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz. Checks is only set by
// /readyz.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime,omitempty"`
	Version string        `json:"version,omitempty"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}
