package httpx

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/university/pkg/slogx"
)

// Authenticator validates a raw access token and resolves the principal
// behind it.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (Principal, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context, token string) (Principal, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, token string) (Principal, error) {
	return f(ctx, token)
}

// ErrNoToken is reported to OnFailure when the request carries no access
// token at all.
var ErrNoToken = errors.New("no access token")

// AuthnOptions configures AuthnMiddleware.
type AuthnOptions struct {
	// AllowHeaderAuth enables the "Authorization: Bearer" fallback when the
	// access_token cookie is absent.
	AllowHeaderAuth bool

	// OnFailure observes every rejection with its concrete cause. The
	// response itself never reveals the cause.
	OnFailure func(r *http.Request, err error)

	// IsRejection tells credential rejections apart from failures to check
	// them, such as an unreachable database. Errors it reports false for
	// answer 500 so clients do not mistake an outage for a dead session.
	// When nil every error is a rejection.
	IsRejection func(err error) bool
}

// AccessTokenFromRequest extracts the access token: the cookie always wins;
// the bearer header is only consulted when allowHeader is set.
func AccessTokenFromRequest(r *http.Request, allowHeader bool) string {
	if v := ReadCookie(r, AccessTokenCookie); v != "" {
		return v
	}
	if !allowHeader {
		return ""
	}

	authz := r.Header.Get("Authorization")
	scheme, token, ok := strings.Cut(authz, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// AuthnMiddleware authenticates every request it wraps. Missing, expired,
// revoked and malformed tokens, as well as inactive users, all produce the
// same 401 body. Errors that opts.IsRejection does not claim answer 500.
func AuthnMiddleware(a Authenticator, opts AuthnOptions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			token := AccessTokenFromRequest(r, opts.AllowHeaderAuth)
			if token == "" {
				rejectUnauthenticated(w, r, opts, ErrNoToken)
				return
			}

			p, err := a.Authenticate(ctx, token)
			if err != nil {
				if opts.IsRejection != nil && !opts.IsRejection(err) {
					log.Error("authentication failed to complete", "err", err)
					if opts.OnFailure != nil {
						opts.OnFailure(r, err)
					}
					WriteError(w, http.StatusInternalServerError, "server_error", "internal server error")
					return
				}
				log.Info("authentication rejected", "err", err)
				rejectUnauthenticated(w, r, opts, err)
				return
			}

			ctx = WithPrincipal(ctx, p)
			ctx = slogx.WithAttrs(ctx, "user_id", p.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func rejectUnauthenticated(w http.ResponseWriter, r *http.Request, opts AuthnOptions, cause error) {
	if opts.OnFailure != nil {
		opts.OnFailure(r, cause)
	}
	WriteError(w, http.StatusUnauthorized, "authentication_failed", "authentication failed")
}
