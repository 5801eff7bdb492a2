package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/aussiebroadwan/university/internal/accounts/metrics"
	"github.com/aussiebroadwan/university/internal/accounts/service"
	"github.com/aussiebroadwan/university/pkg/httpx"
)

// tokenAuthenticator resolves access tokens through the token service.
type tokenAuthenticator struct {
	tokens *service.TokenService
}

func (a tokenAuthenticator) Authenticate(ctx context.Context, token string) (httpx.Principal, error) {
	claims, u, err := a.tokens.Authenticate(ctx, token)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{
		UserID:    u.ID,
		Email:     u.Email,
		Staff:     u.IsStaff,
		TokenID:   claims.ID,
		ExpiresAt: claims.Expiry(),
	}, nil
}

// failureReason is the metrics label for a rejected access token.
func failureReason(err error) string {
	switch {
	case errors.Is(err, httpx.ErrNoToken):
		return "missing"
	case errors.Is(err, service.ErrExpiredToken):
		return "expired"
	case errors.Is(err, service.ErrRevokedToken):
		return "revoked"
	case errors.Is(err, service.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, service.ErrInactiveAccount):
		return "inactive"
	}
	return "error"
}

func authnMiddleware(tokens *service.TokenService, m *metrics.Metrics, allowHeader bool) httpx.Middleware {
	return httpx.AuthnMiddleware(tokenAuthenticator{tokens: tokens}, httpx.AuthnOptions{
		AllowHeaderAuth: allowHeader,
		OnFailure: func(_ *http.Request, err error) {
			m.ObserveAuthFailure(failureReason(err))
		},
		IsRejection: func(err error) bool {
			return failureReason(err) != "error"
		},
	})
}
