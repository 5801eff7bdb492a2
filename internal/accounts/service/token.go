package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/pkg/jwtx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

// TokenConfig holds the token lifetimes and policy.
type TokenConfig struct {
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// RotateRefreshTokens makes every refresh token single use: a refresh
	// blacklists the presented token and issues a new one.
	RotateRefreshTokens bool

	// Leeway tolerates clock skew on exp/nbf.
	Leeway time.Duration

	// Now is the clock for issuing and verifying. Defaults to time.Now.
	Now func() time.Time
}

// TokenService issues, refreshes, revokes and validates JWTs.
type TokenService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Keys     *jwtx.KeySet
	Verifier jwtx.Verifier
	Config   TokenConfig
}

// NewTokenService wires a verifier for signer's key that shares the
// service clock.
func NewTokenService(st store.Store, signer jwtx.Signer, cfg TokenConfig) (*TokenService, error) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = jwtx.DefaultAccessTokenTTL
	}
	if cfg.RefreshTTL <= 0 {
		cfg.RefreshTTL = jwtx.DefaultRefreshTokenTTL
	}

	keys := jwtx.NewKeySet()
	if err := keys.AddSigner(signer); err != nil {
		return nil, err
	}

	return &TokenService{
		Store:  st,
		Signer: signer,
		Keys:   keys,
		Verifier: jwtx.NewVerifier(keys, jwtx.VerifyOptions{
			Issuer: cfg.Issuer,
			Leeway: cfg.Leeway,
			Now:    cfg.Now,
		}),
		Config: cfg,
	}, nil
}

func (s *TokenService) now() time.Time { return s.Config.Now().UTC() }

// Issue mints an access/refresh pair for u and records the refresh token as
// outstanding.
func (s *TokenService) Issue(ctx context.Context, u domain.User) (domain.TokenPair, error) {
	if !u.IsActive {
		return domain.TokenPair{}, ErrInactiveAccount
	}

	now := s.now()
	var pair domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		pair, err = s.issue(ctx, tx, u, now, true)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	slogx.FromContext(ctx).Debug("issued token pair", "user_id", u.ID)
	return pair, nil
}

// Refresh exchanges a refresh token for a new access token. With rotation
// the presented token is blacklisted and replaced in the same transaction,
// so of two concurrent uses of one token exactly one succeeds and the other
// fails with ErrRevokedToken.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	claims, err := s.verify(refreshToken, jwtx.TypeRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}

	now := s.now()
	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		revoked, err := tx.Blacklist().Contains(ctx, claims.ID)
		if err != nil {
			return err
		}
		if revoked {
			return ErrRevokedToken
		}

		u, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInactiveAccount
			}
			return err
		}
		if !u.IsActive {
			return ErrInactiveAccount
		}

		if s.Config.RotateRefreshTokens {
			err := tx.Blacklist().Add(ctx, domain.BlacklistedToken{
				JTI:           claims.ID,
				UserID:        u.ID,
				ExpiresAt:     claims.Expiry(),
				BlacklistedAt: now,
			})
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrRevokedToken
			}
			if err != nil {
				return err
			}
		}

		pair, err = s.issue(ctx, tx, u, now, s.Config.RotateRefreshTokens)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Blacklist revokes token, which may be an access or a refresh token.
// Revoking twice is a no-op. Tokens that no longer verify are already
// unusable and are ignored.
func (s *TokenService) Blacklist(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return nil
	}

	claims, err := s.Verifier.Verify(token)
	if err != nil || claims.ID == "" {
		slogx.FromContext(ctx).Debug("skipping blacklist of unverifiable token", "err", err)
		return nil
	}

	err = s.Store.Blacklist().Add(ctx, domain.BlacklistedToken{
		JTI:           claims.ID,
		UserID:        claims.Subject,
		ExpiresAt:     claims.Expiry(),
		BlacklistedAt: s.now(),
	})
	if errors.Is(err, store.ErrAlreadyExists) {
		return nil
	}
	return err
}

// Authenticate validates an access token and loads its user. Every failure
// is one of ErrExpiredToken, ErrRevokedToken, ErrMalformedToken or
// ErrInactiveAccount, or a store error.
func (s *TokenService) Authenticate(ctx context.Context, accessToken string) (jwtx.Claims, domain.User, error) {
	claims, err := s.verify(accessToken, jwtx.TypeAccess)
	if err != nil {
		return jwtx.Claims{}, domain.User{}, err
	}

	revoked, err := s.Store.Blacklist().Contains(ctx, claims.ID)
	if err != nil {
		return jwtx.Claims{}, domain.User{}, err
	}
	if revoked {
		return jwtx.Claims{}, domain.User{}, ErrRevokedToken
	}

	u, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.Claims{}, domain.User{}, ErrInactiveAccount
		}
		return jwtx.Claims{}, domain.User{}, err
	}
	if !u.IsActive {
		return jwtx.Claims{}, domain.User{}, ErrInactiveAccount
	}
	return claims, u, nil
}

func (s *TokenService) verify(token string, typ jwtx.TokenType) (jwtx.Claims, error) {
	if strings.TrimSpace(token) == "" {
		return jwtx.Claims{}, ErrMalformedToken
	}

	claims, err := s.Verifier.Verify(token)
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		return jwtx.Claims{}, ErrExpiredToken
	case err != nil:
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	if err := claims.ValidateType(typ); err != nil {
		return jwtx.Claims{}, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}
	if claims.ID == "" || claims.Subject == "" {
		return jwtx.Claims{}, fmt.Errorf("%w: missing jti or sub", ErrMalformedToken)
	}
	return claims, nil
}

func (s *TokenService) issue(ctx context.Context, tx store.Tx, u domain.User, now time.Time, withRefresh bool) (domain.TokenPair, error) {
	access := jwtx.NewClaims(jwtx.TypeAccess, u.ID, u.Email, u.IsStaff, s.Config.AccessTTL, s.Config.Issuer, now)
	accessToken, err := s.Signer.Sign(access)
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair := domain.TokenPair{
		AccessToken:     accessToken,
		AccessExpiresAt: access.Expiry(),
	}
	if !withRefresh {
		return pair, nil
	}

	refresh := jwtx.NewClaims(jwtx.TypeRefresh, u.ID, u.Email, u.IsStaff, s.Config.RefreshTTL, s.Config.Issuer, now)
	refreshToken, err := s.Signer.Sign(refresh)
	if err != nil {
		return domain.TokenPair{}, err
	}

	err = tx.OutstandingTokens().CreateOutstandingToken(ctx, domain.OutstandingToken{
		JTI:       refresh.ID,
		UserID:    u.ID,
		ExpiresAt: refresh.Expiry(),
		CreatedAt: now,
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	pair.RefreshToken = refreshToken
	pair.RefreshExpiresAt = refresh.Expiry()
	return pair, nil
}
