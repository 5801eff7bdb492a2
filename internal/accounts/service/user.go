package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/pkg/cryptox"
	"github.com/aussiebroadwan/university/pkg/idx"
	"github.com/aussiebroadwan/university/pkg/slogx"
)

type UserService struct {
	Store store.Store

	// BlockedEmailDomains are refused at registration.
	BlockedEmailDomains []string

	// Now defaults to time.Now.
	Now func() time.Time

	dummyOnce sync.Once
	dummyHash string
}

func (s *UserService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Register validates in and creates a student account.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	return s.create(ctx, in, func(u *domain.User) {})
}

// CreateSuperuser creates a verified staff administrator.
func (s *UserService) CreateSuperuser(ctx context.Context, in RegisterInput) (domain.User, error) {
	return s.create(ctx, in, func(u *domain.User) {
		u.Role = domain.RoleAdmin
		u.IsStaff = true
		u.IsSuperuser = true
		u.IsEmailVerified = true
	})
}

func (s *UserService) create(ctx context.Context, in RegisterInput, mutate func(*domain.User)) (domain.User, error) {
	in.normalize()
	if err := in.Validate(s.BlockedEmailDomains); err != nil {
		return domain.User{}, err
	}

	var mobile *string
	if in.MobileNumber != "" {
		m, err := normalizeMobile(in.MobileNumber)
		if err != nil {
			return domain.User{}, fieldError("mobile_number", "enter a valid Indian mobile number")
		}
		mobile = &m
	}

	if err := s.checkUnique(ctx, "", in.Email, mobile); err != nil {
		return domain.User{}, err
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	now := s.now()
	u := domain.User{
		ID:           idx.New().String(),
		Email:        in.Email,
		FirstName:    titleCase(in.FirstName),
		LastName:     titleCase(in.LastName),
		MobileNumber: mobile,
		Bio:          in.Bio,
		Role:         domain.RoleStudent,
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   now,
		LastUpdated:  now,
	}
	mutate(&u)

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fieldError("email", "a user with this email already exists")
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", u.ID, "role", u.Role)
	return u, nil
}

// Login checks credentials. A wrong password is always ErrInvalidCredentials;
// ErrInactiveAccount is only reported once the password has matched.
func (s *UserService) Login(ctx context.Context, email, password string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn the same hashing cost as a real check.
			_ = cryptox.VerifyPassword(password, s.dummy())
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	if !u.IsActive {
		return domain.User{}, ErrInactiveAccount
	}

	now := s.now()
	if err := s.Store.Users().TouchLastLogin(ctx, u.ID, now); err != nil {
		return domain.User{}, err
	}
	u.LastLogin = &now
	return u, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// FindByEmail looks a user up case-insensitively.
func (s *UserService) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
}

// UpdateProfile applies a partial update to the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, upd ProfileUpdate) (domain.User, error) {
	upd.normalize()
	if err := upd.Validate(); err != nil {
		return domain.User{}, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return domain.User{}, err
	}

	if upd.FirstName != nil {
		u.FirstName = titleCase(*upd.FirstName)
	}
	if upd.LastName != nil {
		u.LastName = titleCase(*upd.LastName)
	}
	if upd.Bio != nil {
		u.Bio = *upd.Bio
	}
	if upd.MobileNumber != nil {
		if *upd.MobileNumber == "" {
			u.MobileNumber = nil
		} else {
			m, err := normalizeMobile(*upd.MobileNumber)
			if err != nil {
				return domain.User{}, fieldError("mobile_number", "enter a valid Indian mobile number")
			}
			if err := s.checkUnique(ctx, u.ID, "", &m); err != nil {
				return domain.User{}, err
			}
			u.MobileNumber = &m
		}
	}
	u.LastUpdated = s.now()

	if err := s.Store.Users().UpdateProfile(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, fieldError("mobile_number", "a user with this mobile number already exists")
		}
		return domain.User{}, err
	}
	return u, nil
}

// ChangePassword replaces the password of userID and revokes every refresh
// token the user holds. It returns the number of tokens revoked.
func (s *UserService) ChangePassword(ctx context.Context, userID string, in PasswordChange) (int64, error) {
	if err := in.Validate(); err != nil {
		return 0, err
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := cryptox.VerifyPassword(in.OldPassword, u.PasswordHash); err != nil {
		return 0, fieldError("old_password", "old password is incorrect")
	}

	hash, err := cryptox.HashPassword(in.NewPassword)
	if err != nil {
		return 0, err
	}

	now := s.now()
	var revoked int64
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, now); err != nil {
			return err
		}
		revoked, err = tx.Blacklist().AddAllForUser(ctx, u.ID, now)
		return err
	})
	if err != nil {
		return 0, err
	}

	slogx.FromContext(ctx).Info("password changed", "user_id", u.ID, "revoked_tokens", revoked)
	return revoked, nil
}

// Deactivate soft-deletes userID and revokes its refresh tokens.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	now := s.now()
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().SetActive(ctx, userID, false, now); err != nil {
			return err
		}
		_, err := tx.Blacklist().AddAllForUser(ctx, userID, now)
		return err
	})
}

func (s *UserService) checkUnique(ctx context.Context, selfID, email string, mobile *string) error {
	ve := &ValidationError{}
	if email != "" {
		existing, err := s.Store.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil && existing.ID != selfID:
			ve.Add("email", "a user with this email already exists")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	if mobile != nil {
		existing, err := s.Store.Users().GetUserByMobileNumber(ctx, *mobile)
		switch {
		case err == nil && existing.ID != selfID:
			ve.Add("mobile_number", "a user with this mobile number already exists")
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	if ve.empty() {
		return nil
	}
	return ve
}

func (s *UserService) dummy() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = cryptox.HashPassword(cryptox.MustGenerateToken(cryptox.TokenSize128))
	})
	return s.dummyHash
}
