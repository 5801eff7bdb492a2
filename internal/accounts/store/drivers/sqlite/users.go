package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/internal/accounts/store"
	"github.com/aussiebroadwan/university/internal/accounts/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByMobileNumber(ctx context.Context, mobile string) (domain.User, error) {
	row, err := r.q.GetUserByMobileNumber(ctx, sql.NullString{String: mobile, Valid: true})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		MobileNumber:    mapOptionalString(u.MobileNumber),
		Bio:             u.Bio,
		Role:            string(u.Role),
		PasswordHash:    u.PasswordHash,
		IsActive:        u.IsActive,
		IsEmailVerified: u.IsEmailVerified,
		IsStaff:         u.IsStaff,
		IsSuperuser:     u.IsSuperuser,
		DateJoined:      unix(u.DateJoined),
		LastUpdated:     unix(u.LastUpdated),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateProfile(ctx context.Context, u domain.User) error {
	n, err := r.q.UpdateUserProfile(ctx, gen.UpdateUserProfileParams{
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		MobileNumber: mapOptionalString(u.MobileNumber),
		Bio:          u.Bio,
		LastUpdated:  unix(u.LastUpdated),
		ID:           u.ID,
	})
	if err != nil {
		return mapConstraint(err)
	}
	return requireOne(n)
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, hash string, at time.Time) error {
	n, err := r.q.UpdateUserPasswordHash(ctx, gen.UpdateUserPasswordHashParams{
		PasswordHash: hash,
		LastUpdated:  unix(at),
		ID:           userID,
	})
	if err != nil {
		return err
	}
	return requireOne(n)
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool, at time.Time) error {
	n, err := r.q.SetUserActive(ctx, gen.SetUserActiveParams{
		IsActive:    active,
		LastUpdated: unix(at),
		ID:          userID,
	})
	if err != nil {
		return err
	}
	return requireOne(n)
}

func (r *usersRepo) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.q.TouchUserLastLogin(ctx, gen.TouchUserLastLoginParams{
		LastLogin: sql.NullInt64{Int64: unix(at), Valid: true},
		ID:        userID,
	})
}

func requireOne(n int64) error {
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
