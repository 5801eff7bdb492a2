package http

import (
	"github.com/aussiebroadwan/university/internal/accounts/domain"
	"github.com/aussiebroadwan/university/pkg/accountsdk"
)

func toUser(u domain.User) accountsdk.User {
	out := accountsdk.User{
		ID:              u.ID,
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Bio:             u.Bio,
		Role:            string(u.Role),
		IsEmailVerified: u.IsEmailVerified,
		IsStaff:         u.IsStaff,
		LastLogin:       u.LastLogin,
		DateJoined:      u.DateJoined,
		LastUpdated:     u.LastUpdated,
	}
	if u.MobileNumber != nil {
		out.MobileNumber = *u.MobileNumber
	}
	return out
}
