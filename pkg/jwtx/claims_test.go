package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/university/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 500, time.UTC)
	c := jwtx.NewClaims(jwtx.TypeRefresh, "user-1", "a@uni.edu", true, time.Hour, "university", now)

	require.Equal(t, jwtx.TypeRefresh, c.TokenType)
	require.Equal(t, "user-1", c.Subject)
	require.Equal(t, "a@uni.edu", c.Email)
	require.True(t, c.Staff)
	require.NotEmpty(t, c.ID)
	require.Equal(t, now.Truncate(time.Second).Add(time.Hour), c.Expiry())

	other := jwtx.NewClaims(jwtx.TypeRefresh, "user-1", "", false, time.Hour, "", now)
	require.NotEqual(t, c.ID, other.ID)
}

func TestValidateType(t *testing.T) {
	c := jwtx.Claims{TokenType: jwtx.TypeAccess}
	require.NoError(t, c.ValidateType(jwtx.TypeAccess))
	require.ErrorIs(t, c.ValidateType(jwtx.TypeRefresh), jwtx.ErrWrongType)
}
