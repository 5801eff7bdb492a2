package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	for _, size := range []int{TokenSize128, TokenSize256, 24} {
		a, err := GenerateToken(size)
		require.NoError(t, err)
		b, err := GenerateToken(size)
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	}

	require.Len(t, MustGenerateToken(TokenSize128), 22)
	require.Len(t, MustGenerateToken(TokenSize256), 43)
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
	require.Panics(t, func() { MustGenerateToken(0) })
}

func TestHMAC(t *testing.T) {
	key := []byte("secret")
	sig := SignHMAC(key, "nonce")

	require.True(t, VerifyHMAC(key, "nonce", sig))
	require.False(t, VerifyHMAC(key, "other", sig))
	require.False(t, VerifyHMAC([]byte("other"), "nonce", sig))
	require.False(t, VerifyHMAC(key, "nonce", "%%%"))
}
