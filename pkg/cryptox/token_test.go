package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates distinct url-safe tokens", func(t *testing.T) {
		a, err := GenerateToken(TokenSize256)
		require.NoError(t, err)
		b, err := GenerateToken(TokenSize256)
		require.NoError(t, err)

		require.NotEqual(t, a, b)
		require.Len(t, a, 43) // 32 bytes base64url, no padding
		require.NotContains(t, a, "+")
		require.NotContains(t, a, "/")
		require.NotContains(t, a, "=")
	})

	t.Run("rejects non-positive size", func(t *testing.T) {
		_, err := GenerateToken(0)
		require.Error(t, err)
		_, err = GenerateToken(-1)
		require.Error(t, err)
	})
}

func TestFingerprintToken(t *testing.T) {
	fp := FingerprintToken("some-token")
	require.Len(t, fp, 43) // sha256 base64url

	require.Equal(t, fp, FingerprintToken("some-token"), "fingerprint must be deterministic")
	require.NotEqual(t, fp, FingerprintToken("other-token"))
}

func TestGenerateNumericCode(t *testing.T) {
	t.Run("six digits", func(t *testing.T) {
		code, err := GenerateNumericCode(6)
		require.NoError(t, err)
		require.Len(t, code, 6)
		for _, c := range code {
			require.GreaterOrEqual(t, c, '0')
			require.LessOrEqual(t, c, '9')
		}
	})

	t.Run("rejects non-positive length", func(t *testing.T) {
		_, err := GenerateNumericCode(0)
		require.Error(t, err)
	})
}
