package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestNewHS256CodecRejectsShortSecret(t *testing.T) {
	t.Parallel()

	_, err := NewHS256Codec([]byte("too-short"), "notekeep")
	require.Error(t, err)
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)

	now := time.Now().UTC()
	claims := NewSessionClaims("01JAUSER000000000000000000", "notekeep", DefaultSessionTTL, now)

	token, err := codec.Sign(claims)
	require.NoError(t, err)
	require.Equal(t, 3, len(strings.Split(token, ".")))

	got, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "01JAUSER000000000000000000", got.Subject)
	require.Equal(t, "notekeep", got.Issuer)
	require.NotEmpty(t, got.ID, "jti should be populated")
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)

	past := time.Now().UTC().Add(-48 * time.Hour)
	claims := NewSessionClaims("user", "notekeep", time.Hour, past)

	token, err := codec.Sign(claims)
	require.NoError(t, err)

	_, err = codec.Verify(token)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	t.Parallel()

	codec, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)

	token, err := codec.Sign(NewSessionClaims("user", "notekeep", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = codec.Verify(tampered)
	require.Error(t, err)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)
	verifier, err := NewHS256Codec([]byte("ffffffffffffffffffffffffffffffff"), "notekeep")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("user", "notekeep", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrInvalidSig)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer, err := NewHS256Codec(testSecret, "someone-else")
	require.NoError(t, err)
	verifier, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)

	token, err := signer.Sign(NewSessionClaims("user", "someone-else", time.Hour, time.Now().UTC()))
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	codec, err := NewHS256Codec(testSecret, "notekeep")
	require.NoError(t, err)

	_, err = codec.Verify("not-a-token")
	require.ErrorIs(t, err, ErrMalformed)
}
