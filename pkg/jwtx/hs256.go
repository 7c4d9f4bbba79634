package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the smallest shared secret we accept for HS256.
// Anything shorter undermines the 256-bit security level of the MAC.
const MinSecretLength = 32

// HS256Codec signs and verifies session tokens with a single shared secret.
// Sessions are stateless: the whole credential lives in the token, so one
// symmetric key is all the service needs.
type HS256Codec struct {
	secret []byte
	issuer string
}

// NewHS256Codec creates a codec from the shared secret. The same codec
// serves as both Signer and Verifier.
func NewHS256Codec(secret []byte, issuer string) (*HS256Codec, error) {
	c := &HS256Codec{secret: secret, issuer: issuer}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *HS256Codec) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign takes claims and turns them into a signed compact JWT string.
func (c *HS256Codec) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Validate does a quick sanity check on the configured secret.
func (c *HS256Codec) Validate() error {
	if len(c.secret) < MinSecretLength {
		return fmt.Errorf("jwtx: HS256 secret must be at least %d bytes, got %d",
			MinSecretLength, len(c.secret))
	}
	return nil
}

// Verify validates the token string and returns its parsed Claims.
func (c *HS256Codec) Verify(tokenStr string) (Claims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return Claims{}, ErrInvalidSig
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return Claims{}, ErrNotYetValid
		default:
			return Claims{}, fmt.Errorf("jwtx: parse or verify: %w", err)
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	// Now check all the claim requirements
	if err := claims.ValidateIssuer(c.issuer); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiry(); err != nil {
		return Claims{}, err
	}

	return *claims, nil
}
