package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/erenasiroglu/persona-backend/internal/service"
)

// NewBearerToken builds and signs an HS256 JWT for a user. The claims
// carry the user id as the subject plus the email, expiration and
// issued-at timestamps. The same secret must be supplied when the
// middleware later verifies the token.
func NewBearerToken(secret string, userID uint64, email string, ttl time.Duration) (service.SignedToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":   userID,
		"email": email,
		"exp":   exp.Unix(),
		"iat":   time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return service.SignedToken{}, err
	}
	return service.SignedToken{Token: signed, Expires: exp}, nil
}

// JWTSigner adapts NewBearerToken to the service.TokenSigner contract.
type JWTSigner struct{ Secret string }

func (s JWTSigner) Sign(userID uint64, email string, ttl time.Duration) (service.SignedToken, error) {
	return NewBearerToken(s.Secret, userID, email, ttl)
}

// resetTokenBytes gives 256 bits of randomness per reset token,
// encoded as 64 hex characters.
const resetTokenBytes = 32

// RandomTokenSource produces opaque capability tokens from the
// system's CSPRNG. It implements service.TokenSource.
type RandomTokenSource struct{}

func (RandomTokenSource) NewToken() (string, error) { return randomHex(resetTokenBytes) }

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
