package utils

import "golang.org/x/crypto/bcrypt"

// BcryptCost is the fixed work factor for password hashing.
const BcryptCost = 10

// HashPassword returns the bcrypt hash of plain using BcryptCost.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt hash and a plain password in
// constant time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BcryptHasher adapts the two helpers to the service.PasswordHasher
// contract.
type BcryptHasher struct{}

func (BcryptHasher) Hash(plain string) (string, error) { return HashPassword(plain) }
func (BcryptHasher) Verify(hash, plain string) bool    { return VerifyPassword(hash, plain) }
