package service

import (
	"context"
	"time"

	"github.com/erenasiroglu/persona-backend/internal/model"
)

// UserStore is the persistence contract the services depend on.
// Implementations report missing rows as repository.ErrNotFound and
// duplicate emails as repository.ErrEmailExists.
type UserStore interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string) (uint64, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	GetByResetToken(ctx context.Context, token string, now time.Time) (model.User, error)
	SetResetToken(ctx context.Context, id uint64, token string, expires time.Time) error
	RotatePassword(ctx context.Context, id uint64, token, newHash string) error
}

// PasswordHasher turns plaintext passwords into opaque hashes and
// verifies candidates against stored hashes. Verify must compare in
// constant time, never by re-hashing and comparing strings.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// SignedToken is a bearer token together with its expiry.
type SignedToken struct {
	Token   string
	Expires time.Time
}

// TokenSigner issues signed bearer tokens carrying the user id and
// email claims.
type TokenSigner interface {
	Sign(userID uint64, email string, ttl time.Duration) (SignedToken, error)
}

// TokenSource produces unpredictable opaque strings suitable as
// single-use capability tokens.
type TokenSource interface {
	NewToken() (string, error)
}

// Mailer dispatches a transactional email. Implementations bound the
// send with their own timeout policy.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}
