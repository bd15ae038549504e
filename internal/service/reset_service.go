package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/erenasiroglu/persona-backend/internal/repository"
)

// resetTokenTTL is how long an issued reset token stays valid.
const resetTokenTTL = time.Hour

// ResetService issues single-use, time-limited password-reset tokens,
// mails them out of band, and later consumes them to rotate the stored
// credential. Per user the (token, expiry) pair is last-write-wins: a
// repeat request overwrites the previous token so only the newest
// emailed link works.
type ResetService struct {
	users       UserStore
	hasher      PasswordHasher
	tokens      TokenSource
	mailer      Mailer
	frontendURL string

	// now is swappable so expiry behavior can be tested without
	// sleeping.
	now func() time.Time
}

func NewResetService(users UserStore, hasher PasswordHasher, tokens TokenSource, mailer Mailer, frontendURL string) *ResetService {
	return &ResetService{
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
		now:         time.Now,
	}
}

// RequestReset issues a fresh reset token for the account and emails a
// link embedding it. The token itself is never returned to the caller.
// A failed mail dispatch fails the whole request: the caller gets an
// error and may retry, in which case a new token simply overwrites the
// pending one.
func (s *ResetService) RequestReset(ctx context.Context, email string) error {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Distinct from the generic failure on purpose: the
			// original flow answers 404 here, revealing account
			// existence. Kept as-is rather than silently fixed.
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}

	token, err := s.tokens.NewToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expires := s.now().UTC().Add(resetTokenTTL)
	if err := s.users.SetResetToken(ctx, u.ID, token, expires); err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(
		"<p>Click the link below to reset your password:</p><a href=%q>%s</a><p>This link expires in 1 hour.</p>",
		link, link)
	if err := s.mailer.Send(ctx, u.Email, "Password Reset", body); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	return nil
}

// CompleteReset consumes a reset token and rotates the password,
// returning the id of the affected user so callers can drop any
// cached state for it. The token is checked before the new password
// is validated, so a bad token always reports ErrInvalidResetToken
// even when the password is also too short. The hash write and the
// token clear happen in the same guarded UPDATE, leaving no window in
// which the old token remains valid after the password change.
func (s *ResetService) CompleteReset(ctx context.Context, token, newPassword string) (uint64, error) {
	u, err := s.users.GetByResetToken(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, ErrInvalidResetToken
		}
		return 0, fmt.Errorf("lookup reset token: %w", err)
	}
	if len(newPassword) < minPasswordLen {
		return 0, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	if err := s.users.RotatePassword(ctx, u.ID, token, hash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Consumed or replaced between lookup and update.
			return 0, ErrInvalidResetToken
		}
		return 0, fmt.Errorf("rotate password: %w", err)
	}
	return u.ID, nil
}
