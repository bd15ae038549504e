package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/erenasiroglu/persona-backend/internal/model"
	"github.com/erenasiroglu/persona-backend/internal/repository"
)

const (
	// minPasswordLen is the documented minimum; there is no upper
	// bound and no complexity rule beyond length.
	minPasswordLen = 6

	// bearerTTL is the fixed validity window of issued bearer tokens.
	// Expiry is the only invalidation mechanism; there is no
	// revocation.
	bearerTTL = 24 * time.Hour
)

// emailShape accepts any local@domain form with a dotted domain.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PublicUser is the externally visible profile. It never carries the
// password hash.
type PublicUser struct {
	ID        uint64 `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// AuthResult is the outcome of a successful Register or Login: the
// public profile plus a freshly signed bearer token.
type AuthResult struct {
	User  PublicUser
	Token SignedToken
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// CredentialService validates and creates accounts, verifies login
// credentials and issues bearer tokens.
type CredentialService struct {
	users  UserStore
	hasher PasswordHasher
	signer TokenSigner
}

func NewCredentialService(users UserStore, hasher PasswordHasher, signer TokenSigner) *CredentialService {
	return &CredentialService{users: users, hasher: hasher, signer: signer}
}

// Register creates a user and returns the profile with a bearer token.
// The store's unique index is the sole defense against concurrent
// registrations of the same email; there is no pre-check, so the
// duplicate surfaces as ErrEmailTaken regardless of timing.
func (s *CredentialService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	email := repository.NormalizeEmail(in.Email)
	if !emailShape.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if len(in.Password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLen)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.users.Create(ctx, email, hash, in.FirstName, in.LastName)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	tok, err := s.signer.Sign(id, email, bearerTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{
		User:  PublicUser{ID: id, Email: email, FirstName: in.FirstName, LastName: in.LastName},
		Token: tok,
	}, nil
}

// Login verifies the credentials and returns the profile with a fresh
// bearer token of the same shape and TTL as registration. Every
// failure path yields ErrInvalidCredentials.
func (s *CredentialService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	if !s.hasher.Verify(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	tok, err := s.signer.Sign(u.ID, u.Email, bearerTTL)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &AuthResult{User: publicProfile(u), Token: tok}, nil
}

func publicProfile(u model.User) PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, FirstName: u.FirstName, LastName: u.LastName}
}
