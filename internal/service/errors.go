// Package service implements the credential and password-reset
// business logic behind the HTTP boundary. Services receive their
// collaborators (store, hasher, signer, token source, mailer, clock)
// at construction so they can be exercised without a real database,
// network or crypto configuration.
package service

import "errors"

// Error kinds surfaced by the services. The HTTP boundary maps each
// kind to a status code and a short user-facing message; anything not
// matching these values is an unexpected failure and must never reach
// the client in detail.
var (
	// ErrValidation covers malformed input: a bad email shape or a
	// password shorter than the documented minimum.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for every login failure.
	// Unknown email and wrong password are deliberately
	// indistinguishable so the response leaks nothing about which
	// part was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserNotFound is returned by RequestReset for an unknown
	// email. This reveals account existence through a distinct error;
	// the behavior is carried over from the original flow on purpose.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidResetToken covers reset tokens that were never
	// issued, have expired, or were already consumed. The three cases
	// are indistinguishable to the caller.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
)
