// Package repository defines sentinel error values shared across the
// store layer. Higher layers such as services use errors.Is against
// these values to distinguish failure scenarios without depending on
// driver-specific error types.
package repository

import "errors"

// ErrEmailExists is returned when an insert violates the unique index
// on users.email. The service layer translates this into a conflict.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a lookup matches no row, or when a
// conditional update affects no rows because its guard no longer
// holds (e.g. a reset token that was consumed concurrently).
var ErrNotFound = errors.New("not found")
