package model

import "time"

// User represents an account record as stored in the `users` table.
// Each field corresponds to a column. The json tags are omitted here
// because these structs are used internally by the repository layer;
// handlers define separate response types with appropriate JSON tags.
//
// Emails are persisted in their normalized form (trimmed, lower case),
// which makes the unique index on users.email effectively
// case-insensitive. ResetToken and ResetTokenExpires are a coupled
// pair: both are null when no reset is pending and both are set when
// one is. The pair is always written together in a single UPDATE.
//
// Fields:
//  ID                – primary key identifier of the user.
//  Email             – unique, normalized email address.
//  PasswordHash      – bcrypt hash of the password; never exposed.
//  FirstName         – optional given name.
//  LastName          – optional family name.
//  ResetToken        – pending password-reset token (null if none).
//  ResetTokenExpires – expiry of the pending token (null if none).
//  CreatedAt         – timestamp of creation.
//  UpdatedAt         – timestamp of last update.
type User struct {
	ID                uint64     // users.id
	Email             string     // users.email
	PasswordHash      string     // users.password_hash
	FirstName         string     // users.first_name
	LastName          string     // users.last_name
	ResetToken        *string    // users.reset_token (nullable)
	ResetTokenExpires *time.Time // users.reset_token_expires (nullable)
	CreatedAt         time.Time  // users.created_at
	UpdatedAt         time.Time  // users.updated_at
}
