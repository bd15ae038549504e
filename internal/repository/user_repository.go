package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/erenasiroglu/persona-backend/internal/model"
)

// mysqlDupEntry is the MySQL error number for a unique-key violation.
const mysqlDupEntry = 1062

// UserRepo provides access to the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,email,password_hash,first_name,last_name,reset_token,reset_token_expires,created_at,updated_at"

// Create inserts a user and returns its generated ID. The unique index
// on email is the backstop against concurrent registrations for the
// same address; a duplicate-entry violation maps to ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, passwordHash, firstName, lastName string) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?,?,?,?)",
		NormalizeEmail(email), passwordHash, firstName, lastName)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDupEntry {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.getOne(ctx, "email=?", NormalizeEmail(email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return r.getOne(ctx, "id=?", id)
}

// GetByResetToken fetches the user holding the given reset token,
// provided the token has not yet expired at the supplied instant.
// Expired tokens are indistinguishable from absent ones.
func (r *UserRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (model.User, error) {
	return r.getOne(ctx, "reset_token=? AND reset_token_expires>?", token, now.UTC())
}

// SetResetToken stores a fresh reset token and its expiry for the user
// in one statement. Any previously issued token is overwritten, so only
// the newest emailed link remains valid.
func (r *UserRepo) SetResetToken(ctx context.Context, id uint64, token string, expires time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET reset_token=?, reset_token_expires=? WHERE id=?",
		token, expires.UTC(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// RotatePassword writes a new password hash and clears the reset token
// pair in the same UPDATE. The statement is guarded on the token value
// so the token is consumed exactly once: if it was already consumed or
// replaced, no row matches and ErrNotFound is returned.
func (r *UserRepo) RotatePassword(ctx context.Context, id uint64, token, newHash string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, reset_token=NULL, reset_token_expires=NULL WHERE id=? AND reset_token=?",
		newHash, id, token)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *UserRepo) getOne(ctx context.Context, where string, args ...any) (model.User, error) {
	var (
		u       model.User
		token   sql.NullString
		expires sql.NullTime
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE "+where+" LIMIT 1", args...).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &token, &expires, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrNotFound
		}
		return model.User{}, err
	}
	if token.Valid {
		u.ResetToken = &token.String
	}
	if expires.Valid {
		t := expires.Time
		u.ResetTokenExpires = &t
	}
	return u, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// NormalizeEmail applies the store's email policy: addresses are
// compared and persisted trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
