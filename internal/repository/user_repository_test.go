package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepo(db), mock
}

const selectByEmail = "SELECT " + userColumns + " FROM users WHERE email=? LIMIT 1"

func userRows(token *string, expires *time.Time) *sqlmock.Rows {
	now := time.Now().UTC()
	var (
		tokenVal   any
		expiresVal any
	)
	if token != nil {
		tokenVal = *token
	}
	if expires != nil {
		expiresVal = *expires
	}
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "first_name", "last_name",
		"reset_token", "reset_token_expires", "created_at", "updated_at",
	}).AddRow(7, "a@x.com", "$2a$10$hash", "Ada", "L", tokenVal, expiresVal, now, now)
}

func TestCreateNormalizesEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?,?,?,?)").
		WithArgs("user@x.com", "hash", "Ada", "L").
		WillReturnResult(sqlmock.NewResult(7, 1))

	id, err := repo.Create(context.Background(), "  User@X.com ", "hash", "Ada", "L")
	require.NoError(t, err)
	require.EqualValues(t, 7, id)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("INSERT INTO users (email, password_hash, first_name, last_name) VALUES (?,?,?,?)").
		WithArgs("a@x.com", "hash", "", "").
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@x.com' for key 'users.email'"})

	_, err := repo.Create(context.Background(), "a@x.com", "hash", "", "")
	require.ErrorIs(t, err, ErrEmailExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(selectByEmail).
		WithArgs("a@x.com").
		WillReturnRows(userRows(nil, nil))

	u, err := repo.GetByEmail(context.Background(), "A@X.com")
	require.NoError(t, err)
	require.EqualValues(t, 7, u.ID)
	require.Equal(t, "a@x.com", u.Email)
	require.Nil(t, u.ResetToken)
	require.Nil(t, u.ResetTokenExpires)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmailNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(selectByEmail).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	token := "deadbeef"
	expires := now.Add(30 * time.Minute)
	mock.ExpectQuery("SELECT "+userColumns+" FROM users WHERE reset_token=? AND reset_token_expires>? LIMIT 1").
		WithArgs(token, now).
		WillReturnRows(userRows(&token, &expires))

	u, err := repo.GetByResetToken(context.Background(), token, now)
	require.NoError(t, err)
	require.NotNil(t, u.ResetToken)
	require.Equal(t, token, *u.ResetToken)
	require.NotNil(t, u.ResetTokenExpires)
	require.True(t, u.ResetTokenExpires.Equal(expires))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSetResetToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	expires := time.Date(2025, 6, 1, 13, 0, 0, 0, time.UTC)
	mock.ExpectExec("UPDATE users SET reset_token=?, reset_token_expires=? WHERE id=?").
		WithArgs("deadbeef", expires, uint64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.SetResetToken(context.Background(), 7, "deadbeef", expires)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRotatePassword(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET password_hash=?, reset_token=NULL, reset_token_expires=NULL WHERE id=? AND reset_token=?").
		WithArgs("newhash", uint64(7), "deadbeef").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.RotatePassword(context.Background(), 7, "deadbeef", "newhash"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRotatePasswordConsumedToken(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("UPDATE users SET password_hash=?, reset_token=NULL, reset_token_expires=NULL WHERE id=? AND reset_token=?").
		WithArgs("newhash", uint64(7), "stale").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.RotatePassword(context.Background(), 7, "stale", "newhash")
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
