package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	to, subject, body string
	sends             int
	err               error
}

func (m *fakeMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	if m.err != nil {
		return m.err
	}
	m.sends++
	m.to, m.subject, m.body = to, subject, htmlBody
	return nil
}

type seqTokens struct{ n int }

func (s *seqTokens) NewToken() (string, error) {
	s.n++
	return fmt.Sprintf("token-%d", s.n), nil
}

// resetFixture wires a ResetService over an in-memory store with a
// frozen, advanceable clock and one registered account.
type resetFixture struct {
	store  *memStore
	mailer *fakeMailer
	svc    *ResetService
	now    time.Time
	userID uint64
}

func newResetFixture(t *testing.T) *resetFixture {
	t.Helper()
	f := &resetFixture{
		store:  newMemStore(),
		mailer: &fakeMailer{},
		now:    time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	f.svc = NewResetService(f.store, fakeHasher{}, &seqTokens{}, f.mailer, "https://app.example.com")
	f.svc.now = func() time.Time { return f.now }

	id, err := f.store.Create(context.Background(), "a@x.com", "hashed:secret1", "Ada", "L")
	require.NoError(t, err)
	f.userID = id
	return f
}

func (f *resetFixture) advance(d time.Duration) { f.now = f.now.Add(d) }

func (f *resetFixture) user() userState {
	u := f.store.byEmail["a@x.com"]
	return userState{hash: u.PasswordHash, token: u.ResetToken, expires: u.ResetTokenExpires}
}

type userState struct {
	hash    string
	token   *string
	expires *time.Time
}

func TestRequestResetUnknownEmail(t *testing.T) {
	f := newResetFixture(t)
	err := f.svc.RequestReset(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.Zero(t, f.mailer.sends)
}

func TestRequestResetIssuesTokenAndMails(t *testing.T) {
	f := newResetFixture(t)
	require.NoError(t, f.svc.RequestReset(context.Background(), "a@x.com"))

	u := f.user()
	require.NotNil(t, u.token)
	require.NotNil(t, u.expires)
	require.Equal(t, f.now.Add(time.Hour), *u.expires)

	require.Equal(t, 1, f.mailer.sends)
	require.Equal(t, "a@x.com", f.mailer.to)
	require.Equal(t, "Password Reset", f.mailer.subject)
	require.Contains(t, f.mailer.body, "https://app.example.com/reset-password?token="+*u.token)
}

func TestRequestResetMailFailureIsFatal(t *testing.T) {
	f := newResetFixture(t)
	f.mailer.err = errors.New("smtp down")

	err := f.svc.RequestReset(context.Background(), "a@x.com")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUserNotFound)
	require.True(t, strings.Contains(err.Error(), "send reset email"))
}

func TestCompleteResetRotatesAndConsumes(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestReset(ctx, "a@x.com"))
	token := *f.user().token

	f.advance(30 * time.Minute)
	uid, err := f.svc.CompleteReset(ctx, token, "newpass1")
	require.NoError(t, err)
	require.Equal(t, f.userID, uid)

	u := f.user()
	require.Equal(t, "hashed:newpass1", u.hash)
	require.Nil(t, u.token, "token must be cleared in the same update")
	require.Nil(t, u.expires)

	// Second attempt with the consumed token is rejected.
	_, err = f.svc.CompleteReset(ctx, token, "again12")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestCompleteResetExpiredToken(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestReset(ctx, "a@x.com"))
	token := *f.user().token

	f.advance(time.Hour + time.Second)
	_, err := f.svc.CompleteReset(ctx, token, "newpass1")
	require.ErrorIs(t, err, ErrInvalidResetToken)
	require.Equal(t, "hashed:secret1", f.user().hash, "password must not change")
}

func TestSecondRequestInvalidatesFirstToken(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestReset(ctx, "a@x.com"))
	first := *f.user().token
	require.NoError(t, f.svc.RequestReset(ctx, "a@x.com"))
	second := *f.user().token
	require.NotEqual(t, first, second)

	_, err := f.svc.CompleteReset(ctx, first, "newpass1")
	require.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = f.svc.CompleteReset(ctx, second, "newpass1")
	require.NoError(t, err)
}

func TestCompleteResetShortPasswordKeepsToken(t *testing.T) {
	f := newResetFixture(t)
	ctx := context.Background()
	require.NoError(t, f.svc.RequestReset(ctx, "a@x.com"))
	token := *f.user().token

	_, err := f.svc.CompleteReset(ctx, token, "tiny")
	require.ErrorIs(t, err, ErrValidation)
	require.NotNil(t, f.user().token, "a failed validation must not consume the token")

	_, err = f.svc.CompleteReset(ctx, token, "newpass1")
	require.NoError(t, err)
}

func TestCompleteResetBadTokenWinsOverShortPassword(t *testing.T) {
	f := newResetFixture(t)
	_, err := f.svc.CompleteReset(context.Background(), "never-issued", "tiny")
	require.ErrorIs(t, err, ErrInvalidResetToken)
}
