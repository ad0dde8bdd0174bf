package services

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"golang.org/x/crypto/bcrypt"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *UserService, *fakeMailer, *sql.DB) {
	t.Helper()

	db := newTestDB(t)
	eventSvc := NewEventService(db)
	users := NewUserService(db, eventSvc)
	mailer := &fakeMailer{}
	resetSvc := NewPasswordResetService(db, users, mailer, eventSvc, time.Hour)
	return resetSvc, users, mailer, db
}

func storedToken(t *testing.T, db *sql.DB, userID string) string {
	t.Helper()

	var token string
	err := db.QueryRow("SELECT token FROM reset_tokens WHERE user_id = ?", userID).Scan(&token)
	require.NoError(t, err)
	return token
}

func tokenCount(t *testing.T, db *sql.DB, userID string) int {
	t.Helper()

	var n int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM reset_tokens WHERE user_id = ?", userID).Scan(&n))
	return n
}

func TestSendResetEmail_MailsTheToken(t *testing.T) {
	resetSvc, users, mailer, db := newResetFixture(t)
	user := createTestUser(t, users, "frank", "old-pass", "student")

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, user.Email, mailer.sent[0].recipient)
	assert.Contains(t, mailer.sent[0].body, storedToken(t, db, user.ID))
	assert.Equal(t, 1, tokenCount(t, db, user.ID))
}

func TestSendResetEmail_UnknownEmail(t *testing.T) {
	resetSvc, _, mailer, _ := newResetFixture(t)

	err := resetSvc.SendResetEmail(context.Background(), "ghost@school.test")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Empty(t, mailer.sent)
}

func TestSendResetEmail_SecondSendReplacesFirstToken(t *testing.T) {
	resetSvc, users, _, db := newResetFixture(t)
	user := createTestUser(t, users, "grace", "old-pass", "student")

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))
	first := storedToken(t, db, user.ID)

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))
	second := storedToken(t, db, user.ID)

	assert.NotEqual(t, first, second)
	assert.Equal(t, 1, tokenCount(t, db, user.ID), "at most one usable token per user")

	assert.ErrorIs(t, resetSvc.ResetPassword(first, "new-pass"), apperr.ErrInvalidToken)
	assert.NoError(t, resetSvc.ResetPassword(second, "new-pass"))
}

func TestSendResetEmail_MailFailureKeepsToken(t *testing.T) {
	resetSvc, users, mailer, db := newResetFixture(t)
	user := createTestUser(t, users, "heidi", "old-pass", "student")

	mailer.fail = fmt.Errorf("%w: connection refused", apperr.ErrMailDelivery)
	err := resetSvc.SendResetEmail(context.Background(), user.Email)
	assert.ErrorIs(t, err, apperr.ErrMailDelivery)

	// The token row survives the delivery failure and is still spendable.
	token := storedToken(t, db, user.ID)
	assert.NoError(t, resetSvc.ResetPassword(token, "new-pass"))
}

func TestResetPassword_Success(t *testing.T) {
	resetSvc, users, _, db := newResetFixture(t)
	user := createTestUser(t, users, "ivan", "old-pass", "student")

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))
	token := storedToken(t, db, user.ID)

	require.NoError(t, resetSvc.ResetPassword(token, "brand-new-pass"))

	updated, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("brand-new-pass")))
	assert.Equal(t, 0, tokenCount(t, db, user.ID))
}

func TestResetPassword_TokenNotSpendableTwice(t *testing.T) {
	resetSvc, users, _, db := newResetFixture(t)
	user := createTestUser(t, users, "judy", "old-pass", "student")

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))
	token := storedToken(t, db, user.ID)

	require.NoError(t, resetSvc.ResetPassword(token, "first-new-pass"))
	assert.ErrorIs(t, resetSvc.ResetPassword(token, "second-new-pass"), apperr.ErrInvalidToken)

	updated, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("first-new-pass")))
}

func TestResetPassword_Expired(t *testing.T) {
	resetSvc, users, _, db := newResetFixture(t)
	user := createTestUser(t, users, "kate", "old-pass", "student")

	require.NoError(t, resetSvc.SendResetEmail(context.Background(), user.Email))
	token := storedToken(t, db, user.ID)

	resetSvc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }

	assert.ErrorIs(t, resetSvc.ResetPassword(token, "new-pass"), apperr.ErrTokenExpired)
	assert.Equal(t, 0, tokenCount(t, db, user.ID), "expired token is removed on rejection")

	updated, err := users.GetUserByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("old-pass")),
		"password must be unchanged after an expired-token attempt")
}

func TestResetPassword_UnknownToken(t *testing.T) {
	resetSvc, _, _, _ := newResetFixture(t)
	assert.ErrorIs(t, resetSvc.ResetPassword("no-such-token", "new-pass"), apperr.ErrInvalidToken)
}
