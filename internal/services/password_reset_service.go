package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/apperr"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/mail"
	"github.com/zmrbk/DiplomaProjectSchoolMegalab-sub000/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// PasswordResetServiceProvider defines the interface for the reset flow.
type PasswordResetServiceProvider interface {
	SendResetEmail(ctx context.Context, email string) error
	ResetPassword(token, newPassword string) error
}

// PasswordResetService drives the forgot/reset password flow over the
// reset-token ledger, the credential store and the mail collaborator.
type PasswordResetService struct {
	db       *sql.DB
	users    UserServiceProvider
	mailer   mail.Mailer
	eventSvc EventServiceProvider
	tokenTTL time.Duration
	now      func() time.Time
}

// NewPasswordResetService creates a new PasswordResetService.
func NewPasswordResetService(db *sql.DB, users UserServiceProvider, mailer mail.Mailer, eventSvc EventServiceProvider, tokenTTL time.Duration) *PasswordResetService {
	return &PasswordResetService{
		db:       db,
		users:    users,
		mailer:   mailer,
		eventSvc: eventSvc,
		tokenTTL: tokenTTL,
		now:      time.Now,
	}
}

// SendResetEmail issues a fresh reset token for the user behind email and
// mails it out. Any previous token for the user is replaced in the same
// transaction, so at most one usable token exists per user at any moment.
// Mail failures are returned to the caller (wrapping apperr.ErrMailDelivery);
// the token row stays valid so the user can retry.
func (s *PasswordResetService) SendResetEmail(ctx context.Context, email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}

	token := models.ResetToken{
		Token:     uuid.New().String(),
		UserID:    user.ID,
		ExpiresAt: s.now().Add(s.tokenTTL),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM reset_tokens WHERE user_id = ?", user.ID); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)",
		token.Token, token.UserID, token.ExpiresAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	body := fmt.Sprintf(
		"Hello %s,\n\nA password reset was requested for your account. Use the token below within %s:\n\n%s\n\nIf you did not request this, ignore this mail.",
		user.Username, s.tokenTTL, token.Token)

	if err := s.mailer.Send(ctx, user.Email, "Password reset", body); err != nil {
		s.eventSvc.CreateEvent("auth.reset.mail_fail", "error", fmt.Sprintf("Reset mail to '%s' failed.", user.Email), &user.ID)
		return err
	}

	s.eventSvc.CreateEvent("auth.reset.sent", "info", fmt.Sprintf("Reset mail sent to '%s'.", user.Email), &user.ID)
	return nil
}

// ResetPassword consumes a reset token and overwrites the user's password.
// Expired tokens are rejected and removed lazily here; there is no
// background sweep. The password update and token deletion share a
// transaction, so a token can never be spent twice.
func (s *PasswordResetService) ResetPassword(token, newPassword string) error {
	var userID string
	var expiresAt time.Time
	err := s.db.QueryRow("SELECT user_id, expires_at FROM reset_tokens WHERE token = ?", token).Scan(&userID, &expiresAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return apperr.ErrInvalidToken
		}
		return err
	}

	if s.now().After(expiresAt) {
		if _, err := s.db.Exec("DELETE FROM reset_tokens WHERE token = ?", token); err != nil {
			return err
		}
		return apperr.ErrTokenExpired
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("UPDATE users SET password_hash = ? WHERE id = ?", string(hashedPassword), userID); err != nil {
		return err
	}
	res, err := tx.Exec("DELETE FROM reset_tokens WHERE token = ?", token)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// A concurrent reset consumed the token between lookup and delete.
		return apperr.ErrInvalidToken
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	s.eventSvc.CreateEvent("auth.reset.done", "info", "Password reset completed.", &userID)
	return nil
}
