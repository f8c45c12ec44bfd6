// services/password_reset_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"fotostudio-backend/models"
	"fotostudio-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ResetURLBuilder turns an email/token pair into the link placed in the
// reset email. Injected so the frontend URL shape is not baked in here.
type ResetURLBuilder func(email, token string) string

// ResetMailer delivers the reset link. Injected so tests can capture mail.
type ResetMailer func(recipientEmail, resetURL string, expireMinutes int) error

// FrontendResetURLBuilder builds reset links pointing at the frontend's
// reset page.
func FrontendResetURLBuilder(frontendURL string) ResetURLBuilder {
	frontendURL = strings.TrimRight(frontendURL, "/")
	return func(email, token string) string {
		return fmt.Sprintf("%s/reset-password?token=%s&email=%s",
			frontendURL, url.QueryEscape(token), url.QueryEscape(email))
	}
}

// PasswordResetService issues and consumes password-reset tokens.
type PasswordResetService struct {
	DB            *gorm.DB
	Auth          *AuthService
	BuildResetURL ResetURLBuilder
	SendMail      ResetMailer
	ExpireMinutes int
}

func NewPasswordResetService(db *gorm.DB, auth *AuthService, buildURL ResetURLBuilder, mailer ResetMailer, expireMinutes int) *PasswordResetService {
	return &PasswordResetService{
		DB:            db,
		Auth:          auth,
		BuildResetURL: buildURL,
		SendMail:      mailer,
		ExpireMinutes: expireMinutes,
	}
}

// Forgot issues a reset token for the account if it exists and mails the
// link. Unknown emails succeed silently; a mail delivery failure is logged
// but never rolls the token back.
func (s *PasswordResetService) Forgot(email string) error {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := utils.GenerateSecureToken(24)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := time.Now().UTC().Add(time.Duration(s.ExpireMinutes) * time.Minute)
	if err := s.DB.Model(&user).Updates(map[string]any{
		"reset_token":         token,
		"reset_token_expires": expiry,
	}).Error; err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := s.BuildResetURL(user.Email, token)
	if mailErr := s.SendMail(user.Email, resetURL, s.ExpireMinutes); mailErr != nil {
		// the token is already issued; notification failure must not undo it
		log.Printf("error: reset email to %s failed: %v", user.Email, mailErr)
	}
	return nil
}

// Reset consumes a valid token: re-hashes the password, clears the token and
// revokes every outstanding bearer token of the user.
func (s *PasswordResetService) Reset(email, token, newPassword string) error {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	if user.ResetToken == nil || *user.ResetToken != token {
		return ErrInvalidResetToken
	}
	if user.ResetTokenExpires == nil || time.Now().UTC().After(*user.ResetTokenExpires) {
		return ErrInvalidResetToken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.DB.Model(&user).Updates(map[string]any{
		"password":            string(hash),
		"reset_token":         nil,
		"reset_token_expires": nil,
	}).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.Auth.RevokeAllForUser(user.ID); err != nil {
		log.Printf("warning: failed to revoke tokens after reset for user %d: %v", user.ID, err)
	}
	return nil
}
