// services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"fotostudio-backend/models"
	"fotostudio-backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService owns user accounts and the opaque bearer tokens gating the
// admin surface. Tokens are random hex, stored hashed, deleted on logout.
type AuthService struct {
	DB *gorm.DB

	// CanRegisterAdmin decides whether a new admin account may still be
	// created given the current admin count. The threshold is deployment
	// policy, injected rather than hard-coded.
	CanRegisterAdmin func(adminCount int64) bool

	// TokenTTL bounds how long an issued token stays valid.
	TokenTTL time.Duration
}

func NewAuthService(db *gorm.DB, canRegister func(adminCount int64) bool, tokenTTL time.Duration) *AuthService {
	return &AuthService{DB: db, CanRegisterAdmin: canRegister, TokenTTL: tokenTTL}
}

// CanRegister reports whether new admin registration is currently open.
func (s *AuthService) CanRegister() (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("is_admin = ?", true).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	return s.CanRegisterAdmin(count), nil
}

// Register creates an admin account, provided registration is still open and
// the email is free.
func (s *AuthService) Register(name, email, password string) (models.User, error) {
	open, err := s.CanRegister()
	if err != nil {
		return models.User{}, err
	}
	if !open {
		return models.User{}, ErrRegistrationClosed
	}

	var existing models.User
	err = s.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.User{}, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		IsAdmin:  true,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return models.User{}, ErrEmailTaken
		}
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and issues a fresh bearer token. Unknown email
// and wrong password fail identically so the response discloses nothing.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	var user models.User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", ErrInvalidCredentials
		}
		return models.User{}, "", fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return models.User{}, "", ErrInvalidCredentials
	}

	raw, err := utils.GenerateSecureToken(32)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to generate token: %w", err)
	}

	token := models.AccessToken{
		UserID:    user.ID,
		TokenHash: utils.HashToken(raw),
		ExpiresAt: time.Now().UTC().Add(s.TokenTTL),
	}
	if err := s.DB.Create(&token).Error; err != nil {
		return models.User{}, "", fmt.Errorf("failed to store token: %w", err)
	}
	return user, raw, nil
}

// Authenticate resolves a raw bearer token to its user. Expired or unknown
// tokens fail with ErrInvalidToken.
func (s *AuthService) Authenticate(raw string) (models.User, error) {
	var token models.AccessToken
	err := s.DB.Where("token_hash = ?", utils.HashToken(raw)).First(&token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrInvalidToken
		}
		return models.User{}, fmt.Errorf("failed to look up token: %w", err)
	}

	if time.Now().UTC().After(token.ExpiresAt) {
		// expired rows are dead weight, clear them as we meet them
		s.DB.Delete(&token)
		return models.User{}, ErrInvalidToken
	}

	var user models.User
	if err := s.DB.First(&user, token.UserID).Error; err != nil {
		return models.User{}, ErrInvalidToken
	}
	return user, nil
}

// Logout revokes the presented token. Revoking an already-dead token is not
// an error; logout is idempotent.
func (s *AuthService) Logout(raw string) error {
	if err := s.DB.Where("token_hash = ?", utils.HashToken(raw)).Delete(&models.AccessToken{}).Error; err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAllForUser drops every outstanding token of one user. Used after a
// password reset.
func (s *AuthService) RevokeAllForUser(userID uint) error {
	if err := s.DB.Where("user_id = ?", userID).Delete(&models.AccessToken{}).Error; err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}
