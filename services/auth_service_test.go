package services

import (
	"testing"
	"time"

	"fotostudio-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestAuth(t *testing.T, db *gorm.DB, limit int64) *AuthService {
	t.Helper()
	return NewAuthService(db, func(count int64) bool { return count < limit }, time.Hour)
}

func TestRegister_CapClosesRegistration(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuth(t, db, 1)

	open, err := svc.CanRegister()
	require.NoError(t, err)
	assert.True(t, open)

	user, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)

	open, err = svc.CanRegister()
	require.NoError(t, err)
	assert.False(t, open)

	_, err = svc.Register("Second", "second@studio.test", "rahasia-sekali")
	assert.ErrorIs(t, err, ErrRegistrationClosed)
}

func TestRegister_EmailTaken(t *testing.T) {
	svc := newTestAuth(t, newTestDB(t), 5)

	_, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	_, err = svc.Register("Clone", "admin@studio.test", "rahasia-sekali")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_IssuesUsableToken(t *testing.T) {
	db := newTestDB(t)
	svc := newTestAuth(t, db, 5)

	_, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	user, token, err := svc.Login("admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "admin@studio.test", user.Email)

	authed, err := svc.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)

	// only the hash may hit the database
	var stored models.AccessToken
	require.NoError(t, db.First(&stored).Error)
	assert.NotEqual(t, token, stored.TokenHash)
}

func TestLogin_BadCredentialsIndistinguishable(t *testing.T) {
	svc := newTestAuth(t, newTestDB(t), 5)

	_, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	_, _, wrongPass := svc.Login("admin@studio.test", "salah")
	_, _, unknownEmail := svc.Login("nobody@studio.test", "salah")

	assert.ErrorIs(t, wrongPass, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
}

func TestAuthenticate_ExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, func(int64) bool { return true }, -time.Minute)

	_, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	_, token, err := svc.Login("admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogout_RevokesAndIsIdempotent(t *testing.T) {
	svc := newTestAuth(t, newTestDB(t), 5)

	_, err := svc.Register("Admin", "admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	_, token, err := svc.Login("admin@studio.test", "rahasia-sekali")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// second logout of the same token must not fail
	require.NoError(t, svc.Logout(token))
}
