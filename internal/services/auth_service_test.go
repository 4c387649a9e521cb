package services

import (
	"testing"

	"github.com/elitestore/storefront/internal/dto"
	"github.com/elitestore/storefront/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(t *testing.T) (*gorm.DB, *AuthService) {
	t.Helper()
	db := newTestDB(t)
	return db, NewAuthService(db, testConfig())
}

func registerTestUser(t *testing.T, s *AuthService) *dto.AuthResponse {
	t.Helper()
	resp, err := s.Register(&dto.RegisterRequest{
		Name:     "Jo Doe",
		Email:    "jo@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	db, s := newAuthService(t)

	resp := registerTestUser(t, s)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "jo@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)

	// The stored password is a hash, never the plaintext.
	var user models.User
	require.NoError(t, db.First(&user, "email = ?", "jo@example.com").Error)
	assert.NotEqual(t, "correct-horse", user.Password)
	assert.NotEmpty(t, user.Password)

	// Refresh tokens are stored hashed too.
	var stored models.RefreshToken
	require.NoError(t, db.First(&stored, "user_id = ?", user.ID).Error)
	assert.NotEqual(t, resp.RefreshToken, stored.TokenHash)
}

func TestRegisterValidation(t *testing.T) {
	_, s := newAuthService(t)

	_, err := s.Register(&dto.RegisterRequest{Name: "Jo", Email: "jo@example.com", Password: "short"})
	assert.Error(t, err)

	_, err = s.Register(&dto.RegisterRequest{Email: "jo@example.com", Password: "correct-horse"})
	assert.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	_, s := newAuthService(t)

	registerTestUser(t, s)
	_, err := s.Register(&dto.RegisterRequest{
		Name:     "Other",
		Email:    "jo@example.com",
		Password: "battery-staple",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	_, s := newAuthService(t)
	registerTestUser(t, s)

	resp, err := s.Login(&dto.LoginRequest{Email: "jo@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	_, err = s.Login(&dto.LoginRequest{Email: "jo@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = s.Login(&dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessTokenClaims(t *testing.T) {
	_, s := newAuthService(t)
	resp := registerTestUser(t, s)

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "jo@example.com", claims["email"])
	assert.Equal(t, "user", claims["role"])
}

func TestRefreshRotatesToken(t *testing.T) {
	_, s := newAuthService(t)
	resp := registerTestUser(t, s)

	rotated, err := s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	// The presented token was revoked by the rotation.
	_, err = s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	// The new token still works.
	_, err = s.Refresh(&dto.RefreshRequest{RefreshToken: rotated.RefreshToken})
	assert.NoError(t, err)
}

func TestRefreshRejectsGarbage(t *testing.T) {
	_, s := newAuthService(t)

	_, err := s.Refresh(&dto.RefreshRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	_, s := newAuthService(t)
	resp := registerTestUser(t, s)

	require.NoError(t, s.Logout(&dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err := s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDeleteAccount(t *testing.T) {
	db, s := newAuthService(t)
	resp := registerTestUser(t, s)

	assert.ErrorIs(t, s.DeleteAccount(resp.User.ID, ""), ErrPasswordRequired)
	assert.ErrorIs(t, s.DeleteAccount(resp.User.ID, "wrong"), ErrInvalidCredentials)

	require.NoError(t, s.DeleteAccount(resp.User.ID, "correct-horse"))

	// Soft delete: login fails but the row survives.
	_, err := s.Login(&dto.LoginRequest{Email: "jo@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var count int64
	db.Unscoped().Model(&models.User{}).Where("id = ?", resp.User.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	// All refresh tokens are revoked.
	_, err = s.Refresh(&dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
