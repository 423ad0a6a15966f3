package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/config"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/dto"
	"github.com/JermaineMerritt-ai/Super-Codex-AI-sub002/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.RefreshToken{}))

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 168 * time.Hour,
	}
	return NewAuthService(db, cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "keeper@vault.test", resp.User.Email)

	login, err := svc.Login("obsidian_vault", &dto.LoginRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, login.AccessToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)

	_, err = svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "another-pass",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Same email in a different realm is a different account.
	_, err = svc.Register("astral_court", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "short",
	})
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)

	_, err = svc.Login("obsidian_vault", &dto.LoginRequest{
		Email: "keeper@vault.test", Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("obsidian_vault", &dto.LoginRequest{
		Email: "nobody@vault.test", Password: "deep-silence",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAccessTokenClaims(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)

	token, err := jwt.Parse(resp.AccessToken, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "obsidian_vault", claims["realm_id"])
	assert.Equal(t, "keeper@vault.test", claims["email"])
}

func TestRefreshRotatesToken(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh("obsidian_vault", &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

	// The old token is revoked after use.
	_, err = svc.Refresh("obsidian_vault", &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestAuthService(t)

	resp, err := svc.Register("obsidian_vault", &dto.RegisterRequest{
		Email: "keeper@vault.test", Password: "deep-silence",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout("obsidian_vault", &dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh("obsidian_vault", &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
