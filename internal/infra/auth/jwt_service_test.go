package auth

import (
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestConfig(secret string, ttlHours int) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	if ttlHours > 0 {
		cfg.Auth = &config.AuthConfig{TokenTTLHours: ttlHours}
	}

	return cfg
}

func TestJWTService_GenerateAndValidateToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing", 0))
	assert.NoError(t, err)
	assert.NotNil(t, jwtService)

	user := &entity.User{
		ID:    uuid.New(),
		Email: "test@example.com",
		Role:  entity.RoleCustomer,
	}

	token, err := jwtService.GenerateToken(user)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, entity.RoleCustomer, claims.Role)
	assert.Equal(t, user.ID.String(), claims.Subject)
}

func TestJWTService_ConfiguredTTL(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing", 2))
	assert.NoError(t, err)

	token, err := jwtService.GenerateToken(&entity.User{ID: uuid.New(), Role: entity.RoleCustomer})
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)

	remaining := time.Until(claims.ExpiresAt.Time)
	assert.Greater(t, remaining, time.Hour)
	assert.LessOrEqual(t, remaining, 2*time.Hour)
}

func TestJWTService_InvalidToken(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("test_access_secret_key_very_long_for_testing", 0))
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken("clearly-not-a-jwt-token-format")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTestConfig("issuer_secret_key_very_long_for_testing", 0))
	assert.NoError(t, err)

	verifier, err := NewJWTService(newTestConfig("different_secret_key_very_long_for_testing", 0))
	assert.NoError(t, err)

	token, err := issuer.GenerateToken(&entity.User{ID: uuid.New(), Role: entity.RoleCustomer})
	assert.NoError(t, err)

	claims, err := verifier.ValidateToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MissingSecret(t *testing.T) {
	jwtService, err := NewJWTService(newTestConfig("", 0))
	assert.Error(t, err)
	assert.Nil(t, jwtService)
}
