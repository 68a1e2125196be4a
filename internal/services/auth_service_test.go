// internal/services/auth_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vervecommerce/verve-backend/internal/config"
	"github.com/vervecommerce/verve-backend/internal/models"
	"github.com/vervecommerce/verve-backend/internal/utils"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	utils.SetJWTSecret("test-secret")
	cfg := &config.Config{}
	cfg.JWT.AccessTokenTTL = 1
	cfg.JWT.RefreshTokenTTL = 1
	return NewAuthService(newTestDB(t), cfg)
}

func registerRequest(email string) *RegisterRequest {
	return &RegisterRequest{
		Email:     email,
		Password:  "secret-password",
		FullName:  "Test Seller",
		Role:      models.UserRoleSeller,
		StoreName: "Test Store",
	}
}

func TestRegisterIssuesTokens(t *testing.T) {
	service := newAuthService(t)

	resp, err := service.Register(registerRequest("seller@example.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "Bearer", resp.TokenType)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	service := newAuthService(t)

	_, err := service.Register(registerRequest("seller@example.com"))
	require.NoError(t, err)

	_, err = service.Register(registerRequest("seller@example.com"))
	require.Error(t, err)

	de, ok := AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, ErrCodeValidationFailed, de.Code)
	assert.Equal(t, "email", de.Field)
}
