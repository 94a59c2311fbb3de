package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuanLadeira/task-challenge/internal/auth"
	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
	"github.com/JuanLadeira/task-challenge/internal/repository/mocks"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

func newTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("test-secret", "HS256", 30)
	require.NoError(t, err)
	return tokens
}

func TestAuthService_Login_Success(t *testing.T) {
	// Arrange
	mockUserRepo := new(mocks.UserRepository)
	tokens := newTokenManager(t)
	authService := service.NewAuthService(mockUserRepo, tokens)
	ctx := context.Background()

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)
	userInDB := &domain.User{ID: 1, Username: "testuser", Password: hashed}
	mockUserRepo.On("FindByUsername", ctx, "testuser").Return(userInDB, nil).Once()

	// Act
	token, err := authService.Login(ctx, "testuser", "password123")

	// Assert
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// The issued token carries the username as subject.
	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	sub, err := auth.Subject(claims)
	require.NoError(t, err)
	assert.Equal(t, "testuser", sub)

	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo, newTokenManager(t))
	ctx := context.Background()

	mockUserRepo.On("FindByUsername", ctx, "nonexistent").Return(nil, repository.ErrUserNotFound).Once()

	token, err := authService.Login(ctx, "nonexistent", "password")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrAuthenticationFailed))
	mockUserRepo.AssertExpectations(t)
}

func TestAuthService_Login_IncorrectPassword(t *testing.T) {
	mockUserRepo := new(mocks.UserRepository)
	authService := service.NewAuthService(mockUserRepo, newTokenManager(t))
	ctx := context.Background()

	hashed, err := auth.HashPassword("password123")
	require.NoError(t, err)
	userInDB := &domain.User{ID: 1, Username: "testuser", Password: hashed}
	mockUserRepo.On("FindByUsername", ctx, "testuser").Return(userInDB, nil).Once()

	token, err := authService.Login(ctx, "testuser", "wrongpassword")

	require.Error(t, err)
	assert.Empty(t, token)
	assert.True(t, errors.Is(err, service.ErrAuthenticationFailed))
	mockUserRepo.AssertExpectations(t)
}
