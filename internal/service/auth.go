package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/auth"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// AuthService authenticates users and issues access tokens.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates an AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if tokens == nil {
		panic("TokenManager cannot be nil for AuthService")
	}
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

// Login verifies the credentials and returns a signed token whose sub claim
// is the username. Unknown user and wrong password are indistinguishable to
// the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
		} else {
			logCtx.WithError(err).Warn("Login attempt failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		logCtx.Warn("Login attempt failed: repository returned nil user without error")
		return "", ErrAuthenticationFailed
	}

	if !auth.CheckPassword(password, user.Password) {
		logCtx.Warn("Login attempt failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.tokens.IssueForSubject(user.Username)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign token during login")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}
