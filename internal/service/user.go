// Package service holds the business logic between the HTTP handlers and the
// repositories.
package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/auth"
	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// UserUpdate carries a partial update. A nil field is left untouched; a
// non-nil field is applied even when it points at a zero value, so fields can
// be cleared explicitly.
type UserUpdate struct {
	Username *string
	Email    *string
	Password *string
}

// UserService handles user account management.
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService creates a UserService.
func NewUserService(userRepo repository.UserRepository) *UserService {
	if userRepo == nil {
		panic("UserRepository cannot be nil for UserService")
	}
	return &UserService{userRepo: userRepo}
}

// Create registers a new user. The password is hashed before it is persisted
// and never part of the returned object.
func (s *UserService) Create(ctx context.Context, username, email, password string) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "email": email})

	if _, err := s.userRepo.FindByUsername(ctx, username); err == nil {
		logCtx.Warn("UserService.Create: username already taken")
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		logCtx.WithError(err).Error("UserService.Create: failed to check username")
		return nil, ErrInternalServer
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		logCtx.WithError(err).Error("UserService.Create: failed to hash password")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hashed,
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.WithError(err).Warn("UserService.Create: duplicate username or email")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("UserService.Create: database error")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{"event": "user.created", "user_id": user.ID}).Info("User created")
	return user, nil
}

// GetByID returns the user with the given id.
func (s *UserService) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("user_id", id).Error("UserService.GetByID: repository error")
		return nil, ErrInternalServer
	}
	return user, nil
}

// GetByUsername returns the user with the given username.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logrus.WithError(err).WithField("username", username).Error("UserService.GetByUsername: repository error")
		return nil, ErrInternalServer
	}
	return user, nil
}

// List returns every user ordered by id ascending.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		logrus.WithError(err).Error("UserService.List: repository error")
		return nil, ErrInternalServer
	}
	return users, nil
}

// Update applies the supplied fields to an existing user. A supplied password
// is re-hashed before storage.
func (s *UserService) Update(ctx context.Context, id uint, update UserUpdate) (*domain.User, error) {
	logCtx := logrus.WithField("user_id", id)

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		logCtx.WithError(err).Error("UserService.Update: failed to load user")
		return nil, ErrInternalServer
	}

	if update.Username != nil {
		user.Username = *update.Username
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	if update.Password != nil {
		hashed, err := auth.HashPassword(*update.Password)
		if err != nil {
			logCtx.WithError(err).Error("UserService.Update: failed to hash password")
			return nil, ErrInternalServer
		}
		user.Password = hashed
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("UserService.Update: database error")
		return nil, ErrInternalServer
	}

	logCtx.WithField("event", "user.updated").Info("User updated")
	return user, nil
}

// Delete removes the user and, through the cascade, their todos.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	removed, err := s.userRepo.Delete(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("user_id", id).Error("UserService.Delete: repository error")
		return ErrInternalServer
	}
	if !removed {
		return ErrUserNotFound
	}
	logrus.WithFields(logrus.Fields{"event": "user.deleted", "user_id": id}).Info("User deleted")
	return nil
}
