// Package repository declares the storage interfaces the services depend on.
package repository

import (
	"context"

	"github.com/JuanLadeira/task-challenge/internal/domain"
)

// UserRepository defines storage and retrieval of user accounts.
type UserRepository interface {
	// FindByID returns the user with the given id, or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByUsername returns the user with the given username, or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindAll returns every user ordered by id ascending.
	FindAll(ctx context.Context) ([]domain.User, error)

	// Save inserts the user when its ID is zero and updates it otherwise.
	// Unique constraint violations surface as ErrDuplicateEntry.
	Save(ctx context.Context, user *domain.User) error

	// Delete removes the user with the given id and reports whether a row
	// was actually removed.
	Delete(ctx context.Context, id uint) (bool, error)
}
