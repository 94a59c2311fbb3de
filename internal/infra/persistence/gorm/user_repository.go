// Package gormpersistence implements the repository interfaces on top of GORM.
package gormpersistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// GormUserRepository is the GORM implementation of repository.UserRepository.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a GormUserRepository. The connection is
// injected; a nil connection is a programming error.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("database connection cannot be nil for GormUserRepository")
	}
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by id %d: %w", id, err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}
		return nil, fmt.Errorf("gorm: find user by username %q: %w", username, err)
	}
	return &user, nil
}

func (r *GormUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).Order("id asc").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: find all users: %w", err)
	}
	return users, nil
}

// Save inserts or updates depending on whether the primary key is set.
func (r *GormUserRepository) Save(ctx context.Context, user *domain.User) error {
	err := r.db.WithContext(ctx).Save(user).Error
	if err != nil {
		if isDuplicateEntryError(err) {
			return repository.ErrDuplicateEntry
		}
		return fmt.Errorf("gorm: save user (id: %d, username: %s): %w", user.ID, user.Username, err)
	}
	return nil
}

// Delete removes the user row. Owned todos go with it: by the FK constraint
// on databases that enforce it, and explicitly here so SQLite test setups
// without foreign_keys enabled behave the same.
func (r *GormUserRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var removed bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.User{}, id)
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected > 0
		if !removed {
			return nil
		}
		return tx.Where("user_id = ?", id).Delete(&domain.Todo{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("gorm: delete user %d: %w", id, err)
	}
	return removed, nil
}

// isDuplicateEntryError checks the common unique-constraint error strings of
// the supported drivers.
func isDuplicateEntryError(err error) bool {
	if err != nil && errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || // SQLite
		strings.Contains(msg, "Duplicate entry") || // MySQL
		strings.Contains(msg, "duplicate key value violates unique constraint") // PostgreSQL
}
