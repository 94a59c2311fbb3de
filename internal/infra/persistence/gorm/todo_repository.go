package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// GormTodoRepository is the GORM implementation of repository.TodoRepository.
type GormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a GormTodoRepository.
func NewGormTodoRepository(db *gorm.DB) *GormTodoRepository {
	if db == nil {
		panic("database connection cannot be nil for GormTodoRepository")
	}
	return &GormTodoRepository{db: db}
}

func (r *GormTodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	var todo domain.Todo
	err := r.db.WithContext(ctx).First(&todo, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTodoNotFound
		}
		return nil, fmt.Errorf("gorm: find todo by id %d: %w", id, err)
	}
	return &todo, nil
}

func (r *GormTodoRepository) FindAll(ctx context.Context, owner *uint) ([]domain.Todo, error) {
	var todos []domain.Todo
	query := r.db.WithContext(ctx).Order("id asc")
	if owner != nil {
		query = query.Where("user_id = ?", *owner)
	}
	if err := query.Find(&todos).Error; err != nil {
		return nil, fmt.Errorf("gorm: find all todos: %w", err)
	}
	return todos, nil
}

func (r *GormTodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	err := r.db.WithContext(ctx).Save(todo).Error
	if err != nil {
		return fmt.Errorf("gorm: save todo (id: %d): %w", todo.ID, err)
	}
	return nil
}

func (r *GormTodoRepository) Delete(ctx context.Context, id uint, owner *uint) (bool, error) {
	query := r.db.WithContext(ctx)
	if owner != nil {
		query = query.Where("user_id = ?", *owner)
	}
	result := query.Delete(&domain.Todo{}, id)
	if result.Error != nil {
		return false, fmt.Errorf("gorm: delete todo %d: %w", id, result.Error)
	}
	return result.RowsAffected > 0, nil
}
