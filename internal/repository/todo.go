package repository

import (
	"context"

	"github.com/JuanLadeira/task-challenge/internal/domain"
)

// TodoRepository defines storage and retrieval of todos. Methods taking an
// owner treat nil as "no scoping" and a non-nil pointer as a filter on the
// owning user id.
type TodoRepository interface {
	// FindByID returns the todo with the given id, or ErrTodoNotFound.
	FindByID(ctx context.Context, id uint) (*domain.Todo, error)

	// FindAll returns todos ordered by id ascending, restricted to the
	// owner when one is given.
	FindAll(ctx context.Context, owner *uint) ([]domain.Todo, error)

	// Save inserts the todo when its ID is zero and updates it otherwise.
	Save(ctx context.Context, todo *domain.Todo) error

	// Delete removes the todo with the given id, additionally requiring its
	// user_id to match owner when one is given. It reports whether a row
	// was removed.
	Delete(ctx context.Context, id uint, owner *uint) (bool, error)
}
