package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

// TodoUpdate carries a partial update; nil fields are left untouched.
type TodoUpdate struct {
	Content   *string
	Completed *bool
}

// TodoService handles todo CRUD. Every method takes an optional owner: nil
// disables scoping, a non-nil pointer filters reads and gates writes so that
// another user's todo behaves exactly like a missing one.
type TodoService struct {
	todoRepo repository.TodoRepository
}

// NewTodoService creates a TodoService.
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	if todoRepo == nil {
		panic("TodoRepository cannot be nil for TodoService")
	}
	return &TodoService{todoRepo: todoRepo}
}

// Create persists a new todo with Completed=false.
func (s *TodoService) Create(ctx context.Context, content string, owner *uint) (*domain.Todo, error) {
	todo := &domain.Todo{
		Content:   content,
		Completed: false,
		UserID:    owner,
	}
	if err := s.todoRepo.Save(ctx, todo); err != nil {
		logrus.WithError(err).Error("TodoService.Create: database error")
		return nil, ErrInternalServer
	}
	logrus.WithFields(logrus.Fields{
		"event":   "todo.created",
		"todo_id": todo.ID,
		"content": todo.Content,
	}).Info("Todo created")
	return todo, nil
}

// List returns todos ordered by id ascending, scoped to owner when given.
func (s *TodoService) List(ctx context.Context, owner *uint) ([]domain.Todo, error) {
	todos, err := s.todoRepo.FindAll(ctx, owner)
	if err != nil {
		logrus.WithError(err).Error("TodoService.List: repository error")
		return nil, ErrInternalServer
	}
	return todos, nil
}

// GetByID returns the todo with the given id, regardless of owner.
func (s *TodoService) GetByID(ctx context.Context, id uint) (*domain.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		logrus.WithError(err).WithField("todo_id", id).Error("TodoService.GetByID: repository error")
		return nil, ErrInternalServer
	}
	return todo, nil
}

// Update applies the supplied fields to an existing todo. With a non-nil
// owner, a todo owned by someone else is reported as not found.
func (s *TodoService) Update(ctx context.Context, id uint, update TodoUpdate, owner *uint) (*domain.Todo, error) {
	logCtx := logrus.WithField("todo_id", id)

	todo, err := s.todoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTodoNotFound) {
			return nil, ErrTodoNotFound
		}
		logCtx.WithError(err).Error("TodoService.Update: failed to load todo")
		return nil, ErrInternalServer
	}
	if !ownedBy(todo, owner) {
		return nil, ErrTodoNotFound
	}

	if update.Content != nil {
		todo.Content = *update.Content
	}
	if update.Completed != nil {
		todo.Completed = *update.Completed
	}

	if err := s.todoRepo.Save(ctx, todo); err != nil {
		logCtx.WithError(err).Error("TodoService.Update: database error")
		return nil, ErrInternalServer
	}

	logCtx.WithFields(logrus.Fields{
		"event":     "todo.updated",
		"completed": todo.Completed,
	}).Info("Todo updated")
	return todo, nil
}

// Delete removes the todo, gated by owner when one is given.
func (s *TodoService) Delete(ctx context.Context, id uint, owner *uint) error {
	removed, err := s.todoRepo.Delete(ctx, id, owner)
	if err != nil {
		logrus.WithError(err).WithField("todo_id", id).Error("TodoService.Delete: repository error")
		return ErrInternalServer
	}
	if !removed {
		return ErrTodoNotFound
	}
	logrus.WithFields(logrus.Fields{"event": "todo.deleted", "todo_id": id}).Info("Todo deleted")
	return nil
}

func ownedBy(todo *domain.Todo, owner *uint) bool {
	if owner == nil {
		return true
	}
	return todo.UserID != nil && *todo.UserID == *owner
}
