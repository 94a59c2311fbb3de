package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/JuanLadeira/task-challenge/internal/domain"
)

// TodoRepository is a mock implementation of repository.TodoRepository.
type TodoRepository struct {
	mock.Mock
}

func (m *TodoRepository) FindByID(ctx context.Context, id uint) (*domain.Todo, error) {
	args := m.Called(ctx, id)
	var todo *domain.Todo
	if args.Get(0) != nil {
		todo = args.Get(0).(*domain.Todo)
	}
	return todo, args.Error(1)
}

func (m *TodoRepository) FindAll(ctx context.Context, owner *uint) ([]domain.Todo, error) {
	args := m.Called(ctx, owner)
	var todos []domain.Todo
	if args.Get(0) != nil {
		todos = args.Get(0).([]domain.Todo)
	}
	return todos, args.Error(1)
}

func (m *TodoRepository) Save(ctx context.Context, todo *domain.Todo) error {
	args := m.Called(ctx, todo)
	return args.Error(0)
}

func (m *TodoRepository) Delete(ctx context.Context, id uint, owner *uint) (bool, error) {
	args := m.Called(ctx, id, owner)
	return args.Bool(0), args.Error(1)
}
