package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	"github.com/JuanLadeira/task-challenge/internal/repository"
	"github.com/JuanLadeira/task-challenge/internal/repository/mocks"
	"github.com/JuanLadeira/task-challenge/internal/service"
)

func uintPtr(v uint) *uint { return &v }

func TestTodoService_Create_DefaultsToNotCompleted(t *testing.T) {
	// Arrange
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()
	owner := uintPtr(7)

	mockTodoRepo.On("Save", ctx, mock.MatchedBy(func(todo *domain.Todo) bool {
		assert.Equal(t, "Buy milk", todo.Content)
		assert.False(t, todo.Completed)
		require.NotNil(t, todo.UserID)
		assert.Equal(t, uint(7), *todo.UserID)
		return true
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Todo).ID = 3
	}).Return(nil).Once()

	// Act
	created, err := todoService.Create(ctx, "Buy milk", owner)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, uint(3), created.ID)
	assert.False(t, created.Completed)
	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_Create_Unscoped(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()

	mockTodoRepo.On("Save", ctx, mock.MatchedBy(func(todo *domain.Todo) bool {
		return todo.UserID == nil
	})).Return(nil).Once()

	_, err := todoService.Create(ctx, "anonymous task", nil)

	require.NoError(t, err)
	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_List_PassesOwnerScope(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()
	owner := uintPtr(7)

	scoped := []domain.Todo{{ID: 1, Content: "mine", UserID: owner}}
	mockTodoRepo.On("FindAll", ctx, owner).Return(scoped, nil).Once()

	todos, err := todoService.List(ctx, owner)

	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "mine", todos[0].Content)
	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_Update_AppliesOnlySuppliedFields(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()
	owner := uintPtr(7)

	stored := &domain.Todo{ID: 1, Content: "original", Completed: false, UserID: owner}
	mockTodoRepo.On("FindByID", ctx, uint(1)).Return(stored, nil).Once()
	mockTodoRepo.On("Save", ctx, mock.MatchedBy(func(todo *domain.Todo) bool {
		return todo.Content == "original" && todo.Completed
	})).Return(nil).Once()

	completed := true
	updated, err := todoService.Update(ctx, 1, service.TodoUpdate{Completed: &completed}, owner)

	require.NoError(t, err)
	assert.Equal(t, "original", updated.Content, "unset content must be untouched")
	assert.True(t, updated.Completed)
	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_Update_OwnerMismatchIsNotFound(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()

	stored := &domain.Todo{ID: 1, Content: "theirs", UserID: uintPtr(99)}
	mockTodoRepo.On("FindByID", ctx, uint(1)).Return(stored, nil).Once()

	content := "hijacked"
	_, err := todoService.Update(ctx, 1, service.TodoUpdate{Content: &content}, uintPtr(7))

	require.Error(t, err)
	assert.True(t, errors.Is(err, service.ErrTodoNotFound), "foreign todo must look like a missing one")
	mockTodoRepo.AssertExpectations(t)
	mockTodoRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTodoService_Update_NilOwnerSkipsGate(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()

	stored := &domain.Todo{ID: 1, Content: "anyone's", UserID: uintPtr(99)}
	mockTodoRepo.On("FindByID", ctx, uint(1)).Return(stored, nil).Once()
	mockTodoRepo.On("Save", ctx, mock.AnythingOfType("*domain.Todo")).Return(nil).Once()

	content := "edited"
	_, err := todoService.Update(ctx, 1, service.TodoUpdate{Content: &content}, nil)

	require.NoError(t, err)
	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_Delete_TwiceReportsNotFound(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()
	owner := uintPtr(7)

	mockTodoRepo.On("Delete", ctx, uint(1), owner).Return(true, nil).Once()
	require.NoError(t, todoService.Delete(ctx, 1, owner))

	mockTodoRepo.On("Delete", ctx, uint(1), owner).Return(false, nil).Once()
	err := todoService.Delete(ctx, 1, owner)
	assert.True(t, errors.Is(err, service.ErrTodoNotFound))

	mockTodoRepo.AssertExpectations(t)
}

func TestTodoService_GetByID_NotFound(t *testing.T) {
	mockTodoRepo := new(mocks.TodoRepository)
	todoService := service.NewTodoService(mockTodoRepo)
	ctx := context.Background()

	mockTodoRepo.On("FindByID", ctx, uint(404)).Return(nil, repository.ErrTodoNotFound).Once()

	_, err := todoService.GetByID(ctx, 404)

	assert.True(t, errors.Is(err, service.ErrTodoNotFound))
	mockTodoRepo.AssertExpectations(t)
}
