package gormpersistence_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/JuanLadeira/task-challenge/internal/domain"
	gormpersistence "github.com/JuanLadeira/task-challenge/internal/infra/persistence/gorm"
	"github.com/JuanLadeira/task-challenge/internal/repository"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Todo{}))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username, email string) *domain.User {
	t.Helper()
	user := &domain.User{Username: username, Email: email, Password: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestGormUserRepository_SaveAndFind(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	user := &domain.User{Username: "alice", Email: "alice@example.com", Password: "hash"}
	require.NoError(t, repo.Save(ctx, user))
	assert.NotZero(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	_, err = repo.FindByID(ctx, 9999)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
	_, err = repo.FindByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestGormUserRepository_DuplicateUsername(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &domain.User{Username: "alice", Email: "a@example.com", Password: "hash"}))
	err := repo.Save(ctx, &domain.User{Username: "alice", Email: "b@example.com", Password: "hash"})
	assert.ErrorIs(t, err, repository.ErrDuplicateEntry)
}

func TestGormUserRepository_FindAllOrderedByID(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	createUser(t, db, "bob", "bob@example.com")
	createUser(t, db, "alice", "alice@example.com")

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Less(t, users[0].ID, users[1].ID)
}

func TestGormUserRepository_DeleteCascadesTodos(t *testing.T) {
	db := setupDB(t)
	userRepo := gormpersistence.NewGormUserRepository(db)
	ctx := context.Background()

	user := createUser(t, db, "alice", "alice@example.com")
	require.NoError(t, db.Create(&domain.Todo{Content: "task", UserID: &user.ID}).Error)

	removed, err := userRepo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	var count int64
	db.Model(&domain.Todo{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count, "owned todos must be removed with the user")

	removed, err = userRepo.Delete(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete removes nothing")
}

func TestGormTodoRepository_FindAllScopesByOwner(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	require.NoError(t, repo.Save(ctx, &domain.Todo{Content: "alice 1", UserID: &alice.ID}))
	require.NoError(t, repo.Save(ctx, &domain.Todo{Content: "bob 1", UserID: &bob.ID}))
	require.NoError(t, repo.Save(ctx, &domain.Todo{Content: "alice 2", UserID: &alice.ID}))

	all, err := repo.FindAll(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	scoped, err := repo.FindAll(ctx, &alice.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	for _, todo := range scoped {
		require.NotNil(t, todo.UserID)
		assert.Equal(t, alice.ID, *todo.UserID, "owner A's list never contains B's todos")
	}
	assert.Less(t, scoped[0].ID, scoped[1].ID, "ordered by id ascending")
}

func TestGormTodoRepository_DeleteHonoursOwnerGate(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormTodoRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice", "alice@example.com")
	bob := createUser(t, db, "bob", "bob@example.com")
	todo := &domain.Todo{Content: "alice's", UserID: &alice.ID}
	require.NoError(t, repo.Save(ctx, todo))

	removed, err := repo.Delete(ctx, todo.ID, &bob.ID)
	require.NoError(t, err)
	assert.False(t, removed, "foreign owner must not delete the row")

	removed, err = repo.Delete(ctx, todo.ID, &alice.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete(ctx, todo.ID, &alice.ID)
	require.NoError(t, err)
	assert.False(t, removed, "double delete reports no row removed")
}

func TestGormTodoRepository_SaveUpdatesInPlace(t *testing.T) {
	db := setupDB(t)
	repo := gormpersistence.NewGormTodoRepository(db)
	ctx := context.Background()

	todo := &domain.Todo{Content: "initial"}
	require.NoError(t, repo.Save(ctx, todo))
	firstID := todo.ID

	todo.Completed = true
	require.NoError(t, repo.Save(ctx, todo))

	reloaded, err := repo.FindByID(ctx, firstID)
	require.NoError(t, err)
	assert.True(t, reloaded.Completed)
	assert.Equal(t, "initial", reloaded.Content)

	var count int64
	db.Model(&domain.Todo{}).Count(&count)
	assert.EqualValues(t, 1, count, "update must not insert a second row")
}
