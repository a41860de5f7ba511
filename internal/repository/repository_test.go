package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "tm.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user, err := NewUserRepository(db).Create(context.Background(), name, "", "")
	require.NoError(t, err)
	return user
}

func createTask(t *testing.T, db *gorm.DB, userID, title string) *model.Task {
	t.Helper()
	task := &model.Task{
		ID:       title + "-" + userID[:8],
		UserID:   userID,
		Title:    title,
		Status:   model.StatusTodo,
		Priority: model.PriorityMedium,
	}
	require.NoError(t, NewTaskRepository(db).Create(context.Background(), task))
	return task
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(value).Count(&n).Error)
	return n
}

func TestWithSQLitePragmas(t *testing.T) {
	got := withSQLitePragmas("data/tm.db?_busy_timeout=100")
	require.Contains(t, got, "_busy_timeout=100")
	require.Contains(t, got, "_foreign_keys=on")
	require.Contains(t, got, "_journal_mode=WAL")
	require.Contains(t, got, "_txlock=immediate")

	mem := withSQLitePragmas("file::memory:?cache=shared")
	require.NotContains(t, mem, "_journal_mode")
}

func TestNewDB_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "tm.db")
	db, err := NewDB(path, zap.NewNop())
	require.NoError(t, err)
	require.True(t, db.Migrator().HasTable(&model.TaskTag{}))
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	tasks := NewTaskRepository(db)
	boom := model.NewValidationError("title", "boom")

	err := NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, tasks.Create(ctx, &model.Task{
			ID: "t1", UserID: user.ID, Title: "x", Status: model.StatusTodo, Priority: model.PriorityLow,
		}))
		return boom
	})

	require.ErrorIs(t, err, boom)
	require.Zero(t, countRows(t, db, &model.Task{}))
}

func TestTransactor_NestedJoinsOuter(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	tasks := NewTaskRepository(db)
	tx := NewTransactor(db)

	err := tx.WithinTx(context.Background(), func(ctx context.Context) error {
		require.NoError(t, tx.WithinTx(ctx, func(ctx context.Context) error {
			return tasks.Create(ctx, &model.Task{
				ID: "t1", UserID: user.ID, Title: "x", Status: model.StatusTodo, Priority: model.PriorityLow,
			})
		}))
		return model.ErrValidation
	})

	require.ErrorIs(t, err, model.ErrValidation)
	require.Zero(t, countRows(t, db, &model.Task{}))
}
