package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
	"github.com/ehtishamsajjad/tm/internal/repository"
)

var t0 = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	db   *gorm.DB
	svc  *TaskService
	user *model.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repository.NewDB(filepath.Join(t.TempDir(), "tm.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	user, err := repository.NewUserRepository(db).Create(context.Background(), "Ann", "", "ann")
	require.NoError(t, err)

	svc := NewTaskService(
		repository.NewTransactor(db),
		repository.NewTaskRepository(db),
		repository.NewTagRepository(db, "blue"),
		repository.NewLinkRepository(db),
	)
	svc.now = func() time.Time { return t0 }
	return &fixture{db: db, svc: svc, user: user}
}

func (f *fixture) count(t *testing.T, value interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(value).Count(&n).Error)
	return n
}

func tagNames(task *model.Task) []string {
	names := make([]string, 0, len(task.Tags))
	for _, tag := range task.Tags {
		names = append(names, tag.Name)
	}
	return names
}

func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func strPtr(s string) *string { return &s }
