package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ehtishamsajjad/tm/internal/model"
)

func TestTaskRepository_FindByIDScopedToOwner(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	task := createTask(t, db, ann.ID, "report")
	repo := NewTaskRepository(db)
	ctx := context.Background()

	got, err := repo.FindByID(ctx, ann.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, "report", got.Title)
	require.NotNil(t, got.Tags)
	require.Empty(t, got.Tags)

	_, err = repo.FindByID(ctx, bob.ID, task.ID)
	require.ErrorIs(t, err, model.ErrTaskNotFound)
	require.ErrorIs(t, err, model.ErrNotFound)

	_, err = repo.FindByID(ctx, ann.ID, "missing")
	require.ErrorIs(t, err, model.ErrTaskNotFound)
}

func TestTaskRepository_ListByUserAttachesTags(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	ctx := context.Background()

	first := createTask(t, db, ann.ID, "first")
	createTask(t, db, ann.ID, "second")
	createTask(t, db, bob.ID, "other")

	tags, err := NewTagRepository(db, "blue").Resolve(ctx, ann.ID, []string{"zz", "aa"})
	require.NoError(t, err)
	require.NoError(t, NewLinkRepository(db).Replace(ctx, first.ID, []string{tags["zz"].ID, tags["aa"].ID}))

	tasks, err := NewTaskRepository(db).ListByUser(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	require.Equal(t, "first", tasks[0].Title)
	require.Equal(t, "second", tasks[1].Title)
	require.Len(t, tasks[0].Tags, 2)
	require.Equal(t, "aa", tasks[0].Tags[0].Name)
	require.Equal(t, "zz", tasks[0].Tags[1].Name)
	require.Empty(t, tasks[1].Tags)
}

func TestTaskRepository_UpdateOnlyGivenColumns(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	task := createTask(t, db, ann.ID, "report")
	repo := NewTaskRepository(db)
	ctx := context.Background()
	later := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Update(ctx, ann.ID, task.ID, map[string]interface{}{
		"status":     model.StatusCompleted,
		"updated_at": later,
	}))

	got, err := repo.FindByID(ctx, ann.ID, task.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, got.Status)
	require.Equal(t, "report", got.Title)
	require.True(t, got.UpdatedAt.Equal(later))

	err = repo.Update(ctx, bob.ID, task.ID, map[string]interface{}{"title": "stolen"})
	require.ErrorIs(t, err, model.ErrTaskNotFound)
}

func TestTaskRepository_Statuses(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	task := createTask(t, db, ann.ID, "report")

	statuses, err := NewTaskRepository(db).Statuses(context.Background(), ann.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]model.TaskStatus{task.ID: model.StatusTodo}, statuses)
}

func TestTaskRepository_DeleteRemovesLinksKeepsTags(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	task := createTask(t, db, ann.ID, "report")
	ctx := context.Background()

	tags, err := NewTagRepository(db, "blue").Resolve(ctx, ann.ID, []string{"work"})
	require.NoError(t, err)
	require.NoError(t, NewLinkRepository(db).Replace(ctx, task.ID, []string{tags["work"].ID}))

	repo := NewTaskRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, bob.ID, task.ID), model.ErrTaskNotFound)
	require.NoError(t, repo.Delete(ctx, ann.ID, task.ID))
	require.ErrorIs(t, repo.Delete(ctx, ann.ID, task.ID), model.ErrTaskNotFound)

	require.Zero(t, countRows(t, db, &model.Task{}))
	require.Zero(t, countRows(t, db, &model.TaskTag{}))
	require.Equal(t, int64(1), countRows(t, db, &model.Tag{}))
}
