package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/ehtishamsajjad/tm/internal/model"
)

func TestUniqueTagNames(t *testing.T) {
	require.Equal(t, []string{"work", "home"}, UniqueTagNames([]string{" work", "home", "", "  ", "work "}))
	require.Empty(t, UniqueTagNames(nil))
	// Names are case-sensitive.
	require.Equal(t, []string{"Work", "work"}, UniqueTagNames([]string{"Work", "work"}))
}

func TestTagRepository_ResolveCreatesOnce(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	repo := NewTagRepository(db, "blue")
	ctx := context.Background()

	first, err := repo.Resolve(ctx, user.ID, []string{"work", " home ", "work", ""})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.Equal(t, "blue", first["work"].Color)
	require.Equal(t, "home", first["home"].Name)

	second, err := repo.Resolve(ctx, user.ID, []string{"home", "work"})
	require.NoError(t, err)
	require.Equal(t, first["work"].ID, second["work"].ID)
	require.Equal(t, first["home"].ID, second["home"].ID)
	require.Equal(t, int64(2), countRows(t, db, &model.Tag{}))
}

func TestTagRepository_ResolveEmpty(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")

	got, err := NewTagRepository(db, "blue").Resolve(context.Background(), user.ID, []string{" ", ""})
	require.NoError(t, err)
	require.Empty(t, got)
	require.Zero(t, countRows(t, db, &model.Tag{}))
}

func TestTagRepository_ResolveIsPerUser(t *testing.T) {
	db := setupDB(t)
	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")
	repo := NewTagRepository(db, "blue")
	ctx := context.Background()

	a, err := repo.Resolve(ctx, ann.ID, []string{"work"})
	require.NoError(t, err)
	b, err := repo.Resolve(ctx, bob.ID, []string{"work"})
	require.NoError(t, err)

	require.NotEqual(t, a["work"].ID, b["work"].ID)
	require.Equal(t, bob.ID, b["work"].UserID)

	tags, err := repo.ListByUser(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, tags, 1)
}

func TestTagRepository_ResolveConcurrent(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	repo := NewTagRepository(db, "blue")

	const workers = 8
	ids := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tags, err := repo.Resolve(context.Background(), user.ID, []string{"urgent"})
			errs[i] = err
			if err == nil {
				ids[i] = tags["urgent"].ID
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, ids[0], ids[i])
	}
	require.Equal(t, int64(1), countRows(t, db, &model.Tag{}))
}

func TestTagRepository_ResolveInsideTransaction(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	repo := NewTagRepository(db, "blue")

	err := NewTransactor(db).WithinTx(context.Background(), func(ctx context.Context) error {
		_, err := repo.Resolve(ctx, user.ID, []string{"a", "b"})
		return err
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), countRows(t, db, &model.Tag{}))
}

func TestTagRepository_ListByUserSorted(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")
	repo := NewTagRepository(db, "blue")
	ctx := context.Background()

	empty, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	_, err = repo.Resolve(ctx, user.ID, []string{"zeta", "alpha", "mid"})
	require.NoError(t, err)

	tags, err := repo.ListByUser(ctx, user.ID)
	require.NoError(t, err)
	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.Name)
	}
	require.Equal(t, []string{"alpha", "mid", "zeta"}, names)
}

func TestIsUniqueViolation(t *testing.T) {
	db := setupDB(t)
	user := createUser(t, db, "ann")

	tag := model.Tag{ID: uuid.NewString(), UserID: user.ID, Name: "dup", Color: "blue"}
	require.NoError(t, db.Create(&tag).Error)

	dup := model.Tag{ID: uuid.NewString(), UserID: user.ID, Name: "dup", Color: "red"}
	err := db.Create(&dup).Error
	require.Error(t, err)
	require.True(t, isUniqueViolation(err))

	require.False(t, isUniqueViolation(model.ErrValidation))
	require.False(t, isUniqueViolation(nil))
}
