package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
)

// TagRepository resolves and lists per-user tags.
type TagRepository struct {
	db           *gorm.DB
	defaultColor string
	now          func() time.Time
}

// NewTagRepository returns a repository that creates missing tags with defaultColor.
func NewTagRepository(db *gorm.DB, defaultColor string) *TagRepository {
	return &TagRepository{db: db, defaultColor: defaultColor, now: time.Now}
}

// Resolve maps every distinct, non-blank name to the user's tag of that name,
// creating tags that do not exist yet. Safe to call concurrently for the same
// user and names: the (user_id, name) unique index decides the winner and the
// loser reuses the winning row.
func (r *TagRepository) Resolve(ctx context.Context, userID string, names []string) (map[string]model.Tag, error) {
	resolved := make(map[string]model.Tag)
	for _, name := range UniqueTagNames(names) {
		tag, err := r.getOrCreate(ctx, userID, name)
		if err != nil {
			return nil, err
		}
		resolved[name] = *tag
	}
	return resolved, nil
}

func (r *TagRepository) getOrCreate(ctx context.Context, userID, name string) (*model.Tag, error) {
	db := conn(ctx, r.db)

	tag, err := findTagByName(db, userID, name)
	switch {
	case err == nil:
		return tag, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storageErr("find tag", err)
	}

	now := r.now().UTC()
	tag = &model.Tag{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Color:     r.defaultColor,
		CreatedAt: now,
		UpdatedAt: now,
	}
	// Savepoint keeps the caller's transaction usable if the insert loses a race.
	err = db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(tag).Error
	})
	switch {
	case err == nil:
		return tag, nil
	case isUniqueViolation(err):
		existing, err := findTagByName(db, userID, name)
		if err != nil {
			return nil, storageErr("reread tag", err)
		}
		return existing, nil
	default:
		return nil, storageErr("create tag", err)
	}
}

func findTagByName(db *gorm.DB, userID, name string) (*model.Tag, error) {
	var tag model.Tag
	if err := db.Where("user_id = ? AND name = ?", userID, name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *TagRepository) ListByUser(ctx context.Context, userID string) ([]model.Tag, error) {
	tags := []model.Tag{}
	if err := conn(ctx, r.db).Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, storageErr("list tags", err)
	}
	return tags, nil
}

// UniqueTagNames trims names, drops blanks and duplicates, keeping first-seen order.
func UniqueTagNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
