package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ehtishamsajjad/tm/internal/model"
)

// UserRepository handles CRUD for users.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user with a generated id.
func (r *UserRepository) Create(ctx context.Context, firstName, lastName, username string) (*model.User, error) {
	now := time.Now().UTC()
	user := model.User{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := conn(ctx, r.db).Create(&user).Error; err != nil {
		return nil, storageErr("create user", err)
	}
	return &user, nil
}

// UpsertFromTelegram finds or creates a user based on TelegramID and updates basic profile info.
func (r *UserRepository) UpsertFromTelegram(ctx context.Context, telegramID int64, firstName, lastName, username string) (*model.User, error) {
	var user model.User
	db := conn(ctx, r.db)
	err := db.Where("telegram_id = ?", telegramID).First(&user).Error
	switch {
	case err == nil:
		updates := map[string]interface{}{
			"first_name": firstName,
			"last_name":  lastName,
			"username":   username,
		}
		if err := db.Model(&user).Updates(updates).Error; err != nil {
			return nil, storageErr("update user", err)
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		now := time.Now().UTC()
		user = model.User{
			ID:         uuid.NewString(),
			TelegramID: &telegramID,
			FirstName:  firstName,
			LastName:   lastName,
			Username:   username,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, storageErr("create user", err)
		}
		return &user, nil
	default:
		return nil, storageErr("find user", err)
	}
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := conn(ctx, r.db).Where("id = ?", id).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, model.ErrUserNotFound
	case err != nil:
		return nil, storageErr("find user", err)
	}
	return &user, nil
}

// ListTelegramUsers returns every user reachable through the chat front-end.
func (r *UserRepository) ListTelegramUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := conn(ctx, r.db).Where("telegram_id IS NOT NULL").Find(&users).Error; err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}
