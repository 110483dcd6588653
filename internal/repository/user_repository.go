package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialnet/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", translate(err))
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by email failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// FindByEmailOrNick returns every user holding the given email or nick.
func (r *UserRepository) FindByEmailOrNick(ctx context.Context, email, nick string) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Where("email = ? OR nick = ?", email, nick).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("query users by email or nick failed: %w", err)
	}
	return users, nil
}

func (r *UserRepository) List(ctx context.Context, offset, limit int) ([]model.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.User{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count users failed: %w", err)
	}

	var users []model.User
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("list users failed: %w", err)
	}
	return users, total, nil
}

func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Model(user).Select("name", "last_name", "nick", "email", "bio", "password").Updates(user).Error; err != nil {
		return fmt.Errorf("update user failed: %w", translate(err))
	}
	return nil
}

// UpdateImage points the user at image and returns the image it replaced. The
// row is locked between the read and the write.
func (r *UserRepository) UpdateImage(ctx context.Context, id uint, image string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "image").First(&user, id).Error; err != nil {
			return err
		}
		previous = user.Image
		return tx.Model(&model.User{}).Where("id = ?", id).Update("image", image).Error
	})
	if err != nil {
		return "", fmt.Errorf("update user image failed: %w", err)
	}
	return previous, nil
}
