package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"socialnet/internal/model"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(ctx context.Context, follow *model.Follow) error {
	if err := r.db.WithContext(ctx).Omit("FollowingUser", "FollowedUser").Create(follow).Error; err != nil {
		return fmt.Errorf("create follow failed: %w", translate(err))
	}
	return nil
}

func (r *FollowRepository) Get(ctx context.Context, followingID, followedID uint) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.WithContext(ctx).
		Where("following_user = ? AND followed_user = ?", followingID, followedID).
		First(&follow).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get follow failed: %w", err)
	}
	return &follow, nil
}

// Delete removes the edge and reports whether one existed.
func (r *FollowRepository) Delete(ctx context.Context, followingID, followedID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("following_user = ? AND followed_user = ?", followingID, followedID).
		Delete(&model.Follow{})
	if result.Error != nil {
		return false, fmt.Errorf("delete follow failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *FollowRepository) ListFollowing(ctx context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error) {
	return r.listBy(ctx, "following_user", userID, offset, limit)
}

// ListFollowers filters on followed_user, the mirror of ListFollowing.
func (r *FollowRepository) ListFollowers(ctx context.Context, userID uint, offset, limit int) ([]model.Follow, int64, error) {
	return r.listBy(ctx, "followed_user", userID, offset, limit)
}

func (r *FollowRepository) listBy(ctx context.Context, column string, userID uint, offset, limit int) ([]model.Follow, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).Where(column+" = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count follows failed: %w", err)
	}

	publicColumns := func(db *gorm.DB) *gorm.DB {
		return db.Select(model.PublicUserColumns)
	}

	var follows []model.Follow
	if err := r.db.WithContext(ctx).
		Preload("FollowingUser", publicColumns).
		Preload("FollowedUser", publicColumns).
		Where(column+" = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&follows).Error; err != nil {
		return nil, 0, fmt.Errorf("list follows failed: %w", err)
	}
	return follows, total, nil
}

func (r *FollowRepository) FollowingIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("following_user = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Pluck("followed_user", &ids).Error; err != nil {
		return nil, fmt.Errorf("list following ids failed: %w", err)
	}
	return ids, nil
}

func (r *FollowRepository) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followed_user = ?", userID).
		Order("created_at ASC").Order("id ASC").
		Pluck("following_user", &ids).Error; err != nil {
		return nil, fmt.Errorf("list follower ids failed: %w", err)
	}
	return ids, nil
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("following_user = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count following failed: %w", err)
	}
	return count, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Follow{}).Where("followed_user = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count followers failed: %w", err)
	}
	return count, nil
}
