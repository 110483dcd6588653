package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socialnet/internal/model"
)

type PublicationRepository struct {
	db *gorm.DB
}

func NewPublicationRepository(db *gorm.DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

func (r *PublicationRepository) Create(ctx context.Context, pub *model.Publication) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(pub).Error; err != nil {
		return fmt.Errorf("create publication failed: %w", err)
	}
	return nil
}

func (r *PublicationRepository) GetByID(ctx context.Context, id uint) (*model.Publication, error) {
	var pub model.Publication
	err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select(model.PublicUserColumns) }).
		First(&pub, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get publication failed: %w", err)
	}
	return &pub, nil
}

func (r *PublicationRepository) DeleteByIDAndUserID(ctx context.Context, id, userID uint) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Publication{})
	if result.Error != nil {
		return false, fmt.Errorf("delete publication failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// UpdateFile sets the media file and returns the one it replaced.
func (r *PublicationRepository) UpdateFile(ctx context.Context, id uint, file string) (string, error) {
	var previous string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pub model.Publication
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id", "file").First(&pub, id).Error; err != nil {
			return err
		}
		previous = pub.File
		return tx.Model(&model.Publication{}).Where("id = ?", id).Update("file", file).Error
	})
	if err != nil {
		return "", fmt.Errorf("update publication file failed: %w", err)
	}
	return previous, nil
}

// ListByUserIDs pages through publications of the given authors, newest first.
func (r *PublicationRepository) ListByUserIDs(ctx context.Context, userIDs []uint, offset, limit int) ([]model.Publication, int64, error) {
	if len(userIDs) == 0 {
		return nil, 0, nil
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Publication{}).Where("user_id IN ?", userIDs).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count publications failed: %w", err)
	}

	var list []model.Publication
	if err := r.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Select(model.PublicUserColumns) }).
		Where("user_id IN ?", userIDs).
		Order("created_at DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list publications failed: %w", err)
	}
	return list, total, nil
}

func (r *PublicationRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Publication{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count publications failed: %w", err)
	}
	return count, nil
}
