package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Create(ctx context.Context, activityID int64, userID string) error
	Delete(ctx context.Context, activityID int64, userID string) (bool, error)
	Exists(ctx context.Context, activityID int64, userID string) (bool, error)
	Count(ctx context.Context, activityID int64) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Create records the like. A like that already exists yields ErrDuplicate.
func (r *likeRepository) Create(ctx context.Context, activityID int64, userID string) error {
	like := &models.ActivityLike{ActivityID: activityID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create like: %w", err)
	}
	return nil
}

// Delete reports whether a like was removed.
func (r *likeRepository) Delete(ctx context.Context, activityID int64, userID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Delete(&models.ActivityLike{})
	if res.Error != nil {
		return false, fmt.Errorf("delete like: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *likeRepository) Exists(ctx context.Context, activityID int64, userID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityLike{}).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, activityID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityLike{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
