package repository

import (
	"context"
	"fmt"
	"time"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// ActivityRepository stores feed entries. Methods named Dedup act on the single
// rate/review entry a user may hold per catalog item.
type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id int64) (*models.Activity, error)
	FindDedup(ctx context.Context, userID, apiID, contentType string) (*models.Activity, error)
	Refresh(ctx context.Context, id int64, kind string, rating *int, reviewText *string, at time.Time) error
	CountDedup(ctx context.Context, userID, apiID, contentType string) (int64, error)
	DeleteDedup(ctx context.Context, userID, apiID, contentType string) (int64, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func dedupScope(userID, apiID, contentType string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND content_api_id = ? AND content_type = ? AND activity_type IN ?",
			userID, apiID, contentType, models.DedupActivityTypes)
	}
}

// Create inserts a new entry. Losing a race on ux_activity_dedup yields ErrDuplicate.
func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create activity: %w", err)
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

func (r *activityRepository) FindDedup(ctx context.Context, userID, apiID, contentType string) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).
		Scopes(dedupScope(userID, apiID, contentType)).
		Order("id ASC").
		First(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// Refresh overwrites the mutable fields of an entry and moves it to the top of the feed.
func (r *activityRepository) Refresh(ctx context.Context, id int64, kind string, rating *int, reviewText *string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"activity_type": kind,
			"rating":        nullable(rating),
			"review_text":   nullable(reviewText),
			"created_at":    at,
		})
	if res.Error != nil {
		return fmt.Errorf("refresh activity: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *activityRepository) CountDedup(ctx context.Context, userID, apiID, contentType string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Activity{}).
		Scopes(dedupScope(userID, apiID, contentType)).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteDedup removes the rate/review entries for the item together with their likes
// and comments. Notifications that pointed at them are kept but detached.
func (r *activityRepository) DeleteDedup(ctx context.Context, userID, apiID, contentType string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Model(&models.Activity{}).
			Scopes(dedupScope(userID, apiID, contentType)).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("activity_id IN ?", ids).Delete(&models.ActivityLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id IN ?", ids).Delete(&models.ActivityComment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Notification{}).
			Where("activity_id IN ?", ids).
			Update("activity_id", nil).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Activity{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete activities: %w", err)
	}
	return deleted, nil
}

func nullable[T any](p *T) interface{} {
	if p == nil {
		return nil
	}
	return *p
}
