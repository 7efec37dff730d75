package repository

import (
	"context"
	"fmt"
	"time"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type LibraryRepository interface {
	Create(ctx context.Context, item *models.LibraryItem) error
	Save(ctx context.Context, item *models.LibraryItem) error
	GetOwned(ctx context.Context, userID string, itemID int64) (*models.LibraryItem, error)
	GetByContent(ctx context.Context, userID, apiID, contentType string) (*models.LibraryItem, error)
	UpdateStatus(ctx context.Context, userID string, itemID int64, status string, now time.Time) error
	ClearReview(ctx context.Context, userID string, itemID int64) error
	Delete(ctx context.Context, userID string, itemID int64) error
	List(ctx context.Context, userID string) ([]models.LibraryItem, error)
	ListReviews(ctx context.Context, apiID, contentType string) ([]models.ReviewView, error)
	RatingSummary(ctx context.Context, apiID, contentType string) (*models.RatingSummary, error)
}

type libraryRepository struct {
	db *gorm.DB
}

func NewLibraryRepository(db *gorm.DB) LibraryRepository {
	return &libraryRepository{db: db}
}

// Create inserts a new row. A second row for the same (user, api_id, content_type)
// yields ErrDuplicate.
func (r *libraryRepository) Create(ctx context.Context, item *models.LibraryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("add to library: %w", err)
	}
	return nil
}

// Save writes every column, nil rating and review included.
func (r *libraryRepository) Save(ctx context.Context, item *models.LibraryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save library item: %w", err)
	}
	return nil
}

func (r *libraryRepository) GetOwned(ctx context.Context, userID string, itemID int64) (*models.LibraryItem, error) {
	var item models.LibraryItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *libraryRepository) GetByContent(ctx context.Context, userID, apiID, contentType string) (*models.LibraryItem, error) {
	var item models.LibraryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND api_id = ? AND content_type = ?", userID, apiID, contentType).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateStatus sets the status of an owned row. Moving to watched stamps watched_at
// only when it is still unset.
func (r *libraryRepository) UpdateStatus(ctx context.Context, userID string, itemID int64, status string, now time.Time) error {
	updates := map[string]interface{}{"status": status}
	if status == models.StatusWatched {
		updates["watched_at"] = gorm.Expr("COALESCE(watched_at, ?)", now)
	}
	res := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update library status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *libraryRepository) ClearReview(ctx context.Context, userID string, itemID int64) error {
	res := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]interface{}{"rating": nil, "review": nil})
	if res.Error != nil {
		return fmt.Errorf("clear review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *libraryRepository) Delete(ctx context.Context, userID string, itemID int64) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&models.LibraryItem{})
	if res.Error != nil {
		return fmt.Errorf("remove from library: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *libraryRepository) List(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	var items []models.LibraryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("added_at DESC").
		Order("id DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("list library: %w", err)
	}
	return items, nil
}

// ListReviews returns every row for the item that carries a rating or a non-empty
// review, most recently watched first.
func (r *libraryRepository) ListReviews(ctx context.Context, apiID, contentType string) ([]models.ReviewView, error) {
	var reviews []models.ReviewView
	if err := r.db.WithContext(ctx).
		Table("library_items AS l").
		Select("l.user_id, u.username, u.avatar_url, l.rating, l.review, l.watched_at").
		Joins("JOIN users u ON u.id = l.user_id").
		Where("l.api_id = ? AND l.content_type = ?", apiID, contentType).
		Where("((l.review IS NOT NULL AND l.review <> '') OR l.rating IS NOT NULL)").
		Order("l.watched_at DESC").
		Order("l.id DESC").
		Scan(&reviews).Error; err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

func (r *libraryRepository) RatingSummary(ctx context.Context, apiID, contentType string) (*models.RatingSummary, error) {
	var summary models.RatingSummary
	if err := r.db.WithContext(ctx).
		Model(&models.LibraryItem{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(rating) AS total").
		Where("api_id = ? AND content_type = ? AND rating IS NOT NULL", apiID, contentType).
		Scan(&summary).Error; err != nil {
		return nil, fmt.Errorf("rating summary: %w", err)
	}
	return &summary, nil
}
