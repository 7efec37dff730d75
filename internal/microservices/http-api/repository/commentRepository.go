package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *models.ActivityComment) error
	GetByID(ctx context.Context, commentID int64) (*models.ActivityComment, error)
	ListByActivity(ctx context.Context, activityID int64) ([]models.ActivityComment, error)
	CountByActivity(ctx context.Context, activityID int64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.ActivityComment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("create comment: %w", err)
	}
	return nil
}

// GetByID retrieves a comment with its author
func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.ActivityComment, error) {
	var comment models.ActivityComment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByActivity returns all comments on an entry, newest first
func (r *commentRepository) ListByActivity(ctx context.Context, activityID int64) ([]models.ActivityComment, error) {
	var comments []models.ActivityComment
	err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Preload("User").
		Order("created_at DESC").
		Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *commentRepository) CountByActivity(ctx context.Context, activityID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ActivityComment{}).
		Where("activity_id = ?", activityID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
