package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type FollowRepository interface {
	Create(ctx context.Context, followerID, followeeID string) error
	Delete(ctx context.Context, followerID, followeeID string) error
	Exists(ctx context.Context, followerID, followeeID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error)
	ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error)
}

type followRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Create inserts the edge. An existing edge yields ErrDuplicate.
func (r *followRepository) Create(ctx context.Context, followerID, followeeID string) error {
	follow := &models.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := r.db.WithContext(ctx).Create(follow).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create follow: %w", err)
	}
	return nil
}

func (r *followRepository) Delete(ctx context.Context, followerID, followeeID string) error {
	if err := r.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&models.Follow{}).Error; err != nil {
		return fmt.Errorf("delete follow: %w", err)
	}
	return nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followeeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *followRepository) ListFollowers(ctx context.Context, userID string) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.avatar_url").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followee_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("list followers: %w", err)
	}
	return users, nil
}

func (r *followRepository) ListFollowing(ctx context.Context, userID string) ([]models.UserSummary, error) {
	var users []models.UserSummary
	if err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, users.avatar_url").
		Joins("JOIN follows ON follows.followee_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Scan(&users).Error; err != nil {
		return nil, fmt.Errorf("list following: %w", err)
	}
	return users, nil
}
