package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// FeedRepository reads activities decorated with like and comment counters as seen
// by a viewer.
type FeedRepository interface {
	ListByUser(ctx context.Context, viewerID, userID string, limit, offset int) ([]models.FeedEntry, error)
	ListNetwork(ctx context.Context, viewerID string, limit, offset int) ([]models.FeedEntry, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

const feedColumns = `a.id, a.user_id, a.username, a.avatar_url, a.activity_type,
	a.content_title, a.content_poster, a.content_api_id, a.content_type,
	a.rating, a.review_text, a.created_at,
	(SELECT COUNT(*) FROM activity_likes l WHERE l.activity_id = a.id) AS like_count,
	EXISTS (SELECT 1 FROM activity_likes l WHERE l.activity_id = a.id AND l.user_id = ?) AS is_liked,
	(SELECT COUNT(*) FROM activity_comments c WHERE c.activity_id = a.id) AS comment_count`

func (r *feedRepository) base(ctx context.Context, viewerID string) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("activities AS a").
		Select(feedColumns, viewerID)
}

// ListByUser returns a single user's entries.
func (r *feedRepository) ListByUser(ctx context.Context, viewerID, userID string, limit, offset int) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	if err := r.base(ctx, viewerID).
		Where("a.user_id = ?", userID).
		Order("a.created_at DESC").
		Order("a.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("list user feed: %w", err)
	}
	return entries, nil
}

// ListNetwork returns the viewer's own entries and those of everyone the viewer follows.
func (r *feedRepository) ListNetwork(ctx context.Context, viewerID string, limit, offset int) ([]models.FeedEntry, error) {
	var entries []models.FeedEntry
	if err := r.base(ctx, viewerID).
		Where("(a.user_id = ? OR a.user_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?))", viewerID, viewerID).
		Order("a.created_at DESC").
		Order("a.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&entries).Error; err != nil {
		return nil, fmt.Errorf("list network feed: %w", err)
	}
	return entries, nil
}
