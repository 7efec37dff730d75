package dto

import (
	"time"

	"cinelibri/internal/microservices/http-api/models"
)

// LikeRequest toggles the caller's like on a feed entry
type LikeRequest struct {
	ActivityID int64 `json:"activityId" binding:"required"`
}

type LikeResponse struct {
	Liked     bool  `json:"liked"`
	LikeCount int64 `json:"like_count"`
}

// FeedEntryResponse is one feed entry as seen by the requesting user
type FeedEntryResponse struct {
	ID            int64     `json:"id"`
	UserID        string    `json:"user_id"`
	Username      string    `json:"username"`
	AvatarURL     string    `json:"avatar_url"`
	ActivityType  string    `json:"activity_type"`
	ContentTitle  string    `json:"content_title"`
	ContentPoster string    `json:"content_poster"`
	ContentAPIID  string    `json:"content_api_id"`
	ContentType   string    `json:"content_type"`
	Rating        *int      `json:"rating"`
	ReviewText    *string   `json:"review_text"`
	CreatedAt     time.Time `json:"created_at"`
	LikeCount     int64     `json:"like_count"`
	IsLiked       bool      `json:"is_liked"`
	CommentCount  int64     `json:"comment_count"`
}

type FeedResponse struct {
	Data     []FeedEntryResponse `json:"data"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

func FromFeedEntry(e *models.FeedEntry) FeedEntryResponse {
	return FeedEntryResponse{
		ID:            e.ID,
		UserID:        e.UserID,
		Username:      e.Username,
		AvatarURL:     e.AvatarURL,
		ActivityType:  e.ActivityType,
		ContentTitle:  e.ContentTitle,
		ContentPoster: e.ContentPoster,
		ContentAPIID:  e.ContentAPIID,
		ContentType:   e.ContentType,
		Rating:        e.Rating,
		ReviewText:    e.ReviewText,
		CreatedAt:     e.CreatedAt,
		LikeCount:     e.LikeCount,
		IsLiked:       e.IsLiked,
		CommentCount:  e.CommentCount,
	}
}

func NewFeedResponse(entries []models.FeedEntry, page, pageSize int) *FeedResponse {
	data := make([]FeedEntryResponse, 0, len(entries))
	for i := range entries {
		data = append(data, FromFeedEntry(&entries[i]))
	}
	return &FeedResponse{Data: data, Page: page, PageSize: pageSize}
}
