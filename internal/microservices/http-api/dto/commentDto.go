package dto

import (
	"time"

	"cinelibri/internal/microservices/http-api/models"
)

// CreateCommentDTO for commenting on a feed entry. Blank text is rejected by the service.
type CreateCommentDTO struct {
	ActivityID int64  `json:"activityId" binding:"required"`
	Text       string `json:"text" binding:"max=5000"`
}

// CommentResponse for returning a comment with its author
type CommentResponse struct {
	ID          int64     `json:"id"`
	ActivityID  int64     `json:"activity_id"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	AvatarURL   string    `json:"avatar_url"`
	CommentText string    `json:"comment_text"`
	CreatedAt   time.Time `json:"created_at"`
}

// FromModelToCommentResponse converts an ActivityComment model to CommentResponse DTO
func FromModelToCommentResponse(comment *models.ActivityComment) *CommentResponse {
	resp := &CommentResponse{
		ID:          comment.ID,
		ActivityID:  comment.ActivityID,
		UserID:      comment.UserID,
		CommentText: comment.CommentText,
		CreatedAt:   comment.CreatedAt,
	}
	if comment.User != nil {
		resp.Username = comment.User.Username
		resp.AvatarURL = comment.User.AvatarURL
	}
	return resp
}
