package dto

import "cinelibri/internal/microservices/http-api/models"

type FollowRequest struct {
	TargetID string `json:"targetId" binding:"required"`
}

type NetworkResponse struct {
	Followers []models.UserSummary `json:"followers"`
	Following []models.UserSummary `json:"following"`
}

// UpdateProfileRequest: omitted fields keep their current value
type UpdateProfileRequest struct {
	Username  *string `json:"username" binding:"omitempty,min=3,max=50"`
	Bio       *string `json:"bio" binding:"omitempty,max=500"`
	AvatarURL *string `json:"avatar_url" binding:"omitempty,max=2048"`
}

// ProfileResponse is a user's public card. Email is only filled for the owner and
// IsFollowing only for other viewers.
type ProfileResponse struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email,omitempty"`
	Bio            string `json:"bio"`
	AvatarURL      string `json:"avatar_url"`
	FollowersCount int64  `json:"followers_count"`
	FollowingCount int64  `json:"following_count"`
	IsFollowing    *bool  `json:"is_following,omitempty"`
}
