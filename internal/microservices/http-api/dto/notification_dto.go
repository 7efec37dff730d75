package dto

import (
	"time"

	"cinelibri/internal/microservices/http-api/models"
)

type NotificationResponse struct {
	ID          int64     `json:"id"`
	Type        string    `json:"type"`
	Message     string    `json:"message"`
	ActivityID  *int64    `json:"activity_id"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	ActorID     string    `json:"actor_id"`
	ActorName   string    `json:"actor_name"`
	ActorAvatar string    `json:"actor_avatar"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

func FromModelToNotificationResponse(n *models.Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		Message:    n.Message,
		ActivityID: n.ActivityID,
		IsRead:     n.IsRead,
		CreatedAt:  n.CreatedAt,
		ActorID:    n.ActorID,
	}
	if n.Actor != nil {
		resp.ActorName = n.Actor.Username
		resp.ActorAvatar = n.Actor.AvatarURL
	}
	return resp
}
