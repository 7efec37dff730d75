package service

import (
	"context"

	"cinelibri/internal/metrics"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"
)

const (
	defaultNotificationLimit = 20
	MaxNotificationLimit     = 100
)

type NotificationService interface {
	// Notify stores n unless the actor is also the recipient.
	Notify(ctx context.Context, n *models.Notification) error
	ListRecent(ctx context.Context, userID string, limit int) (*dto.NotificationListResponse, error)
	MarkAllAsRead(ctx context.Context, userID string) error
}

type notificationService struct {
	repo repository.NotificationRepository
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo}
}

func (s *notificationService) Notify(ctx context.Context, n *models.Notification) error {
	if n.UserID == n.ActorID {
		return nil
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}
	metrics.RecordNotification(n.Type)
	return nil
}

// ListRecent returns the latest notifications and the total number still unread.
func (s *notificationService) ListRecent(ctx context.Context, userID string, limit int) (*dto.NotificationListResponse, error) {
	switch {
	case limit <= 0:
		limit = defaultNotificationLimit
	case limit > MaxNotificationLimit:
		limit = MaxNotificationLimit
	}
	notifications, err := s.repo.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, dto.FromModelToNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{Notifications: out, UnreadCount: unread}, nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
