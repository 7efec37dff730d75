package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinelibri/internal/logger"
	"cinelibri/internal/metrics"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const untitledContent = "a title"

// EngagementService handles likes and comments on feed entries.
type EngagementService interface {
	ToggleLike(ctx context.Context, userID string, activityID int64) (*dto.LikeResponse, error)
	AddComment(ctx context.Context, userID string, activityID int64, text string) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, activityID int64) ([]dto.CommentResponse, error)
}

type engagementService struct {
	activities    repository.ActivityRepository
	likes         repository.LikeRepository
	comments      repository.CommentRepository
	notifications NotificationService
	logger        *zap.Logger
}

func NewEngagementService(
	activities repository.ActivityRepository,
	likes repository.LikeRepository,
	comments repository.CommentRepository,
	notifications NotificationService,
	log *zap.Logger,
) EngagementService {
	return &engagementService{
		activities:    activities,
		likes:         likes,
		comments:      comments,
		notifications: notifications,
		logger:        logger.OrNop(log),
	}
}

// ToggleLike flips the caller's like. Only a newly created like notifies the author.
func (s *engagementService) ToggleLike(ctx context.Context, userID string, activityID int64) (*dto.LikeResponse, error) {
	activity, err := s.getActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	exists, err := s.likes.Exists(ctx, activityID, userID)
	if err != nil {
		return nil, fmt.Errorf("check like: %w", err)
	}

	liked := false
	if exists {
		if _, err := s.likes.Delete(ctx, activityID, userID); err != nil {
			return nil, err
		}
	} else {
		liked = true
		err := s.likes.Create(ctx, activityID, userID)
		switch {
		case err == nil:
			s.notify(ctx, activity, userID, models.NotificationLike, "liked")
		case errors.Is(err, repository.ErrDuplicate):
			// liked concurrently by the same user; already notified
		default:
			return nil, err
		}
	}

	count, err := s.likes.Count(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *engagementService) AddComment(ctx context.Context, userID string, activityID int64, text string) (*dto.CommentResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: comment text is required", ErrInvalidInput)
	}

	activity, err := s.getActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	comment := &models.ActivityComment{
		ActivityID:  activityID,
		UserID:      userID,
		CommentText: text,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.notify(ctx, activity, userID, models.NotificationComment, "commented on")

	// Reload with author data
	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, fmt.Errorf("reload comment: %w", err)
	}
	return dto.FromModelToCommentResponse(created), nil
}

func (s *engagementService) ListComments(ctx context.Context, activityID int64) ([]dto.CommentResponse, error) {
	comments, err := s.comments.ListByActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return out, nil
}

func (s *engagementService) getActivity(ctx context.Context, activityID int64) (*models.Activity, error) {
	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, fmt.Errorf("load activity: %w", err)
	}
	return activity, nil
}

// notify tells the entry's author about an interaction. Failures are logged and counted.
func (s *engagementService) notify(ctx context.Context, activity *models.Activity, actorID, kind, verb string) {
	if activity.UserID == actorID {
		return
	}
	title := strings.TrimSpace(activity.ContentTitle)
	if title == "" {
		title = untitledContent
	}
	activityID := activity.ID
	n := &models.Notification{
		UserID:     activity.UserID,
		ActorID:    actorID,
		Type:       kind,
		Message:    fmt.Sprintf(`%s your post about "%s".`, verb, title),
		ActivityID: &activityID,
	}
	if err := s.notifications.Notify(ctx, n); err != nil {
		s.logger.Error("failed to create notification",
			zap.String("type", kind),
			zap.String("recipient_id", activity.UserID),
			zap.Int64("activity_id", activity.ID),
			zap.Error(err))
		metrics.RecordSideEffectFailure(metrics.EffectNotification)
	}
}
