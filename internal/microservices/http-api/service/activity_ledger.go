package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cinelibri/internal/logger"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ActivityRecord describes a rate or review event to be reflected in the feed.
type ActivityRecord struct {
	ActorID     string
	Kind        string
	Title       string
	PosterURL   string
	APIID       string
	ContentType string
	Rating      *int
	ReviewText  *string
}

// ActivityLedger keeps at most one rate/review feed entry per user and catalog item.
type ActivityLedger interface {
	// RecordOrUpdate returns the written entry, or nil when the actor no longer exists.
	RecordOrUpdate(ctx context.Context, rec ActivityRecord) (*models.Activity, error)
	// Remove deletes the entry for the item with its likes and comments.
	Remove(ctx context.Context, actorID, apiID, contentType string) (int64, error)
}

type activityLedger struct {
	activities repository.ActivityRepository
	users      repository.UserRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewActivityLedger(activities repository.ActivityRepository, users repository.UserRepository, log *zap.Logger) ActivityLedger {
	return &activityLedger{
		activities: activities,
		users:      users,
		logger:     logger.OrNop(log),
		now:        time.Now,
	}
}

func (l *activityLedger) RecordOrUpdate(ctx context.Context, rec ActivityRecord) (*models.Activity, error) {
	if !models.IsDedupActivityType(rec.Kind) {
		return nil, fmt.Errorf("%w: unsupported activity type %q", ErrInvalidInput, rec.Kind)
	}

	actor, err := l.users.FindByID(ctx, rec.ActorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.logger.Warn("activity actor not found, skipping", zap.String("user_id", rec.ActorID))
			return nil, nil
		}
		return nil, fmt.Errorf("load actor: %w", err)
	}

	existing, err := l.activities.FindDedup(ctx, rec.ActorID, rec.APIID, rec.ContentType)
	if err == nil {
		return l.refresh(ctx, existing, rec)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find activity: %w", err)
	}

	entry := &models.Activity{
		UserID:        actor.ID,
		Username:      actor.Username,
		AvatarURL:     actor.AvatarURL,
		ActivityType:  rec.Kind,
		ContentTitle:  rec.Title,
		ContentPoster: rec.PosterURL,
		ContentAPIID:  rec.APIID,
		ContentType:   rec.ContentType,
		Rating:        rec.Rating,
		ReviewText:    rec.ReviewText,
		CreatedAt:     l.now(),
	}
	if err := l.activities.Create(ctx, entry); err != nil {
		if !errors.Is(err, repository.ErrDuplicate) {
			return nil, err
		}
		// a concurrent writer inserted first; update theirs instead
		existing, err := l.activities.FindDedup(ctx, rec.ActorID, rec.APIID, rec.ContentType)
		if err != nil {
			return nil, fmt.Errorf("find activity after conflict: %w", err)
		}
		return l.refresh(ctx, existing, rec)
	}
	return entry, nil
}

func (l *activityLedger) refresh(ctx context.Context, entry *models.Activity, rec ActivityRecord) (*models.Activity, error) {
	at := l.now()
	if err := l.activities.Refresh(ctx, entry.ID, rec.Kind, rec.Rating, rec.ReviewText, at); err != nil {
		return nil, err
	}
	entry.ActivityType = rec.Kind
	entry.Rating = rec.Rating
	entry.ReviewText = rec.ReviewText
	entry.CreatedAt = at
	return entry, nil
}

func (l *activityLedger) Remove(ctx context.Context, actorID, apiID, contentType string) (int64, error) {
	return l.activities.DeleteDedup(ctx, actorID, apiID, contentType)
}
