package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cinelibri/internal/logger"
	"cinelibri/internal/metrics"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LibraryService interface {
	AddItem(ctx context.Context, userID string, req *dto.AddToLibraryRequest) (*models.LibraryItem, error)
	UpdateStatus(ctx context.Context, userID string, itemID int64, status string) (*models.LibraryItem, error)
	RateOrReview(ctx context.Context, userID string, req *dto.ReviewRequest) (*models.LibraryItem, error)
	DeleteReview(ctx context.Context, userID string, itemID int64) error
	RemoveItem(ctx context.Context, userID string, itemID int64) error
	ListLibrary(ctx context.Context, userID string) ([]models.LibraryItem, error)
}

type libraryService struct {
	repo   repository.LibraryRepository
	ledger ActivityLedger
	logger *zap.Logger
	now    func() time.Time
}

func NewLibraryService(repo repository.LibraryRepository, ledger ActivityLedger, log *zap.Logger) LibraryService {
	return &libraryService{
		repo:   repo,
		ledger: ledger,
		logger: logger.OrNop(log),
		now:    time.Now,
	}
}

func (s *libraryService) AddItem(ctx context.Context, userID string, req *dto.AddToLibraryRequest) (*models.LibraryItem, error) {
	apiID := strings.TrimSpace(req.APIID)
	title := strings.TrimSpace(req.Title)
	if apiID == "" || title == "" || req.ContentType == "" {
		return nil, fmt.Errorf("%w: api_id, title and content_type are required", ErrInvalidInput)
	}
	if !models.ValidContentType(req.ContentType) {
		return nil, fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, req.ContentType)
	}
	status := req.Status
	if status == "" {
		status = models.StatusPlanned
	}
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}

	item := &models.LibraryItem{
		UserID:      userID,
		APIID:       apiID,
		ContentType: req.ContentType,
		Title:       title,
		PosterURL:   strings.TrimSpace(req.PosterURL),
		Status:      status,
	}
	if status == models.StatusWatched {
		now := s.now()
		item.WatchedAt = &now
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateItem
		}
		return nil, err
	}
	return item, nil
}

// UpdateStatus changes an owned item's status. watched_at is stamped on the first
// transition to watched and kept afterwards.
func (s *libraryService) UpdateStatus(ctx context.Context, userID string, itemID int64, status string) (*models.LibraryItem, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
	}
	if err := s.repo.UpdateStatus(ctx, userID, itemID, status, s.now()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return s.getOwned(ctx, userID, itemID)
}

// RateOrReview upserts the caller's rating and review for an item, marks it watched
// and mirrors the change into the activity feed. Feed failures do not fail the call.
func (s *libraryService) RateOrReview(ctx context.Context, userID string, req *dto.ReviewRequest) (*models.LibraryItem, error) {
	apiID := strings.TrimSpace(req.APIID)
	if apiID == "" {
		return nil, fmt.Errorf("%w: api_id is required", ErrInvalidInput)
	}
	if !models.ValidContentType(req.ContentType) {
		return nil, fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, req.ContentType)
	}

	review := normalizeReview(req.Review)
	rating := req.Rating
	if rating != nil && *rating == 0 {
		rating = nil
	}
	if rating != nil && (*rating < 1 || *rating > 10) {
		return nil, fmt.Errorf("%w: rating must be between 1 and 10", ErrInvalidInput)
	}
	if rating == nil && review == nil {
		return nil, fmt.Errorf("%w: review or rating is required", ErrInvalidInput)
	}

	now := s.now()
	apply := func(item *models.LibraryItem) {
		item.Rating = rating
		item.Review = review
		item.Status = models.StatusWatched
		item.WatchedAt = &now
	}

	item, err := s.repo.GetByContent(ctx, userID, apiID, req.ContentType)
	switch {
	case err == nil:
		apply(item)
		if err := s.repo.Save(ctx, item); err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &models.LibraryItem{
			UserID:      userID,
			APIID:       apiID,
			ContentType: req.ContentType,
			Title:       orDefault(req.Title, models.DefaultContentTitle),
			PosterURL:   orDefault(req.PosterURL, models.DefaultContentPoster),
		}
		apply(item)
		if err := s.repo.Create(ctx, item); err != nil {
			if !errors.Is(err, repository.ErrDuplicate) {
				return nil, err
			}
			// created concurrently by the same user; overwrite it
			if item, err = s.repo.GetByContent(ctx, userID, apiID, req.ContentType); err != nil {
				return nil, fmt.Errorf("reload library item: %w", err)
			}
			apply(item)
			if err := s.repo.Save(ctx, item); err != nil {
				return nil, err
			}
		}
	default:
		return nil, fmt.Errorf("load library item: %w", err)
	}

	rec := ActivityRecord{
		ActorID:     userID,
		Kind:        models.ActivityRateContent,
		Title:       item.Title,
		PosterURL:   item.PosterURL,
		APIID:       apiID,
		ContentType: req.ContentType,
		Rating:      rating,
		ReviewText:  review,
	}
	if _, err := s.ledger.RecordOrUpdate(ctx, rec); err != nil {
		s.logger.Error("failed to record activity",
			zap.String("user_id", userID),
			zap.String("api_id", apiID),
			zap.String("content_type", req.ContentType),
			zap.Error(err))
		metrics.RecordSideEffectFailure(metrics.EffectActivityLog)
	}

	return item, nil
}

// DeleteReview clears the rating and review of an owned item and withdraws the
// matching feed entry with its likes and comments. The item stays on the shelf.
func (s *libraryService) DeleteReview(ctx context.Context, userID string, itemID int64) error {
	item, err := s.getOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.ClearReview(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	removed, err := s.ledger.Remove(ctx, userID, item.APIID, item.ContentType)
	if err != nil {
		metrics.RecordSideEffectFailure(metrics.EffectActivityDelete)
		return err
	}
	s.logger.Debug("review deleted",
		zap.String("user_id", userID),
		zap.Int64("library_id", itemID),
		zap.Int64("activities_removed", removed))
	return nil
}

func (s *libraryService) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	if err := s.repo.Delete(ctx, userID, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}

func (s *libraryService) ListLibrary(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	return s.repo.List(ctx, userID)
}

func (s *libraryService) getOwned(ctx context.Context, userID string, itemID int64) (*models.LibraryItem, error) {
	item, err := s.repo.GetOwned(ctx, userID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return item, nil
}

func normalizeReview(review *string) *string {
	if review == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*review)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func orDefault(value, fallback string) string {
	if v := strings.TrimSpace(value); v != "" {
		return v
	}
	return fallback
}
