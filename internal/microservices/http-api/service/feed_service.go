package service

import (
	"context"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/repository"
)

const (
	DefaultFeedPageSize = 10
	MaxFeedPageSize     = 100
)

type FeedService interface {
	// GetFeed returns targetUserID's entries when set, otherwise the viewer's and
	// their followees' entries.
	GetFeed(ctx context.Context, viewerID, targetUserID string, page, pageSize int) (*dto.FeedResponse, error)
}

type feedService struct {
	repo repository.FeedRepository
}

func NewFeedService(repo repository.FeedRepository) FeedService {
	return &feedService{repo: repo}
}

func (s *feedService) GetFeed(ctx context.Context, viewerID, targetUserID string, page, pageSize int) (*dto.FeedResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	offset := (page - 1) * pageSize

	if targetUserID != "" {
		entries, err := s.repo.ListByUser(ctx, viewerID, targetUserID, pageSize, offset)
		if err != nil {
			return nil, err
		}
		return dto.NewFeedResponse(entries, page, pageSize), nil
	}

	entries, err := s.repo.ListNetwork(ctx, viewerID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	return dto.NewFeedResponse(entries, page, pageSize), nil
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultFeedPageSize
	}
	if pageSize > MaxFeedPageSize {
		pageSize = MaxFeedPageSize
	}
	return page, pageSize
}
