package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

// CustomListService manages user-curated lists of catalog items.
type CustomListService interface {
	CreateList(ctx context.Context, userID, name string) (*models.CustomList, error)
	ListLists(ctx context.Context, ownerID, checkAPIID, checkType string) ([]models.CustomListView, error)
	AddToList(ctx context.Context, userID string, req *dto.AddToListRequest) (*models.CustomListItem, error)
	ListItems(ctx context.Context, listID int64) ([]models.CustomListItem, error)
	DeleteList(ctx context.Context, userID string, listID int64) error
	RemoveFromList(ctx context.Context, userID string, listID int64, apiID string) error
}

type customListService struct {
	repo repository.CustomListRepository
}

func NewCustomListService(repo repository.CustomListRepository) CustomListService {
	return &customListService{repo: repo}
}

func (s *customListService) CreateList(ctx context.Context, userID, name string) (*models.CustomList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: list name is required", ErrInvalidInput)
	}
	list := &models.CustomList{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *customListService) ListLists(ctx context.Context, ownerID, checkAPIID, checkType string) ([]models.CustomListView, error) {
	return s.repo.ListByUser(ctx, ownerID, strings.TrimSpace(checkAPIID), checkType)
}

func (s *customListService) AddToList(ctx context.Context, userID string, req *dto.AddToListRequest) (*models.CustomListItem, error) {
	apiID := strings.TrimSpace(req.APIID)
	if apiID == "" {
		return nil, fmt.Errorf("%w: api_id is required", ErrInvalidInput)
	}
	if !models.ValidContentType(req.ContentType) {
		return nil, fmt.Errorf("%w: unknown content type %q", ErrInvalidInput, req.ContentType)
	}
	if err := s.checkOwner(ctx, userID, req.ListID); err != nil {
		return nil, err
	}

	item := &models.CustomListItem{
		ListID:      req.ListID,
		APIID:       apiID,
		ContentType: req.ContentType,
		Title:       orDefault(req.Title, models.DefaultContentTitle),
		PosterURL:   orDefault(req.PosterURL, models.DefaultContentPoster),
	}
	if err := s.repo.AddItem(ctx, item); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateItem
		}
		return nil, err
	}
	return item, nil
}

func (s *customListService) ListItems(ctx context.Context, listID int64) ([]models.CustomListItem, error) {
	return s.repo.ListItems(ctx, listID)
}

func (s *customListService) DeleteList(ctx context.Context, userID string, listID int64) error {
	if err := s.repo.Delete(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}

func (s *customListService) RemoveFromList(ctx context.Context, userID string, listID int64, apiID string) error {
	if err := s.checkOwner(ctx, userID, listID); err != nil {
		return err
	}
	if err := s.repo.RemoveItem(ctx, listID, apiID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}

func (s *customListService) checkOwner(ctx context.Context, userID string, listID int64) error {
	if _, err := s.repo.GetOwned(ctx, userID, listID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return err
	}
	return nil
}
