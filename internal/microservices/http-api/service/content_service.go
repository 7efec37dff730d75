package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"cinelibri/internal/catalog"
	"cinelibri/internal/logger"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	popularLimit      = 21
	defaultBookQuery  = "subject:general"
	popularBooksQuery = "subject:fiction"
)

// SearchQuery filters a catalog search. Zero numeric fields are ignored.
type SearchQuery struct {
	Query     string
	Type      string // all, movie or book
	MinYear   int
	MaxYear   int
	MinRating float64
}

type ContentService interface {
	Search(ctx context.Context, q SearchQuery) (*dto.SearchResponse, error)
	Popular(ctx context.Context) (*dto.PopularResponse, error)
	Details(ctx context.Context, viewerID, kind, id string) (*dto.ContentDetailsResponse, error)
}

type contentService struct {
	provider catalog.Provider
	library  repository.LibraryRepository
	logger   *zap.Logger
}

func NewContentService(provider catalog.Provider, library repository.LibraryRepository, log *zap.Logger) ContentService {
	return &contentService{
		provider: provider,
		library:  library,
		logger:   logger.OrNop(log),
	}
}

// Search queries both catalogs concurrently. A failing catalog contributes an empty list.
func (s *contentService) Search(ctx context.Context, q SearchQuery) (*dto.SearchResponse, error) {
	kind := q.Type
	if kind == "" {
		kind = "all"
	}
	if kind != "all" && kind != catalog.KindMovie && kind != catalog.KindBook {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, q.Type)
	}
	query := strings.TrimSpace(q.Query)

	resp := &dto.SearchResponse{Movies: []catalog.Item{}, Books: []catalog.Item{}}
	g, gctx := errgroup.WithContext(ctx)

	if kind == "all" || kind == catalog.KindMovie {
		g.Go(func() error {
			var (
				movies []catalog.Item
				err    error
			)
			if query != "" {
				movies, err = s.provider.SearchMovies(gctx, query)
			} else {
				movies, err = s.provider.DiscoverMovies(gctx, catalog.DiscoverFilter{
					MinYear: q.MinYear, MaxYear: q.MaxYear, MinRating: q.MinRating,
				})
			}
			if err != nil {
				s.logger.Warn("movie search failed", zap.String("query", query), zap.Error(err))
				return nil
			}
			resp.Movies = filterItems(movies, q.MinYear, q.MaxYear, q.MinRating)
			return nil
		})
	}

	if kind == "all" || kind == catalog.KindBook {
		g.Go(func() error {
			bookQuery := query
			if bookQuery == "" {
				bookQuery = defaultBookQuery
			}
			books, err := s.provider.SearchBooks(gctx, bookQuery)
			if err != nil {
				s.logger.Warn("book search failed", zap.String("query", bookQuery), zap.Error(err))
				return nil
			}
			resp.Books = filterItems(books, 0, 0, q.MinRating)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *contentService) Popular(ctx context.Context) (*dto.PopularResponse, error) {
	resp := &dto.PopularResponse{Movies: []catalog.Item{}, Books: []catalog.Item{}}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		movies, err := s.provider.DiscoverMovies(gctx, catalog.DiscoverFilter{})
		if err != nil {
			s.logger.Warn("popular movies failed", zap.Error(err))
			return nil
		}
		resp.Movies = capItems(movies, popularLimit)
		return nil
	})
	g.Go(func() error {
		books, err := s.provider.SearchBooks(gctx, popularBooksQuery)
		if err != nil {
			s.logger.Warn("popular books failed", zap.Error(err))
			return nil
		}
		resp.Books = capItems(books, popularLimit)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return resp, nil
}

// Details merges upstream metadata with platform reviews and the viewer's shelf entry.
func (s *contentService) Details(ctx context.Context, viewerID, kind, id string) (*dto.ContentDetailsResponse, error) {
	if kind != catalog.KindMovie && kind != catalog.KindBook {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidInput, kind)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	details, err := s.provider.Details(ctx, kind, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		s.logger.Warn("content details failed", zap.String("type", kind), zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	reviews, err := s.library.ListReviews(ctx, id, kind)
	if err != nil {
		return nil, err
	}
	summary, err := s.library.RatingSummary(ctx, id, kind)
	if err != nil {
		return nil, err
	}

	resp := &dto.ContentDetailsResponse{
		Details:        *details,
		Reviews:        make([]dto.ReviewResponse, 0, len(reviews)),
		PlatformRating: math.Round(summary.Average*10) / 10,
		TotalVotes:     summary.Total,
	}
	for _, r := range reviews {
		resp.Reviews = append(resp.Reviews, dto.ReviewResponse{
			UserID:    r.UserID,
			Username:  r.Username,
			AvatarURL: r.AvatarURL,
			Rating:    r.Rating,
			Review:    r.Review,
			WatchedAt: r.WatchedAt,
		})
	}

	if viewerID != "" {
		mine, err := s.library.GetByContent(ctx, viewerID, id, kind)
		switch {
		case err == nil:
			resp.MyRating = mine.Rating
			resp.MyReview = mine.Review
			resp.MyStatus = mine.Status
			resp.LibraryID = &mine.ID
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, fmt.Errorf("load viewer library item: %w", err)
		}
	}

	return resp, nil
}

// filterItems drops items outside the year range or below minRating. Items with an
// unknown year are kept.
func filterItems(items []catalog.Item, minYear, maxYear int, minRating float64) []catalog.Item {
	out := make([]catalog.Item, 0, len(items))
	for _, it := range items {
		if it.Year != 0 {
			if minYear > 0 && it.Year < minYear {
				continue
			}
			if maxYear > 0 && it.Year > maxYear {
				continue
			}
		}
		if minRating > 0 && it.Rating < minRating {
			continue
		}
		out = append(out, it)
	}
	return out
}

func capItems(items []catalog.Item, n int) []catalog.Item {
	if len(items) > n {
		return items[:n]
	}
	if items == nil {
		return []catalog.Item{}
	}
	return items
}
