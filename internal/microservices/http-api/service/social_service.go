package service

import (
	"context"
	"errors"
	"fmt"

	"cinelibri/internal/logger"
	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SocialService maintains the directed follow graph.
type SocialService interface {
	Follow(ctx context.Context, followerID, followeeID string) error
	Unfollow(ctx context.Context, followerID, followeeID string) error
	ListNetwork(ctx context.Context, userID string) (*dto.NetworkResponse, error)
	IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error)
}

type socialService struct {
	follows repository.FollowRepository
	users   repository.UserRepository
	logger  *zap.Logger
}

func NewSocialService(follows repository.FollowRepository, users repository.UserRepository, log *zap.Logger) SocialService {
	return &socialService{
		follows: follows,
		users:   users,
		logger:  logger.OrNop(log),
	}
}

func (s *socialService) Follow(ctx context.Context, followerID, followeeID string) error {
	if followeeID == "" {
		return fmt.Errorf("%w: target user is required", ErrInvalidInput)
	}
	if followerID == followeeID {
		return ErrSelfFollow
	}

	if _, err := s.users.FindByID(ctx, followeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrForbidden
		}
		return fmt.Errorf("load followee: %w", err)
	}

	if err := s.follows.Create(ctx, followerID, followeeID); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrAlreadyFollowing
		}
		return err
	}

	s.logger.Debug("follow created", zap.String("follower_id", followerID), zap.String("followee_id", followeeID))
	return nil
}

// Unfollow is idempotent.
func (s *socialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	if followeeID == "" {
		return fmt.Errorf("%w: target user is required", ErrInvalidInput)
	}
	return s.follows.Delete(ctx, followerID, followeeID)
}

func (s *socialService) ListNetwork(ctx context.Context, userID string) (*dto.NetworkResponse, error) {
	followers, err := s.follows.ListFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.ListFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.NetworkResponse{Followers: followers, Following: following}, nil
}

func (s *socialService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	return s.follows.Exists(ctx, followerID, followeeID)
}
