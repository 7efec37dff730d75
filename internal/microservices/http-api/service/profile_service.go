package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	GetUser(ctx context.Context, viewerID, targetID string) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
}

type profileService struct {
	users  repository.UserRepository
	social SocialService
}

func NewProfileService(users repository.UserRepository, social SocialService) ProfileService {
	return &profileService{users: users, social: social}
}

// GetProfile returns the caller's own profile, email included.
func (s *profileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	p, err := s.users.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return &dto.ProfileResponse{
		ID:             p.ID,
		Username:       p.Username,
		Email:          p.Email,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
	}, nil
}

// GetUser returns another user's public profile as seen by viewerID.
func (s *profileService) GetUser(ctx context.Context, viewerID, targetID string) (*dto.ProfileResponse, error) {
	p, err := s.users.GetProfile(ctx, targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	isFollowing, err := s.social.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return nil, fmt.Errorf("check follow: %w", err)
	}
	return &dto.ProfileResponse{
		ID:             p.ID,
		Username:       p.Username,
		Bio:            p.Bio,
		AvatarURL:      p.AvatarURL,
		FollowersCount: p.FollowersCount,
		FollowingCount: p.FollowingCount,
		IsFollowing:    &isFollowing,
	}, nil
}

// UpdateProfile changes only the fields present in req.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	fields := map[string]interface{}{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if username == "" {
			return nil, fmt.Errorf("%w: username cannot be blank", ErrInvalidInput)
		}
		fields["username"] = username
	}
	if req.Bio != nil {
		fields["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.AvatarURL != nil {
		fields["avatar_url"] = strings.TrimSpace(*req.AvatarURL)
	}

	if err := s.users.UpdateProfile(ctx, userID, fields); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, fmt.Errorf("%w: username is taken", ErrDuplicateItem)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return nil, ErrNotFoundOrForbidden
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
