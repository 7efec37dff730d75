package repository

import (
	"context"
	"fmt"

	"cinelibri/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	GetProfile(ctx context.Context, id string) (*models.ProfileView, error)
	UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile loads the user with follower counts.
func (r *userRepository) GetProfile(ctx context.Context, id string) (*models.ProfileView, error) {
	var profile models.ProfileView
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(`users.id, users.username, users.email, users.bio, users.avatar_url,
			(SELECT COUNT(*) FROM follows f WHERE f.followee_id = users.id) AS followers_count,
			(SELECT COUNT(*) FROM follows f WHERE f.follower_id = users.id) AS following_count`).
		Where("users.id = ?", id).
		Limit(1).
		Scan(&profile)
	if res.Error != nil {
		return nil, fmt.Errorf("get profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &profile, nil
}

// UpdateProfile writes only the given columns. A username collision yields ErrDuplicate.
func (r *userRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return ErrDuplicate
		}
		return fmt.Errorf("update profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
