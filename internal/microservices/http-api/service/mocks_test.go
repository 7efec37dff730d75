package service_test

import (
	"context"
	"time"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"

	"github.com/stretchr/testify/mock"
)

// MockLikeRepository mocks the LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, activityID int64, userID string) error {
	args := m.Called(ctx, activityID, userID)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, activityID int64, userID string) (bool, error) {
	args := m.Called(ctx, activityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Exists(ctx context.Context, activityID int64, userID string) (bool, error) {
	args := m.Called(ctx, activityID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) Count(ctx context.Context, activityID int64) (int64, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).(int64), args.Error(1)
}

// MockActivityRepository mocks the ActivityRepository interface
type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Create(ctx context.Context, activity *models.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) GetByID(ctx context.Context, id int64) (*models.Activity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) FindDedup(ctx context.Context, userID, apiID, contentType string) (*models.Activity, error) {
	args := m.Called(ctx, userID, apiID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Activity), args.Error(1)
}

func (m *MockActivityRepository) Refresh(ctx context.Context, id int64, kind string, rating *int, reviewText *string, at time.Time) error {
	args := m.Called(ctx, id, kind, rating, reviewText, at)
	return args.Error(0)
}

func (m *MockActivityRepository) CountDedup(ctx context.Context, userID, apiID, contentType string) (int64, error) {
	args := m.Called(ctx, userID, apiID, contentType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockActivityRepository) DeleteDedup(ctx context.Context, userID, apiID, contentType string) (int64, error) {
	args := m.Called(ctx, userID, apiID, contentType)
	return args.Get(0).(int64), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetProfile(ctx context.Context, id string) (*models.ProfileView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileView), args.Error(1)
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

// MockNotificationRepository mocks the NotificationRepository interface
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Notification, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockNotificationService mocks the NotificationService interface
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, n *models.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationService) ListRecent(ctx context.Context, userID string, limit int) (*dto.NotificationListResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationListResponse), args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
