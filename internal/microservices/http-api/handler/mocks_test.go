package handler_test

import (
	"context"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/stretchr/testify/mock"
)

// --- MOCK SERVICES ---

type MockProfileService struct{ mock.Mock }

func (m *MockProfileService) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) GetUser(ctx context.Context, viewerID, targetID string) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, viewerID, targetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProfileResponse), args.Error(1)
}

type MockSocialService struct{ mock.Mock }

func (m *MockSocialService) Follow(ctx context.Context, followerID, followeeID string) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *MockSocialService) Unfollow(ctx context.Context, followerID, followeeID string) error {
	return m.Called(ctx, followerID, followeeID).Error(0)
}

func (m *MockSocialService) ListNetwork(ctx context.Context, userID string) (*dto.NetworkResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NetworkResponse), args.Error(1)
}

func (m *MockSocialService) IsFollowing(ctx context.Context, followerID, followeeID string) (bool, error) {
	args := m.Called(ctx, followerID, followeeID)
	return args.Bool(0), args.Error(1)
}

type MockFeedService struct{ mock.Mock }

func (m *MockFeedService) GetFeed(ctx context.Context, viewerID, targetUserID string, page, pageSize int) (*dto.FeedResponse, error) {
	args := m.Called(ctx, viewerID, targetUserID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.FeedResponse), args.Error(1)
}

type MockEngagementService struct{ mock.Mock }

func (m *MockEngagementService) ToggleLike(ctx context.Context, userID string, activityID int64) (*dto.LikeResponse, error) {
	args := m.Called(ctx, userID, activityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LikeResponse), args.Error(1)
}

func (m *MockEngagementService) AddComment(ctx context.Context, userID string, activityID int64, text string) (*dto.CommentResponse, error) {
	args := m.Called(ctx, userID, activityID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.CommentResponse), args.Error(1)
}

func (m *MockEngagementService) ListComments(ctx context.Context, activityID int64) ([]dto.CommentResponse, error) {
	args := m.Called(ctx, activityID)
	return args.Get(0).([]dto.CommentResponse), args.Error(1)
}

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) Notify(ctx context.Context, n *models.Notification) error {
	return m.Called(ctx, n).Error(0)
}

func (m *MockNotificationService) ListRecent(ctx context.Context, userID string, limit int) (*dto.NotificationListResponse, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.NotificationListResponse), args.Error(1)
}

func (m *MockNotificationService) MarkAllAsRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type MockLibraryService struct{ mock.Mock }

func (m *MockLibraryService) AddItem(ctx context.Context, userID string, req *dto.AddToLibraryRequest) (*models.LibraryItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryItem), args.Error(1)
}

func (m *MockLibraryService) UpdateStatus(ctx context.Context, userID string, itemID int64, status string) (*models.LibraryItem, error) {
	args := m.Called(ctx, userID, itemID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryItem), args.Error(1)
}

func (m *MockLibraryService) RateOrReview(ctx context.Context, userID string, req *dto.ReviewRequest) (*models.LibraryItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LibraryItem), args.Error(1)
}

func (m *MockLibraryService) DeleteReview(ctx context.Context, userID string, itemID int64) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockLibraryService) RemoveItem(ctx context.Context, userID string, itemID int64) error {
	return m.Called(ctx, userID, itemID).Error(0)
}

func (m *MockLibraryService) ListLibrary(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.LibraryItem), args.Error(1)
}

type MockCustomListService struct{ mock.Mock }

func (m *MockCustomListService) CreateList(ctx context.Context, userID, name string) (*models.CustomList, error) {
	args := m.Called(ctx, userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomList), args.Error(1)
}

func (m *MockCustomListService) ListLists(ctx context.Context, ownerID, checkAPIID, checkType string) ([]models.CustomListView, error) {
	args := m.Called(ctx, ownerID, checkAPIID, checkType)
	return args.Get(0).([]models.CustomListView), args.Error(1)
}

func (m *MockCustomListService) AddToList(ctx context.Context, userID string, req *dto.AddToListRequest) (*models.CustomListItem, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CustomListItem), args.Error(1)
}

func (m *MockCustomListService) ListItems(ctx context.Context, listID int64) ([]models.CustomListItem, error) {
	args := m.Called(ctx, listID)
	return args.Get(0).([]models.CustomListItem), args.Error(1)
}

func (m *MockCustomListService) DeleteList(ctx context.Context, userID string, listID int64) error {
	return m.Called(ctx, userID, listID).Error(0)
}

func (m *MockCustomListService) RemoveFromList(ctx context.Context, userID string, listID int64, apiID string) error {
	return m.Called(ctx, userID, listID, apiID).Error(0)
}

type MockContentService struct{ mock.Mock }

func (m *MockContentService) Search(ctx context.Context, q service.SearchQuery) (*dto.SearchResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.SearchResponse), args.Error(1)
}

func (m *MockContentService) Popular(ctx context.Context) (*dto.PopularResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PopularResponse), args.Error(1)
}

func (m *MockContentService) Details(ctx context.Context, viewerID, kind, id string) (*dto.ContentDetailsResponse, error) {
	args := m.Called(ctx, viewerID, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ContentDetailsResponse), args.Error(1)
}
