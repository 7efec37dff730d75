package service_test

import (
	"context"
	"testing"

	"cinelibri/internal/microservices/http-api/models"
	"cinelibri/internal/microservices/http-api/repository"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestToggleLikeTreatsInsertConflictAsLiked(t *testing.T) {
	activities := new(MockActivityRepository)
	likes := new(MockLikeRepository)
	notifications := new(MockNotificationService)
	svc := service.NewEngagementService(activities, likes, nil, notifications, zap.NewNop())
	ctx := context.Background()

	activities.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Activity{ID: 7, UserID: "author", ContentTitle: "Film"}, nil).Once()
	likes.On("Exists", mock.Anything, int64(7), "fan").Return(false, nil).Once()
	likes.On("Create", mock.Anything, int64(7), "fan").Return(repository.ErrDuplicate).Once()
	likes.On("Count", mock.Anything, int64(7)).Return(int64(1), nil).Once()

	res, err := svc.ToggleLike(ctx, "fan", 7)
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 1, res.LikeCount)

	notifications.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	likes.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	activities.AssertExpectations(t)
	likes.AssertExpectations(t)
}

func TestToggleLikeNotifiesOnFreshLike(t *testing.T) {
	activities := new(MockActivityRepository)
	likes := new(MockLikeRepository)
	notifications := new(MockNotificationService)
	svc := service.NewEngagementService(activities, likes, nil, notifications, zap.NewNop())

	activities.On("GetByID", mock.Anything, int64(7)).
		Return(&models.Activity{ID: 7, UserID: "author", ContentTitle: "Film"}, nil).Once()
	likes.On("Exists", mock.Anything, int64(7), "fan").Return(false, nil).Once()
	likes.On("Create", mock.Anything, int64(7), "fan").Return(nil).Once()
	likes.On("Count", mock.Anything, int64(7)).Return(int64(1), nil).Once()
	notifications.On("Notify", mock.Anything, mock.MatchedBy(func(n *models.Notification) bool {
		return n.UserID == "author" && n.ActorID == "fan" && n.Type == models.NotificationLike &&
			n.Message == `liked your post about "Film".`
	})).Return(nil).Once()

	res, err := svc.ToggleLike(context.Background(), "fan", 7)
	require.NoError(t, err)
	assert.True(t, res.Liked)

	activities.AssertExpectations(t)
	likes.AssertExpectations(t)
	notifications.AssertExpectations(t)
}

func TestLedgerRefreshesAfterInsertConflict(t *testing.T) {
	activities := new(MockActivityRepository)
	users := new(MockUserRepository)
	ledger := service.NewActivityLedger(activities, users, zap.NewNop())

	rating := 7
	review := "second look"
	winner := &models.Activity{
		ID:           42,
		UserID:       "u1",
		ActivityType: models.ActivityRateContent,
		ContentAPIID: "tt001",
		ContentType:  models.ContentTypeMovie,
	}

	users.On("FindByID", mock.Anything, "u1").Return(&models.User{ID: "u1", Username: "alice"}, nil).Once()
	activities.On("FindDedup", mock.Anything, "u1", "tt001", models.ContentTypeMovie).
		Return(nil, gorm.ErrRecordNotFound).Once()
	activities.On("Create", mock.Anything, mock.AnythingOfType("*models.Activity")).
		Return(repository.ErrDuplicate).Once()
	activities.On("FindDedup", mock.Anything, "u1", "tt001", models.ContentTypeMovie).
		Return(winner, nil).Once()
	activities.On("Refresh", mock.Anything, int64(42), models.ActivityReviewContent,
		mock.MatchedBy(func(r *int) bool { return r != nil && *r == 7 }),
		mock.MatchedBy(func(s *string) bool { return s != nil && *s == "second look" }),
		mock.Anything,
	).Return(nil).Once()

	entry, err := ledger.RecordOrUpdate(context.Background(), service.ActivityRecord{
		ActorID:     "u1",
		Kind:        models.ActivityReviewContent,
		Title:       "Film",
		APIID:       "tt001",
		ContentType: models.ContentTypeMovie,
		Rating:      &rating,
		ReviewText:  &review,
	})
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(42), entry.ID)
	assert.Equal(t, models.ActivityReviewContent, entry.ActivityType)
	require.NotNil(t, entry.Rating)
	assert.Equal(t, 7, *entry.Rating)
	require.NotNil(t, entry.ReviewText)
	assert.Equal(t, "second look", *entry.ReviewText)

	activities.AssertExpectations(t)
	users.AssertExpectations(t)
}

func TestNotificationLimitIsCapped(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := service.NewNotificationService(repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"default when unset", 0, 20},
		{"default when negative", -5, 20},
		{"passes through", 50, 50},
		{"capped", 500, service.MaxNotificationLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo.On("ListRecent", mock.Anything, "u1", tt.want).Return([]models.Notification{}, nil).Once()
			repo.On("CountUnread", mock.Anything, "u1").Return(int64(0), nil).Once()

			res, err := svc.ListRecent(ctx, "u1", tt.limit)
			require.NoError(t, err)
			assert.Empty(t, res.Notifications)
		})
	}
	repo.AssertExpectations(t)
}
