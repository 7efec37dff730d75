package handler

import (
	"net/http"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// FeedHandler serves the activity feed and the likes and comments attached to its entries.
type FeedHandler struct {
	feed       service.FeedService
	engagement service.EngagementService
}

func NewFeedHandler(feed service.FeedService, engagement service.EngagementService) *FeedHandler {
	return &FeedHandler{feed: feed, engagement: engagement}
}

// GetFeed
// GET /api/users/feed?page=&limit=&userId=
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", service.DefaultFeedPageSize)

	ctx, cancel := requestContext(c)
	defer cancel()

	feed, err := h.feed.GetFeed(ctx, userID, c.Query("userId"), page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// ToggleLike likes the entry, or removes the like when one exists
// POST /api/users/activity/like
func (h *FeedHandler) ToggleLike(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.LikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "activityId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.engagement.ToggleLike(ctx, userID, req.ActivityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddComment
// POST /api/users/activity/comment
func (h *FeedHandler) AddComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.engagement.AddComment(ctx, userID, req.ActivityID, req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// ListComments returns an entry's comments, newest first
// GET /api/users/activity/:activityId/comments
func (h *FeedHandler) ListComments(c *gin.Context) {
	activityID, ok := parseIDParam(c, "activityId")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.engagement.ListComments(ctx, activityID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
