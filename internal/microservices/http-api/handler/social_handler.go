package handler

import (
	"net/http"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type SocialHandler struct {
	svc service.SocialService
}

func NewSocialHandler(svc service.SocialService) *SocialHandler {
	return &SocialHandler{svc: svc}
}

// Follow
// POST /api/users/follow
func (h *SocialHandler) Follow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "targetId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Follow(ctx, userID, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "followed"})
}

// Unfollow
// DELETE /api/users/follow
func (h *SocialHandler) Unfollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "targetId is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Unfollow(ctx, userID, req.TargetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "unfollowed"})
}

// Network lists followers and followees of ?userId, defaulting to the caller
// GET /api/users/network
func (h *SocialHandler) Network(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if target := c.Query("userId"); target != "" {
		userID = target
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	network, err := h.svc.ListNetwork(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, network)
}
