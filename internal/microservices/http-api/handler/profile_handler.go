package handler

import (
	"net/http"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc service.ProfileService
}

func NewProfileHandler(svc service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// GetProfile returns the authenticated user's own profile
// GET /api/users/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.svc.GetProfile(ctx, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile changes username, bio or avatar; omitted fields are left as they are
// PUT /api/users/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.svc.UpdateProfile(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUser returns another user's public profile
// GET /api/users/:id
func (h *ProfileHandler) GetUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	profile, err := h.svc.GetUser(ctx, userID, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
