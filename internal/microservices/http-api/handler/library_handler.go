package handler

import (
	"net/http"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type LibraryHandler struct {
	svc service.LibraryService
}

func NewLibraryHandler(svc service.LibraryService) *LibraryHandler {
	return &LibraryHandler{svc: svc}
}

// Add puts a catalog item in the user's library
// POST /api/library/add
func (h *LibraryHandler) Add(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddToLibraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.AddItem(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromModelToLibraryResponse(item))
}

// List user's library
// GET /api/library
func (h *LibraryHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	h.list(c, userID)
}

// ListForUser returns another user's library
// GET /api/library/user/:id
func (h *LibraryHandler) ListForUser(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	h.list(c, c.Param("id"))
}

func (h *LibraryHandler) list(c *gin.Context, ownerID string) {
	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.svc.ListLibrary(ctx, ownerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewLibraryListResponse(items))
}

// UpdateStatus
// PUT /api/library/:id
func (h *LibraryHandler) UpdateStatus(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateLibraryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "status is required")
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.UpdateStatus(ctx, userID, itemID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToLibraryResponse(item))
}

// Review rates and/or reviews an item, adding it to the library when missing
// POST /api/library/review
func (h *LibraryHandler) Review(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.RateOrReview(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromModelToLibraryResponse(item))
}

// DeleteReview clears rating and review and withdraws the feed entry
// DELETE /api/library/review/:id
func (h *LibraryHandler) DeleteReview(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteReview(ctx, userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// Remove item from library
// DELETE /api/library/:id
func (h *LibraryHandler) Remove(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.RemoveItem(ctx, userID, itemID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
