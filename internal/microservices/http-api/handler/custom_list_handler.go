package handler

import (
	"net/http"

	"cinelibri/internal/microservices/http-api/dto"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CustomListHandler struct {
	svc service.CustomListService
}

func NewCustomListHandler(svc service.CustomListService) *CustomListHandler {
	return &CustomListHandler{svc: svc}
}

// Create
// POST /api/library/custom
func (h *CustomListHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	list, err := h.svc.CreateList(ctx, userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, list)
}

// List returns the lists of ?userId (default caller). With checkApiId and checkType set,
// each list reports whether it already holds that item.
// GET /api/library/custom
func (h *CustomListHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if owner := c.Query("userId"); owner != "" {
		userID = owner
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	lists, err := h.svc.ListLists(ctx, userID, c.Query("checkApiId"), c.Query("checkType"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

// AddItem
// POST /api/library/custom/add
func (h *CustomListHandler) AddItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.AddToListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	item, err := h.svc.AddToList(ctx, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

// Items
// GET /api/library/custom/:list_id
func (h *CustomListHandler) Items(c *gin.Context) {
	listID, ok := parseIDParam(c, "list_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	items, err := h.svc.ListItems(ctx, listID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// Delete removes a list and its items
// DELETE /api/library/custom/:list_id
func (h *CustomListHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseIDParam(c, "list_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.DeleteList(ctx, userID, listID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "list deleted"})
}

// RemoveItem
// DELETE /api/library/custom/:list_id/items/:api_id
func (h *CustomListHandler) RemoveItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	listID, ok := parseIDParam(c, "list_id")
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.RemoveFromList(ctx, userID, listID, c.Param("api_id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item removed"})
}
