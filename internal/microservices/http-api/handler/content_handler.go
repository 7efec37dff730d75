package handler

import (
	"net/http"
	"strconv"

	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ContentHandler struct {
	svc service.ContentService
}

func NewContentHandler(svc service.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// Popular
// GET /api/content/popular
func (h *ContentHandler) Popular(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.Popular(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search queries both catalogs
// GET /api/content/search/unified?q=&type=&minYear=&maxYear=&minRating=
func (h *ContentHandler) Search(c *gin.Context) {
	q := service.SearchQuery{
		Query: c.Query("q"),
		Type:  c.DefaultQuery("type", "all"),
	}
	if q.Query == "" {
		q.Query = c.Query("query")
	}
	q.MinYear, _ = strconv.Atoi(c.Query("minYear"))
	q.MaxYear, _ = strconv.Atoi(c.Query("maxYear"))
	q.MinRating, _ = strconv.ParseFloat(c.Query("minRating"), 64)

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.Search(ctx, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Details
// GET /api/content/:type/:id
func (h *ContentHandler) Details(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	resp, err := h.svc.Details(ctx, userID, c.Param("type"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
