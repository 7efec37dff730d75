package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cinelibri/internal/microservices/http-api/middleware"
	"cinelibri/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultRequestTimeout = 5 * time.Second
	ctxRequestTimeout     = "requestTimeout"
)

// respondError writes {"error", "category"} for err. Unknown errors are reported as a
// generic storage failure and attached to the context so the request logger records the cause.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSelfFollow):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "category": "self_follow"})
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": cleanMessage(err), "category": "invalid_input"})
	case errors.Is(err, service.ErrAlreadyFollowing), errors.Is(err, service.ErrDuplicateItem):
		c.JSON(http.StatusConflict, gin.H{"error": cleanMessage(err), "category": "conflict"})
	case errors.Is(err, service.ErrNotFoundOrForbidden):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "category": "not_found"})
	case errors.Is(err, service.ErrUpstreamUnavailable):
		c.JSON(http.StatusBadGateway, gin.H{"error": service.ErrUpstreamUnavailable.Error(), "category": "upstream_unavailable"})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "category": "storage_failure"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg, "category": "invalid_input"})
}

// cleanMessage drops the sentinel prefix from "invalid input: username is required".
func cleanMessage(err error) string {
	msg := err.Error()
	if _, detail, ok := strings.Cut(msg, ": "); ok && detail != "" {
		return detail
	}
	return msg
}

func currentUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID, true
}

// requestContext bounds the request with the timeout installed by SetupRouter.
func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	timeout := defaultRequestTimeout
	if v, ok := c.Get(ctxRequestTimeout); ok {
		if d, ok := v.(time.Duration); ok && d > 0 {
			timeout = d
		}
	}
	return context.WithTimeout(c.Request.Context(), timeout)
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return id, true
}

// queryInt reads a positive integer query parameter, returning def when absent or malformed.
func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 1 {
		return def
	}
	return v
}
