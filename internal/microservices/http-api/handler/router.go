package handler

import (
	"net/http"
	"time"

	"cinelibri/internal/microservices/http-api/middleware"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// RouterConfig carries everything SetupRouter mounts. Limiter may be nil to disable
// rate limiting. A zero RequestTimeout means 5s.
type RouterConfig struct {
	Profiles      *ProfileHandler
	Social        *SocialHandler
	Feed          *FeedHandler
	Notifications *NotificationHandler
	Library       *LibraryHandler
	CustomLists   *CustomListHandler
	Content       *ContentHandler

	Verifier       middleware.TokenVerifier
	Limiter        middleware.Limiter
	Logger         *zap.Logger
	CORSOrigins    []string
	EnableMetrics  bool
	RequestTimeout time.Duration
}

func SetupRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(cfg.Logger), middleware.Recovery(cfg.Logger))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(requestTimeout(cfg.RequestTimeout))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.EnableMetrics {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	auth := middleware.AuthMiddleware(cfg.Verifier)
	limit := writeLimit(cfg.Limiter, cfg.Logger)

	api := r.Group("/api")

	users := api.Group("/users", auth, limit)
	{
		users.GET("/profile", cfg.Profiles.GetProfile)
		users.PUT("/profile", cfg.Profiles.UpdateProfile)

		users.GET("/feed", cfg.Feed.GetFeed)
		users.GET("/network", cfg.Social.Network)
		users.POST("/follow", cfg.Social.Follow)
		users.DELETE("/follow", cfg.Social.Unfollow)

		users.POST("/activity/like", cfg.Feed.ToggleLike)
		users.GET("/activity/:activityId/comments", cfg.Feed.ListComments)
		users.POST("/activity/comment", cfg.Feed.AddComment)

		users.GET("/notifications", cfg.Notifications.List)
		users.PUT("/notifications/read", cfg.Notifications.MarkAllAsRead)

		users.GET("/:id", cfg.Profiles.GetUser)
	}

	library := api.Group("/library")
	{
		// Public: list contents can be shared without a session
		library.GET("/custom/:list_id/items", cfg.CustomLists.Items)

		authed := library.Group("", auth, limit)
		authed.POST("/add", cfg.Library.Add)
		authed.GET("", cfg.Library.List)
		authed.GET("/user/:id", cfg.Library.ListForUser)
		authed.PUT("/:id", cfg.Library.UpdateStatus)
		authed.POST("/review", cfg.Library.Review)
		authed.DELETE("/review/:id", cfg.Library.DeleteReview)
		authed.DELETE("/:id", cfg.Library.Remove)

		authed.POST("/custom", cfg.CustomLists.Create)
		authed.GET("/custom", cfg.CustomLists.List)
		authed.POST("/custom/add", cfg.CustomLists.AddItem)
		authed.GET("/custom/:list_id", cfg.CustomLists.Items)
		authed.DELETE("/custom/:list_id", cfg.CustomLists.Delete)
		authed.DELETE("/custom/:list_id/items/:api_id", cfg.CustomLists.RemoveItem)
	}

	content := api.Group("/content")
	{
		content.GET("/popular", cfg.Content.Popular)
		content.GET("/search/unified", auth, cfg.Content.Search)
		content.GET("/:type/:id", auth, cfg.Content.Details)
	}

	return r
}

// writeLimit applies the rate limiter to mutating requests only.
func writeLimit(limiter middleware.Limiter, logger *zap.Logger) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	limit := middleware.RateLimit(limiter, logger)
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
		default:
			limit(c)
		}
	}
}

func requestTimeout(d time.Duration) gin.HandlerFunc {
	if d <= 0 {
		d = defaultRequestTimeout
	}
	return func(c *gin.Context) {
		c.Set(ctxRequestTimeout, d)
		c.Next()
	}
}
