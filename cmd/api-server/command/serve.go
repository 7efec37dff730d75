package command

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"cinelibri/database"
	"cinelibri/internal/catalog"
	"cinelibri/internal/config"
	"cinelibri/internal/logger"
	"cinelibri/internal/microservices/http-api/handler"
	"cinelibri/internal/microservices/http-api/middleware"
	"cinelibri/internal/microservices/http-api/repository"
	"cinelibri/internal/microservices/http-api/service"
	"cinelibri/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg, log)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}
	if cfg.AutoMigrateOnStart {
		if err := database.Migrate(db); err != nil {
			return err
		}
		log.Info("schema migrated")
	}

	var limiter middleware.Limiter
	if cfg.RateLimitEnabled {
		rdb, err := newRedisClient(cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		limiter, err = ratelimit.NewRedisFixedWindowLimiter(rdb, "", cfg.RateLimitRequests, cfg.RateLimitWindow)
		if err != nil {
			return err
		}
	}

	catalogs := catalog.New(
		catalog.NewTMDBClient(catalog.Options{
			BaseURL:   cfg.TMDBAPIURL,
			APIKey:    cfg.TMDBAPIKey,
			Language:  cfg.CatalogLanguage,
			Timeout:   cfg.CatalogTimeout,
			RateLimit: float64(cfg.CatalogRateLimit),
			Logger:    log.Named("tmdb"),
		}),
		catalog.NewGoogleBooksClient(catalog.Options{
			BaseURL:   cfg.GoogleBooksAPIURL,
			APIKey:    cfg.GoogleBooksAPIKey,
			Language:  cfg.BookLanguage(),
			Timeout:   cfg.CatalogTimeout,
			RateLimit: float64(cfg.CatalogRateLimit),
			Logger:    log.Named("googlebooks"),
		}),
	)

	users := repository.NewUserRepository(db)
	libraryRepo := repository.NewLibraryRepository(db)
	activities := repository.NewActivityRepository(db)

	notifications := service.NewNotificationService(repository.NewNotificationRepository(db))
	ledger := service.NewActivityLedger(activities, users, log)
	social := service.NewSocialService(repository.NewFollowRepository(db), users, log)
	engagement := service.NewEngagementService(
		activities,
		repository.NewLikeRepository(db),
		repository.NewCommentRepository(db),
		notifications,
		log,
	)

	router := handler.SetupRouter(handler.RouterConfig{
		Profiles:      handler.NewProfileHandler(service.NewProfileService(users, social)),
		Social:        handler.NewSocialHandler(social),
		Feed:          handler.NewFeedHandler(service.NewFeedService(repository.NewFeedRepository(db)), engagement),
		Notifications: handler.NewNotificationHandler(notifications),
		Library:       handler.NewLibraryHandler(service.NewLibraryService(libraryRepo, ledger, log)),
		CustomLists:   handler.NewCustomListHandler(service.NewCustomListService(repository.NewCustomListRepository(db))),
		Content:       handler.NewContentHandler(service.NewContentService(catalogs, libraryRepo, log)),
		Verifier:      middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiry),
		Limiter:       limiter,
		Logger:        log,
		CORSOrigins:   cfg.CORSOrigins,
		EnableMetrics: cfg.PrometheusEnabled,

		RequestTimeout: cfg.RequestTimeout,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutdown signal received, draining connections")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func bootstrap() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

func newRedisClient(cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	if cfg.RedisPassword != "" {
		opts.Password = cfg.RedisPassword
	}
	return redis.NewClient(opts), nil
}
