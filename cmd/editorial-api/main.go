package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/Burkhanovich/article-site/api/swagger"
	"github.com/Burkhanovich/article-site/internal/handler"
	"github.com/Burkhanovich/article-site/internal/repository"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/cache"
	"github.com/Burkhanovich/article-site/pkg/config"
	"github.com/Burkhanovich/article-site/pkg/database"
	"github.com/Burkhanovich/article-site/pkg/jobs"
	"github.com/Burkhanovich/article-site/pkg/logger"
	"github.com/Burkhanovich/article-site/pkg/mailer"
)

// @title Article Site Editorial API
// @version 1.0.0
// @description Editorial publishing workflow: drafts, admin triage, category reviews, publication and audit history.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("postgres unavailable", zap.Error(err))
	}
	defer db.Close()

	// Redis is optional: without it the dashboard is computed on every request and
	// real-time events are dropped.
	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, continuing without cache and realtime events", zap.Error(err))
	} else {
		defer redisClient.Close()
	}

	metrics := service.NewMetricsService()

	users := repository.NewUserRepository(db)
	articles := repository.NewArticleRepository(db)
	categories := repository.NewCategoryRepository(db)
	reviews := repository.NewReviewRepository(db)
	history := repository.NewHistoryRepository(db)
	notifications := repository.NewNotificationRepository(db)
	rules := repository.NewRulesRepository(db)
	runner := service.NewStoreRunner(repository.NewStore(db))

	dispatcherOpts := []service.DispatcherOption{
		service.WithDispatcherMetrics(metrics),
		service.WithDispatcherSite(cfg.Site.Name, cfg.Site.URL),
	}
	if redisClient != nil && cfg.Notifications.RealtimeEnabled {
		dispatcherOpts = append(dispatcherOpts, service.WithDispatcherPublisher(
			repository.NewNotificationPublisher(redisClient, cfg.Notifications.Channel),
		))
	}
	dispatcher := service.NewNotificationDispatcher(mailer.New(cfg.Mail, logr), logr.Named("notifications"), dispatcherOpts...)
	if cfg.Notifications.Async {
		queue := jobs.NewQueue("notifications", dispatcher.HandleJob, jobs.QueueConfig{
			Workers:    cfg.Notifications.Workers,
			MaxRetries: cfg.Notifications.Retries,
			RetryDelay: 2 * time.Second,
			Logger:     logr.Named("jobs"),
		})
		queue.Start(ctx)
		defer queue.Stop()
		dispatcher.UseQueue(queue)
	}

	var cacheSvc *service.CacheService
	if redisClient != nil {
		cacheSvc = service.NewCacheService(
			repository.NewCacheRepository(redisClient, logr),
			metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled,
		)
	}

	publishabilitySvc := service.NewPublishabilityService(articles, categories, reviews, logr)
	dashboardSvc := service.NewDashboardService(service.DashboardServiceParams{
		Articles:  articles,
		Evaluator: publishabilitySvc,
		Cache:     cacheSvc,
		Logger:    logr,
		Config:    service.DashboardServiceConfig{CacheTTL: cfg.Dashboard.CacheTTL},
	})
	workflowSvc := service.NewWorkflowService(runner, dispatcher, logr.Named("workflow"),
		service.WithWorkflowMetrics(metrics),
		service.WithStatsInvalidator(dashboardSvc),
	)
	authSvc := service.NewAuthService(users, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
	})

	checks := map[string]handler.ReadinessCheck{
		"postgres": db.PingContext,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	}

	router := newRouter(cfg, logr, routeDeps{
		auth:          authSvc,
		metrics:       metrics,
		articles:      handler.NewArticleHandler(service.NewArticleService(runner, articles, categories, users, logr)),
		workflow:      handler.NewWorkflowHandler(workflowSvc, publishabilitySvc),
		history:       handler.NewHistoryHandler(service.NewHistoryService(articles, history, users, logr)),
		categories:    handler.NewCategoryHandler(service.NewCategoryService(runner, categories, users, dispatcher, logr)),
		rules:         handler.NewRulesHandler(service.NewRulesService(runner, rules, users, logr)),
		notifications: handler.NewNotificationHandler(service.NewNotificationService(notifications, logr)),
		dashboard:     handler.NewDashboardHandler(dashboardSvc, service.NewReviewerQueueService(categories, articles, users, logr)),
		health:        handler.NewMetricsHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Warn("graceful shutdown failed", zap.Error(err))
	}
	logr.Info("server stopped")
}
