package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/Burkhanovich/article-site/internal/handler"
	"github.com/Burkhanovich/article-site/internal/middleware"
	"github.com/Burkhanovich/article-site/internal/models"
	"github.com/Burkhanovich/article-site/internal/service"
	"github.com/Burkhanovich/article-site/pkg/config"
	"github.com/Burkhanovich/article-site/pkg/logger"
	corsmiddleware "github.com/Burkhanovich/article-site/pkg/middleware/cors"
	reqidmiddleware "github.com/Burkhanovich/article-site/pkg/middleware/requestid"
)

type routeDeps struct {
	auth          middleware.TokenValidator
	metrics       *service.MetricsService
	articles      *handler.ArticleHandler
	workflow      *handler.WorkflowHandler
	history       *handler.HistoryHandler
	categories    *handler.CategoryHandler
	rules         *handler.RulesHandler
	notifications *handler.NotificationHandler
	dashboard     *handler.DashboardHandler
	health        *handler.MetricsHandler
}

func newRouter(cfg *config.Config, logr *zap.Logger, deps routeDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.metrics))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", deps.health.Health)
	r.GET("/ready", deps.health.Ready)
	r.GET("/metrics", deps.health.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	authn := middleware.JWT(deps.auth)
	admins := middleware.RequireRoles(models.RoleAdmin)
	reviewers := middleware.RequireRoles(models.RoleReviewer, models.RoleAdmin)
	writers := middleware.RequireRoles(models.RoleAuthor, models.RoleAdmin)
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(logr, action, resource)
	}

	api := r.Group(cfg.APIPrefix)

	public := api.Group("", middleware.OptionalJWT(deps.auth))
	public.GET("/articles/search", deps.articles.Search)
	public.GET("/articles/slug/:slug", deps.articles.GetBySlug)
	public.GET("/articles/:id", deps.articles.Get)
	public.GET("/categories", deps.categories.List)
	public.GET("/categories/:id", deps.categories.Get)
	public.GET("/rules/active", deps.rules.Active)

	secured := api.Group("", authn)

	articles := secured.Group("/articles")
	articles.GET("", admins, deps.articles.List)
	articles.GET("/mine", deps.articles.Mine)
	articles.POST("", writers, deps.articles.Create)
	articles.PUT("/:id", deps.articles.Update)

	articles.POST("/:id/submit", deps.workflow.Submit)
	articles.POST("/:id/resubmit-publish", deps.workflow.Resubmit)
	articles.POST("/:id/reset", deps.workflow.ResetToDraft)
	articles.POST("/:id/send-to-review", admins, audit("send_to_review", "article"), deps.workflow.SendToReview)
	articles.POST("/:id/reviewers", admins, audit("assign_reviewers", "article"), deps.workflow.AssignReviewers)
	articles.POST("/:id/approve", reviewers, deps.workflow.Approve)
	articles.POST("/:id/request-changes", reviewers, deps.workflow.RequestChanges)
	articles.POST("/:id/reviews", reviewers, deps.workflow.ReviewCategory)
	articles.POST("/:id/publish", admins, audit("publish", "article"), deps.workflow.Publish)
	articles.POST("/:id/reject", admins, audit("reject", "article"), deps.workflow.Reject)
	articles.POST("/:id/return", admins, audit("return_to_author", "article"), deps.workflow.ReturnToAuthor)
	articles.POST("/:id/unpublish", admins, audit("unpublish", "article"), deps.workflow.Unpublish)
	articles.GET("/:id/publishability", reviewers, deps.workflow.Publishability)

	articles.GET("/:id/history", admins, deps.history.List)
	articles.GET("/:id/history/replay", admins, deps.history.Replay)
	articles.GET("/:id/history/export", admins, deps.history.Export)

	categories := secured.Group("/categories")
	categories.POST("", admins, audit("create", "category"), deps.categories.Create)
	categories.PUT("/:id/reviewers", admins, audit("set_reviewers", "category"), deps.categories.SetReviewers)
	categories.GET("/:id/policy", reviewers, deps.categories.Policy)
	categories.PUT("/:id/policy", admins, audit("upsert_policy", "category"), deps.categories.UpsertPolicy)

	rules := secured.Group("/rules", admins)
	rules.GET("", deps.rules.List)
	rules.POST("", audit("create", "rules"), deps.rules.Create)
	rules.POST("/:id/activate", audit("activate", "rules"), deps.rules.Activate)

	notifications := secured.Group("/notifications")
	notifications.GET("", deps.notifications.List)
	notifications.GET("/unread-count", deps.notifications.UnreadCount)
	notifications.POST("/read-all", deps.notifications.MarkAllRead)
	notifications.POST("/:id/read", deps.notifications.MarkRead)

	dashboard := secured.Group("/dashboard")
	dashboard.GET("/admin", admins, deps.dashboard.Admin)
	dashboard.GET("/reviewer", reviewers, deps.dashboard.ReviewerQueue)

	secured.GET("/metrics/summary", admins, deps.health.Summary)

	return r
}
