package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/handsoff/console/internal/apiclient"
	"github.com/handsoff/console/internal/debounce"
	"github.com/handsoff/console/internal/handlers"
	"github.com/handsoff/console/internal/middleware"
	"github.com/handsoff/console/internal/services"
	"github.com/handsoff/console/pkg/config"
	"github.com/handsoff/console/pkg/logger"
	"github.com/handsoff/console/web"
)

// app wires the services every handler is built from.
type app struct {
	backendURL   string
	auth         *services.AuthService
	dashboard    *services.DashboardService
	repositories *services.RepositoryService
	reviews      *services.ReviewService
	settings     *services.SettingsService
	loginLimiter *middleware.RateLimiter

	trustedProxies []string
	// workerStatus feeds /health; nil when no workers run
	workerStatus func() map[string]bool
}

func newApp(client *apiclient.Client, store services.SessionStore, cfg *config.Config) *app {
	return &app{
		backendURL:   client.BaseURL(),
		auth:         services.NewAuthService(client, store),
		dashboard:    services.NewDashboardService(client),
		repositories: services.NewRepositoryService(client, debounce.New(cfg.SearchDebounce())),
		reviews:      services.NewReviewService(client),
		settings:     services.NewSettingsService(client),
		loginLimiter: middleware.NewRateLimiter(cfg.RateLimit.LoginRPS, cfg.RateLimit.LoginBurst),

		trustedProxies: cfg.Server.TrustedProxies,
	}
}

func setupRouter(a *app) (*gin.Engine, error) {
	router := gin.New()
	// the login limiter keys on ClientIP, so forwarded headers are only
	// honoured from configured proxies
	if err := router.SetTrustedProxies(a.trustedProxies); err != nil {
		return nil, err
	}
	router.Use(middleware.RequestLogger(), gin.CustomRecovery(recoverPage))

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)
	router.StaticFS("/static", http.FS(web.Static()))

	errorHandler := handlers.NewErrorHandler(a.auth)
	authHandler := handlers.NewAuthHandler(a.auth)
	dashboardHandler := handlers.NewDashboardHandler(a.dashboard, errorHandler)
	repositoryHandler := handlers.NewRepositoryHandler(a.repositories, a.settings, errorHandler)
	reviewHandler := handlers.NewReviewHandler(a.reviews, errorHandler)
	settingsHandler := handlers.NewSettingsHandler(a.settings, errorHandler)
	healthHandler := handlers.NewHealthHandler(a.backendURL, a.workerStatus)
	notFoundHandler := handlers.NewNotFoundHandler()

	router.GET("/health", healthHandler.HealthCheck)

	sessionChain := []gin.HandlerFunc{middleware.SessionMiddleware(a.auth), middleware.FlashMiddleware()}
	pages := router.Group("/", append(sessionChain, middleware.SameOrigin())...)

	// Auth routes
	guest := pages.Group("/", middleware.GuestOnly())
	{
		guest.GET("/login", authHandler.LoginPage)
		guest.POST("/login", a.loginLimiter.Middleware(), authHandler.Login)
	}
	pages.POST("/logout", authHandler.Logout)

	// Protected routes
	protected := pages.Group("/", middleware.AuthRequired())
	{
		protected.GET("/", dashboardHandler.Dashboard)

		repos := protected.Group("/repositories")
		repos.GET("", repositoryHandler.List)
		repos.GET("/import", repositoryHandler.ImportPage)
		repos.GET("/import/search", repositoryHandler.Search)
		repos.POST("/import", repositoryHandler.Import)
		repos.GET("/:id/webhook", repositoryHandler.Webhook)
		repos.POST("/:id/webhook/test", repositoryHandler.TestWebhook)
		repos.POST("/:id/webhook/recreate", repositoryHandler.RecreateWebhook)
		repos.POST("/:id/llm", repositoryHandler.SetLLMProvider)
		repos.POST("/:id/delete", repositoryHandler.Delete)

		reviews := protected.Group("/reviews")
		reviews.GET("", reviewHandler.List)
		reviews.GET("/export", reviewHandler.Export)
		reviews.GET("/:id", reviewHandler.Detail)

		settings := protected.Group("/settings")
		settings.GET("", settingsHandler.Page)
		settings.POST("/platform", settingsHandler.SavePlatform)
		settings.POST("/platform/test", settingsHandler.TestPlatform)
		settings.POST("/providers", settingsHandler.CreateProvider)
		settings.POST("/providers/models", settingsHandler.FetchModels)
		settings.POST("/providers/test-model", settingsHandler.TestModel)
		settings.POST("/providers/:id", settingsHandler.UpdateProvider)
		settings.POST("/providers/:id/delete", settingsHandler.DeleteProvider)
		settings.POST("/providers/:id/test", settingsHandler.TestProvider)
		settings.POST("/system", settingsHandler.SaveSystem)
	}

	router.NoRoute(append(sessionChain, notFoundHandler.NotFound)...)

	return router, nil
}

func recoverPage(c *gin.Context, recovered any) {
	logger.WithField("request_id", middleware.RequestID(c)).Errorf("panic: %v", recovered)
	if middleware.WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "An error occurred"})
		return
	}
	c.HTML(http.StatusInternalServerError, "error", gin.H{
		"Title":   "Error",
		"Message": "An unexpected error occurred",
	})
	c.Abort()
}
