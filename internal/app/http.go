package app

import (
	"context"

	"github.com/gin-gonic/gin"

	authhandler "github.com/Dmc0125/task-app/internal/auth/handler"
	"github.com/Dmc0125/task-app/internal/auth/oauth"
	"github.com/Dmc0125/task-app/internal/auth/provider"
	"github.com/Dmc0125/task-app/internal/auth/resolver"
	"github.com/Dmc0125/task-app/internal/config"
	"github.com/Dmc0125/task-app/internal/label"
	"github.com/Dmc0125/task-app/internal/metrics"
	"github.com/Dmc0125/task-app/internal/middleware"
	"github.com/Dmc0125/task-app/internal/session"
	"github.com/Dmc0125/task-app/internal/task"
	"github.com/Dmc0125/task-app/internal/taskgroup"
	"github.com/Dmc0125/task-app/internal/user"
	"github.com/Dmc0125/task-app/internal/workspace"
)

func setupHTTP(ctx context.Context, cfg *config.Config) (*gin.Engine, func() error, error) {
	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	codec := session.NewCodec(cfg.SignatureKey)
	catalog := provider.NewCatalog(cfg.BaseURL, cfg.ProviderCredentials())
	oauthClient := oauth.NewClient()
	identityResolver := resolver.New(resolver.NewDBStore(infra.DB))

	authHandler := authhandler.New(catalog, oauthClient, identityResolver, codec, authhandler.RedirectURLs{
		Client:        cfg.ClientURL,
		SigninSuccess: cfg.ClientSigninSuccessURL,
		SigninFail:    cfg.ClientSigninFailURL,
	})

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.AppEnv != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLogger(),
		metrics.HTTPMiddleware(),
	)

	// ----------------------------
	// Public Routes
	// ----------------------------

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	public := router.Group("/api/v1")
	authHandler.RegisterRoutes(public)

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api/v1")
	api.Use(middleware.RequireAuth(codec))

	user.NewHandler(user.NewDBStore(infra.DB)).RegisterRoutes(api)
	workspace.NewHandler(workspace.NewDBStore(infra.DB)).RegisterRoutes(api)
	label.NewHandler(label.NewDBStore(infra.DB)).RegisterRoutes(api)
	taskgroup.NewHandler(taskgroup.NewDBStore(infra.DB)).RegisterRoutes(api)
	task.NewHandler(task.NewDBStore(infra.DB)).RegisterRoutes(api)

	return router, func() error {
		return infra.DB.Close()
	}, nil
}
