package api

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	groceryHandler "grocery-manager/internal/api/handlers/grocery"
	"grocery-manager/internal/api/handlers/health"
	"grocery-manager/internal/api/middleware"
	"grocery-manager/internal/core/ai"
	grocerycore "grocery-manager/internal/core/grocery"
	"grocery-manager/internal/core/importer"
	recipecore "grocery-manager/internal/core/recipe"
	"grocery-manager/internal/infrastructure/config"
	"grocery-manager/internal/infrastructure/store"
	"grocery-manager/internal/pkg/common"
)

// Request body limit (1MB). Recipe text is the largest input.
const maxBodySize = 1 << 20

// SetupRouter builds the gin engine with all middleware, services and routes
// wired. The lists and saved recipes are loaded from the repository once here;
// the reconciler and recipe service own them from then on.
func SetupRouter(cfg *config.Config, repo store.Repository) *gin.Engine {
	common.LogInfo("starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("store_driver", cfg.Store.Driver),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// The AI response cache shares the repository's Redis connection; with the
	// memory driver or caching disabled it is nil and every call goes out.
	var cache *ai.Cache
	if cfg.Cache.Enabled {
		if r, ok := repo.(*store.Redis); ok {
			cache = ai.NewCache(r.Client(), cfg.Cache.TTL)
		}
	}
	client := ai.NewClient(cfg, cache)

	ctx := context.Background()
	reconciler := grocerycore.NewReconciler(repo, repo.LoadInHouse(ctx), repo.LoadShopping(ctx))
	recipes := recipecore.NewService(client, repo, repo.LoadRecipes(ctx))
	imports := importer.NewManager(client, reconciler)

	router.GET("/health", health.HealthCheck(cfg.App.Version))
	router.GET("/ready", health.ReadinessCheck(repo))
	router.GET("/live", health.LivenessCheck)

	handler := groceryHandler.NewHandler(reconciler, recipes, imports, repo)
	handler.RegisterRoutes(router.Group("/api/v1"))

	common.LogInfo("router setup completed",
		zap.Bool("cache_enabled", cache != nil),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.String("model", cfg.OpenRouter.Model),
	)

	return router
}
