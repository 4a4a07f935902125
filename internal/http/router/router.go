package router

import (
	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/localhire/internal/config"
	"github.com/ignatzorin/localhire/internal/http/handlers"
	"github.com/ignatzorin/localhire/internal/http/middleware"
)

// Handlers собирает все хэндлеры API.
type Handlers struct {
	Health      *handlers.HealthHandler
	Catalog     *handlers.CatalogHandler
	Submissions *handlers.SubmissionHandler
	Live        *handlers.LiveHandler
}

func SetupRouter(cfg *config.Config, h Handlers) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", h.Health.Health)
	r.StaticFS("/media", gin.Dir(cfg.MediaStoragePath, false))

	api := r.Group("/api")
	submitLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	validateID := middleware.UUIDValidator("id")

	api.GET("/catalog/options", h.Catalog.Options)

	jobs := api.Group("/jobs")
	{
		jobs.GET("", h.Catalog.ListJobs)
		jobs.GET("/:id", validateID, h.Catalog.GetJob)
		jobs.POST("", submitLimit, h.Submissions.PostJob)
		jobs.POST("/:id/applications", validateID, submitLimit, h.Submissions.ApplyToJob)
	}

	artisans := api.Group("/artisans")
	{
		artisans.GET("", h.Catalog.ListArtisans)
		artisans.GET("/featured", h.Catalog.FeaturedArtisans)
		artisans.GET("/:id", validateID, h.Catalog.GetArtisan)
		artisans.POST("/:id/hire", validateID, submitLimit, h.Submissions.HireArtisan)
	}

	products := api.Group("/products")
	{
		products.GET("", h.Catalog.ListProducts)
		products.GET("/featured", h.Catalog.FeaturedProducts)
		products.GET("/:id", validateID, h.Catalog.GetProduct)
		products.POST("", submitLimit, h.Submissions.PostProduct)
		products.POST("/:id/purchase", validateID, submitLimit, h.Submissions.PurchaseProduct)
	}

	api.POST("/waitlist", submitLimit, h.Submissions.JoinWaitlist)
	api.GET("/live/:kind", h.Live.Handle)

	return r
}
