package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shelfscout/shelfscout/api/handler"
	"github.com/shelfscout/shelfscout/api/middleware"
	"github.com/shelfscout/shelfscout/config"
	"github.com/shelfscout/shelfscout/orchestrator"
	"github.com/shelfscout/shelfscout/store"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     RateLimit
//
// Health and metrics endpoints sit outside the rate limiter so monitoring
// probes always work.
func NewRouter(o *orchestrator.Orchestrator, records *store.ExtractionStore, catalog *store.Catalog, gatherer prometheus.Gatherer, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	v1.GET("/health", handler.Health(startTime))
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	limited := v1.Group("")
	limited.Use(middleware.RateLimit(cfg.RateLimit))

	// Catalog
	limited.POST("/products", handler.RegisterProduct(catalog))
	limited.GET("/products/:id", handler.GetProduct(catalog))
	limited.POST("/users", handler.RegisterUser(catalog))
	limited.POST("/feedback", handler.SubmitFeedback(catalog))
	limited.GET("/feedback", handler.FeedbackByProduct(catalog))

	// Extraction
	limited.POST("/scrape/reviews", handler.ScrapeReviews(o))
	limited.POST("/scrape/products", handler.ScrapeProducts(o))

	// Queries over the extraction store
	limited.GET("/reviews", handler.ReviewsByProduct(records))
	limited.GET("/products/scraped", handler.ProductsBySource(records))

	return r
}
