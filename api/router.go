package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ssaharsh1/quoted-llmo/api/handler"
	"github.com/ssaharsh1/quoted-llmo/api/middleware"
	"github.com/ssaharsh1/quoted-llmo/cache"
	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/content"
	"github.com/ssaharsh1/quoted-llmo/crawler"
	"github.com/ssaharsh1/quoted-llmo/insights"
)

// Version is the API version reported by the health endpoint.
const Version = "0.1.0"

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//	API:     Auth (if enabled) → RateLimit
//
// Health endpoint is intentionally outside auth so monitoring probes always work.
func NewRouter(cr *crawler.Crawler, ex *content.Excerpter, ins *insights.Client, cc cache.Store, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gin.Logger())

	v1 := r.Group("/api/v1")

	// Health is always open.
	v1.GET("/health", handler.Health(startTime, Version))

	// Everything else goes through auth and rate limiting.
	protected := v1.Group("")
	if cfg.Auth.Enabled {
		protected.Use(middleware.Auth(cfg.Auth.APIKeys))
	}
	protected.Use(middleware.RateLimit(cfg.RateLimit))

	// Audit: full crawl + score pipeline.
	protected.GET("/audit", handler.Audit(cr, ex, ins, cc, cfg))

	// Crawl: raw signal report without scoring.
	protected.GET("/crawl", handler.Crawl(cr, cfg))

	// Batch
	protected.POST("/batch/audit", handler.PostBatch(cr, ex, ins, cc, cfg))
	protected.GET("/batch/:id", handler.GetBatch())

	return r
}
