package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ssaharsh1/quoted-llmo/cache"
	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/content"
	"github.com/ssaharsh1/quoted-llmo/crawler"
	"github.com/ssaharsh1/quoted-llmo/insights"
	"github.com/ssaharsh1/quoted-llmo/models"
	"github.com/ssaharsh1/quoted-llmo/score"
)

// Audit returns the handler for GET /api/v1/audit.
//
// Pipeline per request:
//  1. Validate the url query parameter, normalize the user-agent profile.
//  2. Cache lookup; a hit short-circuits the crawl (X-Cache: HIT).
//  3. Crawl → extract → score.
//  4. Optional LLM narrative enrichment (failures degrade silently).
//  5. Cache store, respond 200.
func Audit(cr *crawler.Crawler, ex *content.Excerpter, ins *insights.Client, cc cache.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawURL := c.Query("url")
		if rawURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'url' parameter"})
			return
		}
		profile := crawler.NormalizeProfile(c.Query("user-agent"))

		key := cache.Key(rawURL, profile)
		if cached, hit := cc.Get(key); hit {
			c.Header("X-Cache", "HIT")
			c.JSON(http.StatusOK, cached)
			return
		}
		c.Header("X-Cache", "MISS")

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Crawler.AuditTimeout)
		defer cancel()

		report, err := auditOne(ctx, cr, ex, ins, rawURL, profile)
		if err != nil {
			respondError(c, err)
			return
		}

		cc.Put(key, report, cfg.Cache.TTL)
		c.JSON(http.StatusOK, report)
	}
}

// Crawl returns the handler for GET /api/v1/crawl. It runs the crawl and
// extraction stages only, returning the raw signal report without scores.
func Crawl(cr *crawler.Crawler, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawURL := c.Query("url")
		if rawURL == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing 'url' parameter"})
			return
		}
		profile := crawler.NormalizeProfile(c.Query("user-agent"))

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Crawler.AuditTimeout)
		defer cancel()

		result, err := cr.Crawl(ctx, rawURL, profile)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, result.Report)
	}
}

// auditOne runs the full audit pipeline for a single URL. Shared by the
// audit handler and batch workers.
func auditOne(ctx context.Context, cr *crawler.Crawler, ex *content.Excerpter, ins *insights.Client, rawURL, profile string) (*models.AuditReport, error) {
	result, err := cr.Crawl(ctx, rawURL, profile)
	if err != nil {
		return nil, err
	}

	report := score.Score(result.Report, profile)

	if ins.Enabled() {
		excerpt := ex.Excerpt(result.RawHTML, result.Report.FinalURL)
		ins.Enrich(ctx, report, result.Report, excerpt, profile)
	}
	return report, nil
}

// respondError maps an AuditError to its HTTP status and writes the
// {"error": message} body every failure shares.
func respondError(c *gin.Context, err error) {
	auditErr, ok := err.(*models.AuditError)
	if !ok {
		auditErr = models.NewAuditError(models.ErrCodeInternal, err.Error(), err)
	}
	c.JSON(mapErrorToStatus(auditErr), gin.H{"error": auditErr.Message})
}

// mapErrorToStatus translates error codes to HTTP status codes.
func mapErrorToStatus(e *models.AuditError) int {
	switch e.Code {
	case models.ErrCodeInvalidInput:
		return http.StatusBadRequest // 400
	case models.ErrCodeTimeout:
		return http.StatusGatewayTimeout // 504
	case models.ErrCodeNetwork, models.ErrCodeUpstream, models.ErrCodePayloadTooLarge:
		return http.StatusBadGateway // 502
	case models.ErrCodeRateLimited:
		return http.StatusTooManyRequests // 429
	case models.ErrCodeUnauthorized:
		return http.StatusUnauthorized // 401
	default:
		return http.StatusInternalServerError // 500
	}
}
