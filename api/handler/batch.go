package handler

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ssaharsh1/quoted-llmo/cache"
	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/content"
	"github.com/ssaharsh1/quoted-llmo/crawler"
	"github.com/ssaharsh1/quoted-llmo/insights"
	"github.com/ssaharsh1/quoted-llmo/models"
	"github.com/ssaharsh1/quoted-llmo/webhook"
)

// batchStore holds all in-flight and completed batch jobs.
var batchStore sync.Map

func init() {
	// Background goroutine to expire batch jobs older than 1 hour.
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			cutoff := time.Now().Add(-1 * time.Hour).Unix()
			batchStore.Range(func(key, value any) bool {
				job := value.(*models.BatchJob)
				if job.CreatedAt < cutoff {
					batchStore.Delete(key)
				}
				return true
			})
		}
	}()
}

// PostBatch returns the handler for POST /api/v1/batch/audit. It validates
// the request, registers a job, and audits the URLs in the background.
func PostBatch(cr *crawler.Crawler, ex *content.Excerpter, ins *insights.Client, cc cache.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.BatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if len(req.URLs) > cfg.Batch.MaxURLs {
			c.JSON(http.StatusBadRequest, gin.H{"error": "too many URLs in batch"})
			return
		}
		profile := crawler.NormalizeProfile(req.UserAgent)

		jobID := "batch-" + randomID()
		job := &models.BatchJob{
			ID:        jobID,
			Status:    "processing",
			Total:     len(req.URLs),
			Results:   make([]*models.BatchResult, len(req.URLs)),
			CreatedAt: time.Now().Unix(),
		}
		batchStore.Store(jobID, job)

		go runBatch(cr, ex, ins, cc, cfg, job, req.URLs, profile)

		c.JSON(http.StatusAccepted, models.BatchResponse{
			ID:     jobID,
			Status: job.Status,
			Total:  job.Total,
		})
	}
}

// GetBatch returns the handler for GET /api/v1/batch/:id.
func GetBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		val, ok := batchStore.Load(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "batch job not found"})
			return
		}

		job := val.(*models.BatchJob)
		c.JSON(http.StatusOK, job.Snapshot())
	}
}

// runBatch audits every URL in the job, concurrency limited by a semaphore.
// Each URL succeeds or fails independently.
func runBatch(cr *crawler.Crawler, ex *content.Excerpter, ins *insights.Client, cc cache.Store, cfg *config.Config, job *models.BatchJob, urls []string, profile string) {
	maxConcurrent := cfg.Batch.Concurrency
	if maxConcurrent <= 0 {
		maxConcurrent = 3
	}
	sem := make(chan struct{}, maxConcurrent)

	var wg sync.WaitGroup
	var successful, failed atomic.Int32

	for i, rawURL := range urls {
		wg.Add(1)
		go func(idx int, targetURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			ctx, cancel := context.WithTimeout(context.Background(), cfg.Crawler.AuditTimeout)
			defer cancel()

			res := &models.BatchResult{URL: targetURL}

			key := cache.Key(targetURL, profile)
			if cached, hit := cc.Get(key); hit {
				res.Report = cached
				successful.Add(1)
				job.SetResult(idx, res)
				return
			}

			report, err := auditOne(ctx, cr, ex, ins, targetURL, profile)
			if err != nil {
				res.Error = err.Error()
				failed.Add(1)
			} else {
				res.Report = report
				cc.Put(key, report, cfg.Cache.TTL)
				successful.Add(1)
			}
			job.SetResult(idx, res)
		}(i, rawURL)
	}

	wg.Wait()

	ok := int(successful.Load())
	bad := int(failed.Load())
	var status string
	switch {
	case bad == job.Total:
		status = "failed"
	case bad > 0:
		status = "partial"
	default:
		status = "completed"
	}
	job.Finish(status, ok, bad)

	slog.Info("batch job finished",
		"id", job.ID,
		"status", status,
		"successful", ok,
		"failed", bad,
		"total", job.Total,
	)

	if cfg.Webhook.URL != "" {
		final := job.Snapshot()
		final.Results = nil
		webhook.DeliverAsync(cfg.Webhook.URL, cfg.Webhook.Secret, &webhook.Event{
			Type:      "batch.completed",
			JobID:     job.ID,
			Timestamp: time.Now().Unix(),
			Data:      final,
		})
	}
}

// randomID generates a short random hex string for job IDs.
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
