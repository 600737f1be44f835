package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/extract"
	"github.com/ssaharsh1/quoted-llmo/models"
)

// Crawler runs the full crawl pipeline for one page: redirect resolution,
// bounded retrieval, auxiliary probes, and signal extraction. It holds no
// per-request state and is safe for concurrent use.
type Crawler struct {
	client *http.Client
	cfg    config.CrawlerConfig
}

// New creates a Crawler with a Chrome-fingerprint HTTP client and manual
// redirect handling.
func New(cfg config.CrawlerConfig) *Crawler {
	return &Crawler{
		client: newClient(),
		cfg:    cfg,
	}
}

// Result bundles the structured report with the raw document so callers can
// feed the page text to the insights collaborator without refetching.
type Result struct {
	Report  *models.CrawlReport
	RawHTML string
}

// Crawl fetches rawURL under the given identity profile and returns the full
// signal report. Fatal failures (bad input, network, timeout, terminal
// non-2xx, oversized document) return a typed *models.AuditError; extraction
// anomalies such as malformed JSON-LD never fail the crawl.
func (c *Crawler) Crawl(ctx context.Context, rawURL, profile string) (*Result, error) {
	target, err := url.Parse(rawURL)
	if err != nil || (target.Scheme != "http" && target.Scheme != "https") || target.Host == "" {
		return nil, models.NewAuditError(models.ErrCodeInvalidInput, "target must be an absolute http(s) URL", err)
	}

	headers := IdentityHeaders(profile)

	fetchCtx, cancel := context.WithTimeout(ctx, c.cfg.Deadline)
	defer cancel()

	chain, resp, err := resolve(fetchCtx, c.client, rawURL, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, models.NewUpstreamError(resp.StatusCode)
	}

	// Read at most cap+1 bytes: a document of exactly the cap passes, one
	// byte over is rejected outright rather than truncated.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.cfg.MaxBodyBytes+1))
	if err != nil {
		return nil, timeoutOrNetwork(err)
	}
	if int64(len(body)) > c.cfg.MaxBodyBytes {
		return nil, models.NewAuditError(models.ErrCodePayloadTooLarge,
			fmt.Sprintf("document exceeds the %d byte analysis cap", c.cfg.MaxBodyBytes), nil)
	}

	finalURL := resp.Request.URL
	origin := finalURL.Scheme + "://" + finalURL.Host

	// Probe robots.txt and llms.txt against the resolved origin. The two
	// probes are independent of each other and of the already-fetched main
	// document, so they run concurrently.
	var robotsTxt, llmsTxt string
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		robotsTxt = c.probe(ctx, origin, "/robots.txt", headers)
	}()
	go func() {
		defer wg.Done()
		llmsTxt = c.probe(ctx, origin, "/llms.txt", headers)
	}()
	wg.Wait()

	llmsStatus := models.LLMsFound
	if llmsTxt == probeNotFound || llmsTxt == probeError {
		llmsStatus = models.LLMsNotFound
	}

	html := string(body)
	sig := extract.Extract(html)
	ai, llmo := extract.Analyze(sig, robotsTxt, llmsStatus == models.LLMsFound)

	slog.Debug("crawl complete",
		"url", rawURL,
		"finalURL", finalURL.String(),
		"hops", len(chain),
		"bytes", len(body),
		"llmsStatus", llmsStatus,
	)

	return &Result{
		Report: &models.CrawlReport{
			PostURL:          rawURL,
			FinalURL:         finalURL.String(),
			RedirectChain:    chain,
			RobotsTxt:        robotsTxt,
			LLMsStatus:       llmsStatus,
			Metadata:         sig.Metadata,
			Headings:         sig.Headings,
			SchemaTypes:      sig.SchemaTypes,
			ContentStructure: sig.ContentStructure,
			LinkAnalysis:     sig.LinkAnalysis,
			AIAccessibility:  ai,
			LLMOAnalysis:     llmo,
		},
		RawHTML: html,
	}, nil
}

func (c *Crawler) probe(ctx context.Context, origin, path string, headers map[string]string) string {
	probeCtx, cancel := context.WithTimeout(ctx, c.cfg.ProbeTimeout)
	defer cancel()
	return probeText(probeCtx, c.client, origin, path, headers)
}
