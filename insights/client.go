// Package insights optionally rewrites the deterministic audit prose with an
// OpenAI-compatible model. The numeric scores are never touched: the model
// only gets to rephrase the summary and the strengths/opportunities lists,
// and any failure leaves the deterministic prose in place.
package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/models"
)

// Narrative is the structured output requested from the model.
type Narrative struct {
	Summary       string   `json:"summary"`
	Strengths     []string `json:"strengths"`
	Opportunities []string `json:"opportunities"`
}

// Client is a lightweight OpenAI-compatible chat client. It uses net/http
// directly, no provider SDK.
type Client struct {
	httpClient *http.Client
	cfg        config.LLMConfig
}

func NewClient(cfg config.LLMConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cfg:        cfg,
	}
}

// Enabled reports whether an API key is configured. A disabled client makes
// Enrich a no-op so callers need no branching.
func (c *Client) Enabled() bool {
	return c != nil && c.cfg.APIKey != ""
}

// Enrich asks the model to rewrite the report's narrative fields using the
// crawl evidence and a content excerpt. On any failure the report is
// returned unmodified; an audit never fails because the LLM did.
func (c *Client) Enrich(ctx context.Context, report *models.AuditReport, crawl *models.CrawlReport, excerpt, profile string) {
	if !c.Enabled() {
		return
	}

	narrative, err := c.generate(ctx, report, crawl, excerpt, profile)
	if err != nil {
		slog.Warn("insights: narrative generation failed, keeping deterministic prose",
			"url", crawl.PostURL, "error", err,
		)
		return
	}

	if narrative.Summary != "" {
		report.Summary = narrative.Summary
	}
	if len(narrative.Strengths) > 0 {
		report.Strengths = narrative.Strengths
	}
	if len(narrative.Opportunities) > 0 {
		report.Opportunities = narrative.Opportunities
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) generate(ctx context.Context, report *models.AuditReport, crawl *models.CrawlReport, excerpt, profile string) (*Narrative, error) {
	userPrompt, err := buildUserPrompt(report, crawl, excerpt, profile)
	if err != nil {
		return nil, err
	}

	reqBody := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature:    0,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeLLMFailure, "LLM request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, models.NewAuditError(models.ErrCodeLLMFailure, "failed to read LLM response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyLLMError(resp.StatusCode, respBody)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return nil, models.NewAuditError(models.ErrCodeLLMFailure, "failed to parse LLM response", err)
	}
	if len(chatResp.Choices) == 0 {
		return nil, models.NewAuditError(models.ErrCodeLLMFailure, "LLM returned no choices", nil)
	}

	var narrative Narrative
	if err := json.Unmarshal([]byte(chatResp.Choices[0].Message.Content), &narrative); err != nil {
		return nil, models.NewAuditError(models.ErrCodeLLMFailure, "LLM returned invalid narrative JSON", err)
	}
	return &narrative, nil
}

const systemPrompt = `You are an expert in LLM optimization (LLMO): making web content discoverable and citable by AI assistants. You will receive an audit of a web page with deterministic scores, plus an excerpt of the page content.

Rewrite the narrative parts of the audit in clear, specific prose grounded in the evidence. Return ONLY a JSON object with this shape:

{"summary": "...", "strengths": ["..."], "opportunities": ["..."]}

Rules:
- Do not change, restate, or invent any scores or numbers beyond those given.
- Keep strengths and opportunities to at most 5 items each, most important first.
- Refer to concrete details from the page excerpt where relevant.`

func buildUserPrompt(report *models.AuditReport, crawl *models.CrawlReport, excerpt, profile string) (string, error) {
	evidence := map[string]any{
		"url":                crawl.PostURL,
		"crawled_as":         profile,
		"overall_score":      report.OverallScore,
		"verdict":            report.Verdict,
		"categories":         report.Categories,
		"technical_insights": report.Insights,
		"draft_summary":      report.Summary,
	}
	evidenceJSON, err := json.MarshalIndent(evidence, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal evidence: %w", err)
	}

	var b strings.Builder
	b.WriteString("Audit evidence:\n")
	b.Write(evidenceJSON)
	if excerpt != "" {
		b.WriteString("\n\nPage content excerpt (Markdown):\n")
		b.WriteString(excerpt)
	}
	return b.String(), nil
}

// classifyLLMError maps provider status codes to audit error codes.
func classifyLLMError(statusCode int, body []byte) *models.AuditError {
	var errResp chatErrorResponse
	msg := "LLM API error"
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		msg = errResp.Error.Message
	}

	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return models.NewAuditError(models.ErrCodeLLMAuthFailure, msg, nil)
	case http.StatusTooManyRequests:
		return models.NewAuditError(models.ErrCodeLLMRateLimited, msg, nil)
	default:
		return models.NewAuditError(models.ErrCodeLLMFailure, fmt.Sprintf("LLM API returned %d: %s", statusCode, msg), nil)
	}
}
