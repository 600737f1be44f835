// quoted-llmo-mcp exposes the audit API as MCP tools over stdio, so AI
// assistants can audit pages directly.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// auditSummary mirrors the audit API response fields worth surfacing.
type auditSummary struct {
	OverallScore  int    `json:"overall_score"`
	Verdict       string `json:"verdict"`
	Summary       string `json:"summary"`
	Strengths     []string
	Opportunities []string
	PriorityFixes []struct {
		Title      string `json:"title"`
		Impact     string `json:"impact"`
		Difficulty string `json:"difficulty"`
	} `json:"priority_fixes"`
	Categories map[string]struct {
		Name   string `json:"name"`
		Score  int    `json:"score"`
		Status string `json:"status"`
	} `json:"categories"`
}

type errorBody struct {
	Error string `json:"error"`
}

type batchResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type batchStatusResponse struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	Total      int    `json:"total"`
	Successful int    `json:"successful"`
	Failed     int    `json:"failed"`
	Results    []struct {
		URL    string          `json:"url"`
		Result json.RawMessage `json:"result"`
		Error  string          `json:"error"`
	} `json:"results"`
}

const profileEnumDescription = "Crawl identity: 'llm-comprehensive' (default), 'chrome', 'googlebot', 'gptbot', 'bingbot', 'perplexitybot', 'claude', or 'gemini'"

func main() {
	apiURL := os.Getenv("QUOTED_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:8080"
	}
	apiKey := os.Getenv("QUOTED_API_KEY")

	s := server.NewMCPServer(
		"quoted-llmo",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	auditTool := mcp.NewTool("audit_url",
		mcp.WithDescription("Audit a web page for AI citability: crawls the page, checks robots.txt/llms.txt, schema markup, and content structure, and returns a 0-100 score with prioritized fixes."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to audit"),
		),
		mcp.WithString("user_agent",
			mcp.Description(profileEnumDescription),
			mcp.Enum("llm-comprehensive", "chrome", "googlebot", "gptbot", "bingbot", "perplexitybot", "claude", "gemini"),
		),
	)
	s.AddTool(auditTool, handleAuditURL(apiURL, apiKey))

	crawlTool := mcp.NewTool("crawl_url",
		mcp.WithDescription("Crawl a web page as a chosen AI crawler identity and return the raw extracted signals (redirects, metadata, headings, schema types, link analysis) without scoring."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL of the page to crawl"),
		),
		mcp.WithString("user_agent",
			mcp.Description(profileEnumDescription),
			mcp.Enum("llm-comprehensive", "chrome", "googlebot", "gptbot", "bingbot", "perplexitybot", "claude", "gemini"),
		),
	)
	s.AddTool(crawlTool, handleCrawlURL(apiURL, apiKey))

	batchTool := mcp.NewTool("batch_audit",
		mcp.WithDescription("Audit multiple URLs (up to 10) and return the score for each. Waits for the batch to finish."),
		mcp.WithArray("urls",
			mcp.Required(),
			mcp.Description("List of URLs to audit"),
		),
		mcp.WithString("user_agent",
			mcp.Description(profileEnumDescription),
			mcp.Enum("llm-comprehensive", "chrome", "googlebot", "gptbot", "bingbot", "perplexitybot", "claude", "gemini"),
		),
	)
	s.AddTool(batchTool, handleBatchAudit(apiURL, apiKey))

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

// apiGet performs an authenticated GET against the audit API.
func apiGet(ctx context.Context, client *http.Client, apiURL, apiKey, path string, query url.Values) ([]byte, int, error) {
	endpoint := apiURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// apiError extracts the {"error": ...} body message, or a generic fallback.
func apiError(body []byte, status int) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Error != "" {
		return eb.Error
	}
	return fmt.Sprintf("API returned status %d", status)
}

func handleAuditURL(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		query := url.Values{"url": {target}}
		if ua := request.GetString("user_agent", ""); ua != "" {
			query.Set("user-agent", ua)
		}

		body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/v1/audit", query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(apiError(body, status)), nil
		}

		var audit auditSummary
		if err := json.Unmarshal(body, &audit); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("failed to parse audit response: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Score: %d/100 (%s)\n\n%s\n", audit.OverallScore, audit.Verdict, audit.Summary)
		if len(audit.Categories) > 0 {
			sb.WriteString("\nCategories:\n")
			for _, cat := range audit.Categories {
				fmt.Fprintf(&sb, "- %s: %d (%s)\n", cat.Name, cat.Score, cat.Status)
			}
		}
		if len(audit.PriorityFixes) > 0 {
			sb.WriteString("\nPriority fixes:\n")
			for _, fix := range audit.PriorityFixes {
				fmt.Fprintf(&sb, "- %s (impact: %s, difficulty: %s)\n", fix.Title, fix.Impact, fix.Difficulty)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func handleCrawlURL(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 120 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		target, err := request.RequireString("url")
		if err != nil {
			return mcp.NewToolResultError("url is required"), nil
		}

		query := url.Values{"url": {target}}
		if ua := request.GetString("user_agent", ""); ua != "" {
			query.Set("user-agent", ua)
		}

		body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/v1/crawl", query)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if status != http.StatusOK {
			return mcp.NewToolResultError(apiError(body, status)), nil
		}

		// The crawl report is already structured JSON; pretty-print it.
		var pretty bytes.Buffer
		if err := json.Indent(&pretty, body, "", "  "); err != nil {
			pretty.Write(body)
		}
		return mcp.NewToolResultText(pretty.String()), nil
	}
}

func handleBatchAudit(apiURL, apiKey string) server.ToolHandlerFunc {
	client := &http.Client{Timeout: 600 * time.Second}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		urls, err := request.RequireStringSlice("urls")
		if err != nil {
			return mcp.NewToolResultError("urls is required and must be an array of strings"), nil
		}

		payload := map[string]any{"urls": urls}
		if ua := request.GetString("user_agent", ""); ua != "" {
			payload["user_agent"] = ua
		}

		reqBody, err := json.Marshal(payload)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("marshal request: %v", err)), nil
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL+"/api/v1/batch/audit", bytes.NewReader(reqBody))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("create request: %v", err)), nil
		}
		httpReq.Header.Set("Content-Type", "application/json")
		if apiKey != "" {
			httpReq.Header.Set("X-API-Key", apiKey)
		}

		resp, err := client.Do(httpReq)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("batch request failed: %v", err)), nil
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("read batch response: %v", err)), nil
		}
		if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusOK {
			return mcp.NewToolResultError(apiError(body, resp.StatusCode)), nil
		}

		var batchResp batchResponse
		if err := json.Unmarshal(body, &batchResp); err != nil || batchResp.ID == "" {
			return mcp.NewToolResultError("batch job creation failed"), nil
		}

		statusResp, err := pollBatch(ctx, client, apiURL, apiKey, batchResp.ID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("polling batch job failed: %v", err)), nil
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Batch %s: %s (%d ok, %d failed of %d)\n\n",
			statusResp.ID, statusResp.Status, statusResp.Successful, statusResp.Failed, statusResp.Total)

		for i, res := range statusResp.Results {
			if res.Error != "" {
				fmt.Fprintf(&sb, "--- [%d] %s FAILED: %s ---\n\n", i+1, res.URL, res.Error)
				continue
			}
			var audit auditSummary
			if err := json.Unmarshal(res.Result, &audit); err != nil {
				fmt.Fprintf(&sb, "--- [%d] %s: parse error ---\n\n", i+1, res.URL)
				continue
			}
			fmt.Fprintf(&sb, "--- [%d] %s: %d/100 (%s) ---\n%s\n\n",
				i+1, res.URL, audit.OverallScore, audit.Verdict, audit.Summary)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// pollBatch polls the batch endpoint every 2 seconds until the job leaves
// "processing" or the context is cancelled.
func pollBatch(ctx context.Context, client *http.Client, apiURL, apiKey, id string) (*batchStatusResponse, error) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			body, status, err := apiGet(ctx, client, apiURL, apiKey, "/api/v1/batch/"+id, nil)
			if err != nil {
				return nil, err
			}
			if status != http.StatusOK {
				return nil, fmt.Errorf("%s", apiError(body, status))
			}

			var statusResp batchStatusResponse
			if err := json.Unmarshal(body, &statusResp); err != nil {
				return nil, fmt.Errorf("parse poll status: %w", err)
			}
			if statusResp.Status != "processing" {
				return &statusResp, nil
			}
		}
	}
}
