package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ssaharsh1/quoted-llmo/config"
	"github.com/ssaharsh1/quoted-llmo/models"
)

func testReport() (*models.AuditReport, *models.CrawlReport) {
	audit := &models.AuditReport{
		OverallScore: 64,
		Verdict:      models.VerdictNeedsImprovement,
		Summary:      "deterministic summary",
		Strengths:    []string{"deterministic strength"},
	}
	crawl := &models.CrawlReport{PostURL: "https://example.com/post"}
	return audit, crawl
}

func fakeProvider(t *testing.T, status int, narrative string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("authorization = %q", auth)
		}

		if status != http.StatusOK {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": {"message": "nope"}}`))
			return
		}

		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": narrative}},
			},
		}
		json.NewEncoder(w).Encode(resp)
	}))
}

func clientFor(srv *httptest.Server) *Client {
	return NewClient(config.LLMConfig{
		APIKey:  "test-key",
		Model:   "gpt-4o-mini",
		BaseURL: srv.URL,
	})
}

func TestEnrich_ReplacesNarrative(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK,
		`{"summary": "model summary", "strengths": ["model strength"], "opportunities": ["model opportunity"]}`)
	defer srv.Close()

	audit, crawl := testReport()
	clientFor(srv).Enrich(context.Background(), audit, crawl, "# excerpt", "gptbot")

	if audit.Summary != "model summary" {
		t.Errorf("summary = %q, want model rewrite", audit.Summary)
	}
	if len(audit.Strengths) != 1 || audit.Strengths[0] != "model strength" {
		t.Errorf("strengths = %v", audit.Strengths)
	}
	if audit.OverallScore != 64 {
		t.Error("scores must never change")
	}
}

func TestEnrich_ProviderErrorDegrades(t *testing.T) {
	srv := fakeProvider(t, http.StatusUnauthorized, "")
	defer srv.Close()

	audit, crawl := testReport()
	clientFor(srv).Enrich(context.Background(), audit, crawl, "", "gptbot")

	if audit.Summary != "deterministic summary" {
		t.Errorf("summary = %q, failure must keep deterministic prose", audit.Summary)
	}
}

func TestEnrich_InvalidJSONDegrades(t *testing.T) {
	srv := fakeProvider(t, http.StatusOK, "not json at all")
	defer srv.Close()

	audit, crawl := testReport()
	clientFor(srv).Enrich(context.Background(), audit, crawl, "", "gptbot")

	if audit.Summary != "deterministic summary" {
		t.Errorf("summary = %q, bad model output must keep deterministic prose", audit.Summary)
	}
}

func TestEnrich_DisabledClientIsNoOp(t *testing.T) {
	audit, crawl := testReport()

	client := NewClient(config.LLMConfig{})
	if client.Enabled() {
		t.Fatal("client without an API key should be disabled")
	}
	client.Enrich(context.Background(), audit, crawl, "", "gptbot")

	if audit.Summary != "deterministic summary" {
		t.Error("disabled client should not touch the report")
	}
}

func TestClassifyLLMError(t *testing.T) {
	cases := []struct {
		status int
		code   string
	}{
		{http.StatusUnauthorized, models.ErrCodeLLMAuthFailure},
		{http.StatusForbidden, models.ErrCodeLLMAuthFailure},
		{http.StatusTooManyRequests, models.ErrCodeLLMRateLimited},
		{http.StatusInternalServerError, models.ErrCodeLLMFailure},
	}
	for _, tc := range cases {
		err := classifyLLMError(tc.status, []byte(`{"error": {"message": "m"}}`))
		if err.Code != tc.code {
			t.Errorf("status %d: code = %q, want %q", tc.status, err.Code, tc.code)
		}
	}
}
