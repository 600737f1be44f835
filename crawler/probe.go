package crawler

import (
	"context"
	"io"
	"net/http"
)

// Sentinel values returned by probeText. Downstream scoring treats "missing"
// and "errored" as distinct-but-similar low-credit cases; neither aborts the
// audit, which is why these are strings and not error values.
const (
	probeNotFound = "NOT FOUND"
	probeError    = "ERROR"
)

// maxProbeBytes caps robots.txt/llms.txt reads. Real files are tiny; the cap
// only guards against a misconfigured origin serving something huge.
const maxProbeBytes = 1 << 20

// probeText fetches origin+path with the same identity headers as the main
// crawl and returns the body on 2xx, "NOT FOUND" on any other status, and
// "ERROR" on any network or timeout failure.
func probeText(ctx context.Context, client *http.Client, origin, path string, headers map[string]string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, origin+path, nil)
	if err != nil {
		return probeError
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return probeError
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return probeNotFound
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBytes))
	if err != nil {
		return probeError
	}
	return string(body)
}
