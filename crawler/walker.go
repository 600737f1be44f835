package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/ssaharsh1/quoted-llmo/models"
)

// resolve follows redirects from rawURL until a terminal response, recording
// every hop. Each Location header is resolved against the current URL, so
// relative redirects work. The loop is bounded only by ctx's deadline: a
// redirect cycle terminates with ErrCodeTimeout when the deadline expires,
// and the partial chain is discarded.
//
// On success the returned response's body is still open; the caller owns it.
func resolve(ctx context.Context, client *http.Client, rawURL string, headers map[string]string) ([]models.RedirectHop, *http.Response, error) {
	current := rawURL
	var chain []models.RedirectHop

	for {
		if err := ctx.Err(); err != nil {
			return nil, nil, timeoutOrNetwork(err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, current, nil)
		if err != nil {
			return nil, nil, models.NewAuditError(models.ErrCodeInvalidInput, "invalid URL: "+current, err)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := client.Do(req)
		if err != nil {
			return nil, nil, timeoutOrNetwork(err)
		}

		chain = append(chain, models.RedirectHop{URL: current, Status: resp.StatusCode})

		if resp.StatusCode >= 300 && resp.StatusCode < 400 {
			loc := resp.Header.Get("Location")
			if loc == "" {
				// Redirect status without a Location header: treat the
				// current response as terminal.
				return chain, resp, nil
			}
			next, err := url.Parse(loc)
			if err != nil {
				return chain, resp, nil
			}
			base, err := url.Parse(current)
			if err != nil {
				return chain, resp, nil
			}
			resp.Body.Close()
			current = base.ResolveReference(next).String()
			continue
		}

		return chain, resp, nil
	}
}

// timeoutOrNetwork classifies a fetch failure: deadline expiry becomes a
// timeout error, everything else (DNS, connection, TLS) a network error.
func timeoutOrNetwork(err error) *models.AuditError {
	if errors.Is(err, context.DeadlineExceeded) {
		return models.NewAuditError(models.ErrCodeTimeout, "crawl deadline exceeded while following redirects", err)
	}
	return models.NewAuditError(models.ErrCodeNetwork, "failed to reach the target site", err)
}
