// Package enrich implements one enrichment routine per directive-capable
// agent kind. Every enricher consumes the parsed directive fields, calls its
// external data source, and renders a user-facing reply string. Failures are
// restricted to the contract error taxonomy and converted to fallback
// strings by the registry, never propagated to the transport layer.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	contractx "agenthub/agent/contract"
)

const (
	defaultTimeout       = 15 * time.Second
	maxResponseSizeBytes = 2 << 20
	userAgent            = "agenthub-backend/1.0"
)

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// getJSON performs one GET and decodes the JSON body into out, mapping HTTP
// status classes onto the contract error taxonomy.
func getJSON(ctx context.Context, client *http.Client, rawURL string, headers map[string]string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", contractx.ErrUpstream, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", contractx.ErrUpstream, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSizeBytes))
	if err != nil {
		return fmt.Errorf("%w: read response: %v", contractx.ErrUpstream, err)
	}

	if err := classifyStatus(resp.StatusCode); err != nil {
		return err
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: decode response: %v", contractx.ErrUpstream, err)
	}
	return nil
}

func classifyStatus(code int) error {
	switch {
	case code >= http.StatusOK && code < http.StatusMultipleChoices:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return fmt.Errorf("%w: upstream rejected credential (status=%d)", contractx.ErrMissingCredential, code)
	case code == http.StatusNotFound:
		return contractx.ErrNotFound
	case code == http.StatusTooManyRequests:
		return contractx.ErrRateLimited
	default:
		return fmt.Errorf("%w: unexpected status=%d", contractx.ErrUpstream, code)
	}
}
