package lexflow

import (
	"context"
	"fmt"
	"net/http"
)

// HTTPScanRequest configures HTTPScan.
type HTTPScanRequest struct {
	URL      string
	Client   *http.Client
	Listener Listener
	Tokens   []*Token
	Options  []Option
	Validate bool
	Sanitize bool
}

// HTTPScan fetches text over HTTP(S) and scans it.
func HTTPScan(ctx context.Context, req HTTPScanRequest) error {
	if req.URL == "" {
		return fmt.Errorf("scan http: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return fmt.Errorf("scan http: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return fmt.Errorf("scan http: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("scan http: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("scan http: status %s", resp.Status)
	}
	return Scan(ScanRequest{
		Reader:   resp.Body,
		Listener: req.Listener,
		Tokens:   req.Tokens,
		Options:  req.Options,
		Validate: req.Validate,
		Sanitize: req.Sanitize,
	})
}
