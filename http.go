package mdview

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// FetchRequest configures Fetch.
type FetchRequest struct {
	URL    string
	Client *http.Client
}

// Fetch opens a markdown document over HTTP(S). The caller closes the
// returned body.
func Fetch(ctx context.Context, req FetchRequest) (io.ReadCloser, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("fetch: URL is required")
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
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("fetch: unsupported scheme %q", httpReq.URL.Scheme)
	}
	httpReq.Header.Set("Accept", "text/markdown, text/plain;q=0.9, */*;q=0.1")
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch: request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("fetch: status %s", resp.Status)
	}
	return resp.Body, nil
}

// HTTPRenderRequest configures HTTPRender.
type HTTPRenderRequest struct {
	URL     string
	Client  *http.Client
	Sink    Sink
	Options []RenderOption
}

// HTTPRender fetches markdown over HTTP(S) and renders it to Sink. The
// document is fully downloaded before the pass starts.
func HTTPRender(ctx context.Context, req HTTPRenderRequest) error {
	if req.Sink == nil {
		return fmt.Errorf("http render: sink is nil")
	}
	body, err := Fetch(ctx, FetchRequest{URL: req.URL, Client: req.Client})
	if err != nil {
		return fmt.Errorf("http render: %w", err)
	}
	defer body.Close()
	return Render(RenderRequest{
		Reader:  body,
		Sink:    req.Sink,
		Options: req.Options,
	})
}
