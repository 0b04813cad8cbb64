package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ppiankov/supplycheck/internal/model"
	"github.com/ppiankov/supplycheck/internal/util"
)

// Fetcher fetches JSON master data from URLs
type Fetcher struct {
	httpClient *http.Client
	limiter    *util.Limiter
	userAgent  string
	maxBytes   int64
}

// NewFetcher creates a new Fetcher with the given configuration.
// A nil limiter disables request pacing.
func NewFetcher(cfg model.HTTPConfig, limiter *util.Limiter) (*Fetcher, error) {
	proxyFunc, err := util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	maxBytes := cfg.MaxBodyBytes
	if maxBytes <= 0 {
		maxBytes = 64 << 20
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc,
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		limiter:   limiter,
		userAgent: cfg.UserAgent,
		maxBytes:  maxBytes,
	}, nil
}

// HTTPStatusError is returned when a dataset responds with a non-2xx status
type HTTPStatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("unexpected status: %d %s", e.StatusCode, e.Status)
}

// FetchJSON retrieves the URL and decodes its JSON body into v
func (f *Fetcher) FetchJSON(ctx context.Context, rawURL string, v any) (*model.FetchMeta, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, fmt.Errorf("rate limit: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPStatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// One extra byte tells a truncated body apart from one that fits exactly
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("read body: response exceeds %d bytes", f.maxBytes)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}

	return &model.FetchMeta{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		ETag:        resp.Header.Get("ETag"),
		Bytes:       len(body),
	}, nil
}
