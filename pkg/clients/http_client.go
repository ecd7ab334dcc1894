// Package clients holds the outbound HTTP client used for calls to
// neighbouring services.
package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "affiliate-ledger"
	// replies past this size are truncated
	maxBodySize = 1 << 20
)

var ErrFailedCloseResponseBody = errors.New("failed close response body")

//go:generate mockgen -source=http_client.go -destination=mock_http_client.go -package=clients
type HTTPClientI interface {
	Do(req *http.Request) (*http.Response, error)
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type HTTPClient struct {
	inner *http.Client
}

type Option func(*http.Client)

func WithTimeout(d time.Duration) Option {
	return func(c *http.Client) { c.Timeout = d }
}

func WithTransport(rt http.RoundTripper) Option {
	return func(c *http.Client) { c.Transport = rt }
}

func NewHTTPClient(opts ...Option) *HTTPClient {
	inner := &http.Client{Timeout: defaultTimeout}
	for _, opt := range opts {
		opt(inner)
	}
	return &HTTPClient{inner: inner}
}

func (h *HTTPClient) Do(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return h.inner.Do(req)
}

// Get performs a GET and reads the whole reply. A non-2xx status is not an
// error; callers decide what each status means.
func (h *HTTPClient) Get(ctx context.Context, url string, headers http.Header) (int, []byte, http.Header, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := h.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if cerr := resp.Body.Close(); cerr != nil {
		readErr = errors.Join(readErr, ErrFailedCloseResponseBody)
	}
	if readErr != nil {
		return resp.StatusCode, nil, resp.Header, readErr
	}
	return resp.StatusCode, body, resp.Header, nil
}
