package lemmy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/CrestNiraj12/lemmyterm/domain"
)

const (
	apiPrefix    = "/api/v3"
	maxBodyBytes = 8 << 20
	maxErrorBody = 200
	userAgent    = "lemmyterm"
)

// Client is a thin HTTP wrapper for the Lemmy API.
// It handles base URL construction, status mapping and the optional breaker.
type Client struct {
	baseURL string
	http    *http.Client
	cb      *gobreaker.CircuitBreaker
	log     *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithCircuitBreaker routes every request through cb.
func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

// WithLogger sets the logger used for request failures.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// NewClient creates a Lemmy API client for the instance at baseURL.
// A zero timeout leaves the transport default in place.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get performs a GET against path (relative to /api/v3). op names the
// operation in returned errors.
func (c *Client) Get(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	if c.cb == nil {
		return c.do(ctx, op, path, params)
	}
	out, err := c.cb.Execute(func() (interface{}, error) {
		return c.do(ctx, op, path, params)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, &domain.RemoteError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrCircuitOpen, err)}
	}
	if err != nil {
		return nil, err
	}
	return out.([]byte), nil
}

func (c *Client) do(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + apiPrefix + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("op", op), zap.String("path", path), zap.Error(err))
		return nil, &domain.RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &domain.RemoteError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := strings.TrimSpace(string(data))
		if len(body) > maxErrorBody {
			body = body[:maxErrorBody]
		}
		if resp.StatusCode != http.StatusNotFound {
			c.log.Warn("unexpected status", zap.String("op", op), zap.Int("status", resp.StatusCode))
		}
		return nil, &domain.RemoteError{Op: op, Status: resp.StatusCode, Body: body}
	}

	c.log.Debug("request ok", zap.String("op", op), zap.String("path", path), zap.Int("bytes", len(data)))
	return data, nil
}

// isNotFound reports whether err is a 404 from the API.
func isNotFound(err error) bool {
	var re *domain.RemoteError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}
