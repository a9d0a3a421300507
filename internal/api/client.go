package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"storefront/internal/core/errx"
	"storefront/internal/domain"
	"storefront/internal/logx"
)

// RequestIDHeader is set on every outgoing request.
const RequestIDHeader = "X-Request-ID"

// maxErrorBody caps how much of an error response is read for its message.
const maxErrorBody = 4 << 10

// Client is safe for concurrent use.
type Client struct {
	Base string
	HTTP *http.Client

	limiter *rate.Limiter

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.HTTP = h
		}
	}
}

// WithToken sets the initial Bearer token.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithRateLimit caps outgoing requests at rps with the given burst.
// rps <= 0 leaves the client unlimited.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// New returns a client for the backend rooted at base, e.g. http://localhost:8000.
func New(base string, opts ...Option) *Client {
	c := &Client{
		Base: strings.TrimRight(base, "/"),
		HTTP: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the Bearer token; an empty token sends no Authorization header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current Bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	u := c.Base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		buf := new(bytes.Buffer)
		if err := json.NewEncoder(buf).Encode(in); err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = buf
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	if tok := c.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	start := time.Now()
	resp, err := c.HTTP.Do(req)
	if err != nil {
		logx.Debug().Str("request_id", reqID).Str("method", method).Str("path", path).Err(err).Msg("api call failed")
		return fmt.Errorf("api %s %s: %w", strings.ToLower(method), path, err)
	}
	defer resp.Body.Close()

	logx.Debug().
		Str("request_id", reqID).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("api call")

	if resp.StatusCode/100 != 2 {
		return decodeError(method, path, resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// decodeError turns a non-2xx response into *errx.Error, preferring the
// backend's own explanation (DRF "detail", or "error"/"message").
func decodeError(method, path string, resp *http.Response) error {
	msg := fmt.Sprintf("api %s %s: %s", strings.ToLower(method), path, resp.Status)
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var payload map[string]any
	if json.Unmarshal(b, &payload) == nil {
		for _, k := range []string{"detail", "error", "message"} {
			if s, ok := payload[k].(string); ok && s != "" {
				return errx.New(errors.New(s), resp.StatusCode, msg)
			}
		}
		if len(payload) > 0 {
			// DRF field errors: {"rating": ["Ensure this value is ..."]}
			return errx.New(errors.New(strings.TrimSpace(string(b))), resp.StatusCode, msg)
		}
	}
	return errx.New(nil, resp.StatusCode, msg)
}

// decodePage accepts either a DRF page or a bare JSON array.
func decodePage[T any](raw json.RawMessage) (domain.Page[T], error) {
	var page domain.Page[T]
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Results); err != nil {
			return page, err
		}
		page.Count = len(page.Results)
	} else if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &page); err != nil {
			return page, err
		}
	}
	if page.Results == nil {
		page.Results = []T{}
	}
	return page, nil
}

func getPage[T any](ctx context.Context, c *Client, path string, query url.Values) (domain.Page[T], error) {
	var raw json.RawMessage
	if err := c.get(ctx, path, query, &raw); err != nil {
		return domain.Page[T]{Results: []T{}}, err
	}
	page, err := decodePage[T](raw)
	if err != nil {
		return page, fmt.Errorf("decode %s: %w", path, err)
	}
	return page, nil
}

func getList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	page, err := getPage[T](ctx, c, path, query)
	return page.Results, err
}
