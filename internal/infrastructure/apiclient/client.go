// Package apiclient is the REST client for the FAQ backend. Every request
// carries the configured locale and, once signed in, the bearer credential.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

const (
	defaultBaseURL   = "http://localhost:8080"
	defaultTimeout   = 15 * time.Second
	maxResponseBytes = 10 << 20
)

// Config captures the settings for talking to the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
	Locale     string
	// MaxResponseBytes caps a response body; larger bodies fail with
	// domain.ErrTooLarge. Zero means 10 MiB.
	MaxResponseBytes int64
	// OnResponse observes every completed round trip.
	OnResponse func(method, endpoint string, status int, elapsed time.Duration)
}

// RequestOptions describe a single call. Header values override the
// defaults, except Authorization which is always set from the credential.
type RequestOptions struct {
	Method string
	Body   any
	Header http.Header
}

// Client is safe for concurrent use. SetToken and SetLocale take effect on
// the next request.
type Client struct {
	baseURL    string
	http       *http.Client
	maxBody    int64
	onResponse func(method, endpoint string, status int, elapsed time.Duration)
	log        zerolog.Logger

	mu     sync.RWMutex
	token  string
	locale string
}

func New(cfg Config, log zerolog.Logger) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}

	locale := cfg.Locale
	if locale == "" {
		locale = domain.DefaultLocale
	}

	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = maxResponseBytes
	}

	return &Client{
		baseURL:    baseURL,
		http:       hc,
		maxBody:    maxBody,
		onResponse: cfg.OnResponse,
		log:        log,
		locale:     locale,
	}
}

// BaseURL returns the backend origin requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// SetToken sets the bearer credential. An empty token stops sending Authorization.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// SetLocale sets the Accept-Language value.
func (c *Client) SetLocale(locale string) {
	c.mu.Lock()
	c.locale = locale
	c.mu.Unlock()
}

// Locale returns the Accept-Language value currently sent.
func (c *Client) Locale() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.locale
}

// Request sends one call to endpoint, a path relative to the base origin,
// and returns the parsed body. Non-2xx responses yield a *domain.RequestError.
// A 204 or empty body yields nil.
func (c *Client) Request(ctx context.Context, endpoint string, opts RequestOptions) (json.RawMessage, error) {
	return c.do(ctx, endpoint, opts, true)
}

func (c *Client) do(ctx context.Context, endpoint string, opts RequestOptions, authenticated bool) (json.RawMessage, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := encodeBody(opts.Body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.applyHeaders(req.Header, opts.Header, authenticated)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("request failed")
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, classifyTransportError(err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s %s exceeds %d bytes", domain.ErrTooLarge, method, endpoint, c.maxBody)
	}

	elapsed := time.Since(start)
	if c.onResponse != nil {
		c.onResponse(method, endpoint, resp.StatusCode, elapsed)
	}
	c.log.Debug().
		Str("method", method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("elapsed", elapsed).
		Msg("backend request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newRequestError(resp.StatusCode, data)
	}

	data = bytes.TrimSpace(data)
	if resp.StatusCode == http.StatusNoContent || len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: %s %s", domain.ErrDecode, method, endpoint)
	}
	return json.RawMessage(data), nil
}

// applyHeaders writes the defaults, then the caller's headers over them, then
// the credential. Auth calls carry Content-Type only.
func (c *Client) applyHeaders(dst, caller http.Header, authenticated bool) {
	c.mu.RLock()
	token, locale := c.token, c.locale
	c.mu.RUnlock()

	dst.Set("Content-Type", "application/json")
	if authenticated {
		dst.Set("Accept-Language", locale)
	}
	for k, vs := range caller {
		dst.Del(k)
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
	if authenticated && token != "" {
		dst.Set("Authorization", "Bearer "+token)
	}
}

func encodeBody(v any) (io.Reader, error) {
	switch b := v.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return bytes.NewReader(b), nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), nil
	}
}

type errorBody struct {
	Error json.RawMessage `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// newRequestError reads error.message, or error when it is a plain string.
// A body that is not JSON falls back to the HTTP status text.
func newRequestError(status int, data []byte) *domain.RequestError {
	reqErr := &domain.RequestError{Status: status}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		reqErr.Message = http.StatusText(status)
		return reqErr
	}

	var msg string
	if json.Unmarshal(body.Error, &msg) == nil {
		reqErr.Message = msg
		return reqErr
	}

	var detail errorDetail
	if json.Unmarshal(body.Error, &detail) == nil {
		reqErr.Code, reqErr.Message = detail.Code, detail.Message
	}
	return reqErr
}

func classifyTransportError(err error) error {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return fmt.Errorf("%w: %w", domain.ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrUnreachable, err)
}
