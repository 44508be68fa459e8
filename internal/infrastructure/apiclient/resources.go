package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

const (
	categoriesPath = "/api/faq-categories/"
	faqsPath       = "/api/faqs/"
	storesPath     = "/api/stores/"
)

var (
	_ ports.AuthGateway    = (*Client)(nil)
	_ ports.HeaderSink     = (*Client)(nil)
	_ ports.ResourceClient = (*Client)(nil)
)

var faqListOrder = []string{"search", "page", "page_size", "sort"}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts credentials to /auth/login without the session headers.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	return c.do(ctx, "/auth/login", RequestOptions{
		Method: http.MethodPost,
		Body:   loginRequest{Email: email, Password: password},
	}, false)
}

// Register posts a new account to /auth/register without the session headers.
func (c *Client) Register(ctx context.Context, reg domain.Registration) (json.RawMessage, error) {
	return c.do(ctx, "/auth/register", RequestOptions{Method: http.MethodPost, Body: reg}, false)
}

// Health calls the backend liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, "/health", RequestOptions{}, false)
	return err
}

func (c *Client) GetCategories(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, categoriesPath, RequestOptions{})
}

func (c *Client) GetCategory(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, categoriesPath+url.PathEscape(id), RequestOptions{})
}

func (c *Client) CreateCategory(ctx context.Context, body any) (json.RawMessage, error) {
	return c.Request(ctx, categoriesPath, RequestOptions{Method: http.MethodPost, Body: body})
}

func (c *Client) UpdateCategory(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return c.Request(ctx, categoriesPath+url.PathEscape(id), RequestOptions{Method: http.MethodPut, Body: body})
}

func (c *Client) DeleteCategory(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, categoriesPath+url.PathEscape(id), RequestOptions{Method: http.MethodDelete})
}

// GetFAQs lists FAQs. Only non-empty params are sent, in the order
// search, page, page_size, sort.
func (c *Client) GetFAQs(ctx context.Context, params ports.FAQListParams) (json.RawMessage, error) {
	qs, err := encodeQuery(params, faqListOrder)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, withQuery(faqsPath, qs), RequestOptions{})
}

// GetFAQ fetches one FAQ, adding include_all_translations=true when requested.
func (c *Client) GetFAQ(ctx context.Context, id string, params ports.FAQGetParams) (json.RawMessage, error) {
	qs, err := encodeQuery(params, []string{"include_all_translations"})
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, withQuery(faqsPath+url.PathEscape(id), qs), RequestOptions{})
}

func (c *Client) CreateFAQ(ctx context.Context, body any) (json.RawMessage, error) {
	return c.Request(ctx, faqsPath, RequestOptions{Method: http.MethodPost, Body: body})
}

func (c *Client) UpdateFAQ(ctx context.Context, id string, body any) (json.RawMessage, error) {
	return c.Request(ctx, faqsPath+url.PathEscape(id), RequestOptions{Method: http.MethodPut, Body: body})
}

func (c *Client) DeleteFAQ(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, faqsPath+url.PathEscape(id), RequestOptions{Method: http.MethodDelete})
}

func (c *Client) GetStores(ctx context.Context) (json.RawMessage, error) {
	return c.Request(ctx, storesPath, RequestOptions{})
}

func (c *Client) GetStore(ctx context.Context, id string) (json.RawMessage, error) {
	return c.Request(ctx, storesPath+url.PathEscape(id), RequestOptions{})
}

// encodeQuery encodes params with their url tags, emitting keys in order.
// url.Values.Encode would sort them.
func encodeQuery(params any, order []string) (string, error) {
	values, err := query.Values(params)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, key := range order {
		for _, v := range values[key] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String(), nil
}

func withQuery(path, qs string) string {
	if qs == "" {
		return path
	}
	return path + "?" + qs
}
