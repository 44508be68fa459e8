package ports

import (
	"context"
	"encoding/json"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// AuthGateway performs the unauthenticated auth calls and returns the raw
// response body of successful responses.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (json.RawMessage, error)
	Register(ctx context.Context, reg domain.Registration) (json.RawMessage, error)
}

// HeaderSink receives the default credential and locale sent on every API request.
type HeaderSink interface {
	SetToken(token string)
	SetLocale(locale string)
}

// FAQListParams are the optional filters of the FAQ listing.
// Zero values are omitted from the query string.
type FAQListParams struct {
	Search   string `url:"search,omitempty"`
	Page     int    `url:"page,omitempty"`
	PageSize int    `url:"page_size,omitempty"`
	Sort     string `url:"sort,omitempty"`
}

// FAQGetParams are the optional flags of a single FAQ fetch.
type FAQGetParams struct {
	IncludeAllTranslations bool `url:"include_all_translations,omitempty"`
}

// ResourceClient exposes one method per backend resource operation. Bodies
// and responses are passed through unmodified.
type ResourceClient interface {
	GetCategories(ctx context.Context) (json.RawMessage, error)
	GetCategory(ctx context.Context, id string) (json.RawMessage, error)
	CreateCategory(ctx context.Context, body any) (json.RawMessage, error)
	UpdateCategory(ctx context.Context, id string, body any) (json.RawMessage, error)
	DeleteCategory(ctx context.Context, id string) (json.RawMessage, error)

	GetFAQs(ctx context.Context, params FAQListParams) (json.RawMessage, error)
	GetFAQ(ctx context.Context, id string, params FAQGetParams) (json.RawMessage, error)
	CreateFAQ(ctx context.Context, body any) (json.RawMessage, error)
	UpdateFAQ(ctx context.Context, id string, body any) (json.RawMessage, error)
	DeleteFAQ(ctx context.Context, id string) (json.RawMessage, error)

	GetStores(ctx context.Context) (json.RawMessage, error)
	GetStore(ctx context.Context, id string) (json.RawMessage, error)

	Health(ctx context.Context) error
}

// FAQCreator is the part of ResourceClient used by bulk import.
type FAQCreator interface {
	CreateFAQ(ctx context.Context, body any) (json.RawMessage, error)
}
