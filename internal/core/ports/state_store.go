package ports

import (
	"context"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// StateStore persists the console's local state across restarts: the
// {user, token} session under one key and the locale under another.
type StateStore interface {
	// LoadSession returns the zero Session when nothing is stored.
	LoadSession(ctx context.Context) (domain.Session, error)
	SaveSession(ctx context.Context, session domain.Session) error
	ClearSession(ctx context.Context) error

	// LoadLocale returns "" when nothing is stored.
	LoadLocale(ctx context.Context) (string, error)
	SaveLocale(ctx context.Context, code string) error

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
