package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

// Dependencies are the collaborators Bootstrap wires together.
type Dependencies struct {
	State   ports.StateStore
	Auth    ports.AuthGateway
	Headers ports.HeaderSink
	Catalog domain.TranslationTable
	// Routes defaults to DefaultRoutes when nil.
	Routes []domain.Route
	Log    zerolog.Logger
}

// App is the application context shared by the CLI commands and the console
// handlers. It is built once per process.
type App struct {
	Session    *SessionService
	Translator *Translator
	Routes     *RouteTable
	Navigator  *Navigator
}

// Bootstrap restores the persisted locale and session, pushing both into the
// header sink, and builds the navigation table.
func Bootstrap(ctx context.Context, deps Dependencies) (*App, error) {
	routes := deps.Routes
	if routes == nil {
		routes = DefaultRoutes()
	}
	table, err := NewRouteTable(routes)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	translator := NewTranslator(deps.Catalog, deps.State, deps.Headers, deps.Log.With().Str("component", "translator").Logger())
	if err := translator.Restore(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: restore locale: %w", err)
	}

	sessions := NewSessionService(deps.Auth, deps.State, deps.Headers, deps.Log.With().Str("component", "session").Logger())
	if err := sessions.Restore(ctx); err != nil {
		return nil, fmt.Errorf("bootstrap: restore session: %w", err)
	}

	return &App{
		Session:    sessions,
		Translator: translator,
		Routes:     table,
		Navigator:  NewNavigator(table, sessions, deps.Log.With().Str("component", "navigator").Logger()),
	}, nil
}
