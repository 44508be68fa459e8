package service

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

const maxNavigationHops = 8

// SessionReader exposes the session snapshot the guard decides on.
type SessionReader interface {
	Current() domain.Session
}

// Navigation is the result of resolving a path through the guard.
type Navigation struct {
	Path   string            `json:"path"`
	Route  domain.Route      `json:"route"`
	Params map[string]string `json:"params,omitempty"`
	// Trail lists every guard decision taken on the way, the last one being the allow.
	Trail []domain.Decision `json:"trail"`
}

// Navigator intercepts navigations, following alias and guard redirects
// until a route is allowed.
type Navigator struct {
	routes   *RouteTable
	sessions SessionReader
	log      zerolog.Logger
}

func NewNavigator(routes *RouteTable, sessions SessionReader, log zerolog.Logger) *Navigator {
	return &Navigator{routes: routes, sessions: sessions, log: log}
}

// Navigate resolves path to the route the user ends up on.
func (n *Navigator) Navigate(path string) (*Navigation, error) {
	nav := &Navigation{}
	current := path

	for hop := 0; hop < maxNavigationHops; hop++ {
		route, params, ok := n.routes.Match(current)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrRouteNotFound, current)
		}
		if route.Redirect != "" {
			current = route.Redirect
			continue
		}

		d := Authorize(route, n.sessions.Current())
		nav.Trail = append(nav.Trail, d)
		if d.Allowed() {
			nav.Path, nav.Route, nav.Params = current, route, params
			return nav, nil
		}

		next, ok := n.routes.ByName(d.Redirect)
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrRouteNotFound, d.Redirect)
		}
		n.log.Debug().
			Str("from", string(route.Name)).
			Str("to", string(next.Name)).
			Str("reason", d.Reason).
			Msg("navigation redirected")
		current = next.Path
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrRedirectLoop, path)
}
