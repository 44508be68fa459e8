package service

import (
	"fmt"
	"strings"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// DefaultRoutes is the console navigation table.
func DefaultRoutes() []domain.Route {
	return []domain.Route{
		{Path: "/", Name: domain.RouteRoot, Redirect: "/dashboard"},
		{Path: "/login", Name: domain.RouteLogin, Component: "Login", Public: true},
		{Path: "/register", Name: domain.RouteRegister, Component: "Register", Public: true},
		{Path: "/dashboard", Name: domain.RouteDashboard, Component: "Dashboard", RequiresAuth: true},
		{Path: "/categories", Name: domain.RouteCategories, Component: "Categories", RequiresAuth: true, Role: domain.RoleAdmin},
		{Path: "/faqs", Name: domain.RouteFAQs, Component: "FAQs", RequiresAuth: true, Roles: []string{domain.RoleAdmin, domain.RoleMerchant}},
		{Path: "/stores", Name: domain.RouteStores, Component: "Stores"},
		{Path: "/stores/:id", Name: domain.RouteStoreDetail, Component: "StoreDetail"},
	}
}

// RouteTable is an immutable, ordered set of routes addressable by name or path.
type RouteTable struct {
	routes []domain.Route
	byName map[domain.RouteName]domain.Route
}

// NewRouteTable validates that names are unique and every path is absolute.
func NewRouteTable(routes []domain.Route) (*RouteTable, error) {
	t := &RouteTable{
		routes: make([]domain.Route, len(routes)),
		byName: make(map[domain.RouteName]domain.Route, len(routes)),
	}
	copy(t.routes, routes)

	for _, r := range routes {
		if !strings.HasPrefix(r.Path, "/") {
			return nil, fmt.Errorf("route %q: path %q must start with /", r.Name, r.Path)
		}
		if _, dup := t.byName[r.Name]; dup {
			return nil, fmt.Errorf("route %q: duplicate name", r.Name)
		}
		t.byName[r.Name] = r
	}
	return t, nil
}

// Routes returns the routes in declaration order.
func (t *RouteTable) Routes() []domain.Route {
	out := make([]domain.Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// ByName looks a route up by its name.
func (t *RouteTable) ByName(name domain.RouteName) (domain.Route, bool) {
	r, ok := t.byName[name]
	return r, ok
}

// Match resolves a concrete path such as "/stores/7" to its route and the
// values of the route's ":param" segments. Query strings and a trailing
// slash are ignored. The first matching route wins.
func (t *RouteTable) Match(path string) (domain.Route, map[string]string, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	segments := splitPath(path)

	for _, r := range t.routes {
		if params, ok := matchSegments(splitPath(r.Path), segments); ok {
			return r, params, true
		}
	}
	return domain.Route{}, nil, false
}

func matchSegments(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}

	params := map[string]string{}
	for i, p := range pattern {
		if name, ok := strings.CutPrefix(p, ":"); ok {
			if segments[i] == "" {
				return nil, false
			}
			params[name] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}
