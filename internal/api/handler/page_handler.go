package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/api/middleware"
	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/service"
)

// commonLabels are the shared action and status strings every page uses.
var commonLabels = []string{"loading", "error", "success", "add", "edit", "delete", "save", "cancel", "back", "search"}

// pageLabelPrefixes selects the catalog keys of each page.
var pageLabelPrefixes = map[domain.RouteName][]string{
	domain.RouteLogin:       {"login_"},
	domain.RouteRegister:    {"register_"},
	domain.RouteDashboard:   {"dashboard_"},
	domain.RouteCategories:  {"categories_"},
	domain.RouteFAQs:        {"faqs_"},
	domain.RouteStores:      {"stores_"},
	domain.RouteStoreDetail: {"stores_"},
}

var navItems = []struct {
	route domain.RouteName
	label string
}{
	{domain.RouteDashboard, "nav_dashboard"},
	{domain.RouteCategories, "nav_categories"},
	{domain.RouteFAQs, "nav_faqs"},
	{domain.RouteStores, "nav_stores"},
}

// SessionReader exposes the current session.
type SessionReader interface {
	Current() domain.Session
}

// PageHandler renders the view model of a page the guard allowed.
type PageHandler struct {
	sessions SessionReader
	locales  LocaleManager
	routes   *service.RouteTable
}

func NewPageHandler(sessions SessionReader, locales LocaleManager, routes *service.RouteTable) *PageHandler {
	return &PageHandler{sessions: sessions, locales: locales, routes: routes}
}

// Show handles GET on every page route. A ?lang= query switches the locale
// first when it names a supported language.
func (h *PageHandler) Show(c echo.Context) error {
	nav, ok := middleware.CurrentNavigation(c)
	if !ok {
		return errors.New("page handler reached without navigation")
	}

	if lang := c.QueryParam("lang"); lang != "" {
		if code, ok := service.ParseLocale(lang); ok && code != h.locales.Current().Code {
			h.locales.SetLocale(c.Request().Context(), code)
			metrics.LocaleSwitchesTotal.WithLabelValues(code).Inc()
		}
	}

	sess := h.sessions.Current()
	prefixes := append([]string{"nav_", "navbar_"}, pageLabelPrefixes[nav.Route.Name]...)
	labels := h.locales.Labels(prefixes...)
	for _, key := range commonLabels {
		labels[key] = h.locales.T(key)
	}

	return c.JSON(http.StatusOK, pageView{
		Route:     nav.Route.Name,
		Component: nav.Route.Component,
		Path:      nav.Path,
		Params:    nav.Params,
		Document:  h.locales.Document(),
		User:      sess.User,
		Labels:    labels,
		Nav:       h.navLinks(sess),
		Languages: h.locales.Supported(),
	})
}

// navLinks lists the navbar entries the session may open, plus login or
// logout depending on the session.
func (h *PageHandler) navLinks(sess domain.Session) []navLink {
	var links []navLink
	for _, item := range navItems {
		r, ok := h.routes.ByName(item.route)
		if !ok || !service.Authorize(r, sess).Allowed() {
			continue
		}
		links = append(links, navLink{Name: r.Name, Path: r.Path, Label: h.locales.T(item.label)})
	}

	if sess.Authenticated() {
		links = append(links, navLink{Name: "Logout", Path: "/session/logout", Label: h.locales.T("nav_logout")})
	} else if r, ok := h.routes.ByName(domain.RouteLogin); ok {
		links = append(links, navLink{Name: r.Name, Path: r.Path, Label: h.locales.T("nav_login")})
	}
	return links
}
