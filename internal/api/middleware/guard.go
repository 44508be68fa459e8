package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/service"
)

// NavigationKey is the context key the resolved *service.Navigation is stored under.
const NavigationKey = "navigation"

// Navigator resolves a page path through the route guard.
type Navigator interface {
	Navigate(path string) (*service.Navigation, error)
}

// Guard intercepts page requests. When the guard redirects, or the path is
// an alias, it answers 302 with the final route's path and the original query
// string; otherwise it stores the navigation in the context and calls next.
func Guard(nav Navigator, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			path := c.Request().URL.Path

			result, err := nav.Navigate(path)
			if err != nil {
				if errors.Is(err, domain.ErrRouteNotFound) {
					return echo.NewHTTPError(http.StatusNotFound, "page not found")
				}
				return err
			}

			for _, d := range result.Trail {
				metrics.NavigationDecisionsTotal.WithLabelValues(string(d.Target), d.Outcome()).Inc()
			}

			if result.Path != path {
				log.Debug().
					Str("from", path).
					Str("to", result.Path).
					Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
					Msg("navigation redirected")
				target := result.Path
				if qs := c.QueryString(); qs != "" {
					target += "?" + qs
				}
				return c.Redirect(http.StatusFound, target)
			}

			c.Set(NavigationKey, result)
			return next(c)
		}
	}
}

// CurrentNavigation returns the navigation stored by Guard.
func CurrentNavigation(c echo.Context) (*service.Navigation, bool) {
	nav, ok := c.Get(NavigationKey).(*service.Navigation)
	return nav, ok
}
