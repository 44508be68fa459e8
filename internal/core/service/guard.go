package service

import (
	"slices"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// Authorize decides whether navigation to target may proceed for session.
// The checks run in order and the first match wins, so a route that sets
// both Role and Roles is only checked against Role. A non-nil empty Roles
// admits nobody.
func Authorize(target domain.Route, session domain.Session) domain.Decision {
	d := domain.Decision{Target: target.Name, Reason: domain.ReasonAllowed}
	role := session.Role()

	switch {
	case target.RequiresAuth && !session.Authenticated():
		d.Redirect, d.Reason = domain.RouteLogin, domain.ReasonUnauthenticated
	case target.Role != "" && role != target.Role:
		d.Redirect, d.Reason = domain.RouteDashboard, domain.ReasonRoleMismatch
	case target.Roles != nil && !slices.Contains(target.Roles, role):
		d.Redirect, d.Reason = domain.RouteDashboard, domain.ReasonRoleNotAllowed
	case (target.Name == domain.RouteLogin || target.Name == domain.RouteRegister) && session.Authenticated():
		d.Redirect, d.Reason = domain.RouteDashboard, domain.ReasonAlreadySignedIn
	}
	return d
}
