package domain

// RouteName identifies an entry of the navigation table.
type RouteName string

const (
	RouteRoot        RouteName = "Root"
	RouteLogin       RouteName = "Login"
	RouteRegister    RouteName = "Register"
	RouteDashboard   RouteName = "Dashboard"
	RouteCategories  RouteName = "Categories"
	RouteFAQs        RouteName = "FAQs"
	RouteStores      RouteName = "Stores"
	RouteStoreDetail RouteName = "StoreDetail"
)

// Route describes one navigable page and its access requirements.
type Route struct {
	Path      string    `json:"path"`
	Name      RouteName `json:"name"`
	Component string    `json:"component,omitempty"`
	// Redirect makes the route an alias that forwards to another path.
	Redirect     string   `json:"redirect,omitempty"`
	Public       bool     `json:"public,omitempty"`
	RequiresAuth bool     `json:"requires_auth,omitempty"`
	Role         string   `json:"role,omitempty"`
	Roles        []string `json:"roles,omitempty"`
}

// Decision is the outcome of a pre-navigation check.
type Decision struct {
	Target   RouteName `json:"target"`
	Redirect RouteName `json:"redirect,omitempty"`
	Reason   string    `json:"reason"`
}

const (
	ReasonAllowed         = "allowed"
	ReasonUnauthenticated = "unauthenticated"
	ReasonRoleMismatch    = "role_mismatch"
	ReasonRoleNotAllowed  = "role_not_allowed"
	ReasonAlreadySignedIn = "already_authenticated"
)

// Allowed reports whether navigation may proceed to the target.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

// Outcome is "allow" or "redirect".
func (d Decision) Outcome() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect"
}
