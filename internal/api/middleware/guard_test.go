package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/service"
)

type fixedSession domain.Session

func (f fixedSession) Current() domain.Session { return domain.Session(f) }

func navigatorFor(t *testing.T, sess domain.Session) *service.Navigator {
	t.Helper()
	table, err := service.NewRouteTable(service.DefaultRoutes())
	if err != nil {
		t.Fatalf("route table: %v", err)
	}
	return service.NewNavigator(table, fixedSession(sess), zerolog.Nop())
}

func merchant() domain.Session {
	return domain.Session{User: &domain.Identity{ID: 3, Role: domain.RoleMerchant}, Token: "tok"}
}

func serveGuarded(t *testing.T, sess domain.Session, path string) (*httptest.ResponseRecorder, *service.Navigation, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *service.Navigation
	handler := Guard(navigatorFor(t, sess), zerolog.Nop())(func(c echo.Context) error {
		seen, _ = CurrentNavigation(c)
		return c.NoContent(http.StatusOK)
	})
	err := handler(c)
	return rec, seen, err
}

func TestGuard_Allows(t *testing.T) {
	rec, nav, err := serveGuarded(t, merchant(), "/faqs")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if nav == nil || nav.Route.Name != domain.RouteFAQs {
		t.Fatalf("navigation not stored: %+v", nav)
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	rec, nav, err := serveGuarded(t, domain.Session{}, "/dashboard")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
		t.Fatalf("expected 302 to /login, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	if nav != nil {
		t.Fatalf("next handler must not run on redirect")
	}
}

func TestGuard_RoleMismatchGoesToDashboard(t *testing.T) {
	rec, _, _ := serveGuarded(t, merchant(), "/categories")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected 302 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_RootAlias(t *testing.T) {
	rec, _, _ := serveGuarded(t, merchant(), "/")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("expected 302 to /dashboard, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_RedirectKeepsQuery(t *testing.T) {
	rec, _, err := serveGuarded(t, domain.Session{}, "/?lang=ar")
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login?lang=ar" {
		t.Fatalf("expected 302 to /login?lang=ar, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestGuard_UnknownPath(t *testing.T) {
	_, _, err := serveGuarded(t, merchant(), "/nowhere")
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusNotFound {
		t.Fatalf("expected 404 HTTPError, got %v", err)
	}
}
