package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
	"github.com/faqdesk/faqconsole/internal/core/service"
	"github.com/faqdesk/faqconsole/internal/infrastructure/apiclient"
	"github.com/faqdesk/faqconsole/internal/infrastructure/catalog"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
	"github.com/faqdesk/faqconsole/internal/infrastructure/state"
)

// fakeBackend answers the FAQ backend endpoints the console uses and records
// the last request it saw.
type fakeBackend struct {
	mu       sync.Mutex
	lastURI  string
	lastAuth string
	lastLang string
	role     string
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	b.lastURI = r.URL.RequestURI()
	b.lastAuth = r.Header.Get("Authorization")
	b.lastLang = r.Header.Get("Accept-Language")
	role := b.role
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/auth/login":
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Invalid credentials"}}`)
			return
		}
		_, _ = io.WriteString(w, `{"success":true,"data":{"user":{"id":1,"email":"`+body.Email+`","name":"Ops","role":"`+role+`"},"token":"backend-token"}}`)
	case r.URL.Path == "/health":
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	case r.URL.Path == "/api/stores/404":
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"success":false,"error":{"code":"NOT_FOUND","message":"not found"}}`)
	case strings.HasPrefix(r.URL.Path, "/api/"):
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (b *fakeBackend) last() (uri, auth, lang string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lastURI, b.lastAuth, b.lastLang
}

func newTestConsole(t *testing.T, role string) (*echo.Echo, *fakeBackend, ports.StateStore) {
	t.Helper()
	backend := &fakeBackend{role: role}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	client := apiclient.New(apiclient.Config{BaseURL: srv.URL}, zerolog.Nop())
	store := state.NewMemory()
	app, err := service.Bootstrap(context.Background(), service.Dependencies{
		State:   store,
		Auth:    client,
		Headers: client,
		Catalog: catalog.MustLoad(),
		Log:     zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	e := NewRouter(Dependencies{
		App:      app,
		Client:   client,
		State:    store,
		Importer: queue.NewDispatcher(2, client, zerolog.Nop()),
		Log:      zerolog.Nop(),
	})
	return e, backend, store
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, e *echo.Echo) {
	t.Helper()
	rec := do(e, http.MethodPost, "/session/login", `{"email":"ops@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_AnonymousIsSentToLogin(t *testing.T) {
	e, _, _ := newTestConsole(t, domain.RoleAdmin)

	for _, path := range []string{"/", "/dashboard", "/categories", "/faqs"} {
		rec := do(e, http.MethodGet, path, "")
		if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/login" {
			t.Fatalf("%s: expected 302 /login, got %d %q", path, rec.Code, rec.Header().Get(echo.HeaderLocation))
		}
	}

	if rec := do(e, http.MethodGet, "/stores/12", ""); rec.Code != http.StatusOK {
		t.Fatalf("stores must be public, got %d", rec.Code)
	}
}

func TestRouter_LoginThenNavigate(t *testing.T) {
	e, backend, store := newTestConsole(t, domain.RoleMerchant)
	login(t, e)

	if sess, _ := store.LoadSession(context.Background()); sess.Token != "backend-token" {
		t.Fatalf("session not persisted: %+v", sess)
	}

	rec := do(e, http.MethodGet, "/faqs", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("merchant on /faqs: expected 200, got %d", rec.Code)
	}
	var view struct {
		Route  string            `json:"route"`
		Labels map[string]string `json:"labels"`
		Nav    []struct {
			Name string `json:"name"`
		} `json:"nav"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if view.Route != "FAQs" || view.Labels["faqs_title"] != "FAQs Management" || view.Labels["save"] != "Save" {
		t.Fatalf("unexpected view %+v", view)
	}
	for _, link := range view.Nav {
		if link.Name == "Categories" {
			t.Fatalf("merchant must not see the categories link")
		}
	}

	rec = do(e, http.MethodGet, "/categories", "")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("merchant on /categories: expected 302 /dashboard, got %d", rec.Code)
	}

	rec = do(e, http.MethodGet, "/login", "")
	if rec.Code != http.StatusFound || rec.Header().Get(echo.HeaderLocation) != "/dashboard" {
		t.Fatalf("signed-in user on /login: expected 302 /dashboard, got %d", rec.Code)
	}

	do(e, http.MethodGet, "/console/api/stores", "")
	if _, auth, _ := backend.last(); auth != "Bearer backend-token" {
		t.Fatalf("proxy did not forward the credential: %q", auth)
	}
}

func TestRouter_LoginRejected(t *testing.T) {
	e, _, _ := newTestConsole(t, domain.RoleAdmin)

	rec := do(e, http.MethodPost, "/session/login", `{"email":"ops@example.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "login failed") {
		t.Fatalf("expected generic message, got %s", rec.Body.String())
	}
}

func TestRouter_LocaleSwitch(t *testing.T) {
	e, backend, _ := newTestConsole(t, domain.RoleAdmin)

	rec := do(e, http.MethodGet, "/stores?lang=ar-SA", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"dir":"rtl"`) {
		t.Fatalf("expected rtl document: %s", rec.Body.String())
	}

	do(e, http.MethodGet, "/console/api/stores", "")
	if _, _, lang := backend.last(); lang != "ar" {
		t.Fatalf("expected Accept-Language ar, got %q", lang)
	}

	rec = do(e, http.MethodPut, "/session/language", `{"locale":"en"}`)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"dir":"ltr"`) {
		t.Fatalf("unexpected language response %d %s", rec.Code, rec.Body.String())
	}

	// The locale switch survives the guard's redirect to the login page.
	rec = do(e, http.MethodGet, "/?lang=ar", "")
	target := rec.Header().Get(echo.HeaderLocation)
	if rec.Code != http.StatusFound || target != "/login?lang=ar" {
		t.Fatalf("expected 302 /login?lang=ar, got %d %q", rec.Code, target)
	}
	rec = do(e, http.MethodGet, target, "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"dir":"rtl"`) {
		t.Fatalf("expected rtl login page, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_ProxyQueryAndErrors(t *testing.T) {
	e, backend, _ := newTestConsole(t, domain.RoleAdmin)

	if rec := do(e, http.MethodGet, "/console/api/faqs?page=2&search=refund", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if uri, _, _ := backend.last(); uri != "/api/faqs/?search=refund&page=2" {
		t.Fatalf("unexpected backend uri %q", uri)
	}

	rec := do(e, http.MethodGet, "/console/api/stores/404", "")
	if rec.Code != http.StatusNotFound || !strings.Contains(rec.Body.String(), `"error":"not found"`) {
		t.Fatalf("expected backend 404 passed through, got %d %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_RegisterValidation(t *testing.T) {
	e, _, _ := newTestConsole(t, domain.RoleAdmin)

	rec := do(e, http.MethodPost, "/session/register", `{"name":"A","email":"a@x.io","password":"short","role":"merchant"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRouter_HealthMetricsAndDocs(t *testing.T) {
	e, _, _ := newTestConsole(t, domain.RoleAdmin)

	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}

	rec := do(e, http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"backend":{"status":"ok"}`) {
		t.Fatalf("readiness: unexpected %d %s", rec.Code, rec.Body.String())
	}

	do(e, http.MethodGet, "/dashboard", "")
	rec = do(e, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "faqconsole_navigation_decisions_total") {
		t.Fatalf("metrics missing navigation counter")
	}
	if !strings.Contains(rec.Body.String(), "faqconsole_http_requests_total") {
		t.Fatalf("metrics missing http request counter")
	}

	rec = do(e, http.MethodGet, "/swagger/doc.json", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "/session/login") {
		t.Fatalf("swagger doc: unexpected %d", rec.Code)
	}
}

func TestRouter_UnknownPage(t *testing.T) {
	e, _, _ := newTestConsole(t, domain.RoleAdmin)
	if rec := do(e, http.MethodGet, "/nowhere", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
