package commands

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type backend struct {
	mu       sync.Mutex
	requests []string
	bodies   []string
}

func (b *backend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	b.mu.Lock()
	b.requests = append(b.requests, r.Method+" "+r.URL.RequestURI())
	b.bodies = append(b.bodies, string(body))
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.URL.Path == "/auth/login":
		_, _ = io.WriteString(w, `{"success":true,"data":{"user":{"id":9,"email":"admin@example.com","name":"Admin","role":"admin"},"token":"t-123"}}`)
	case r.URL.Path == "/api/faqs/" && r.Method == http.MethodPost:
		var in struct {
			CategoryID int `json:"category_id"`
		}
		_ = json.Unmarshal(body, &in)
		if in.CategoryID == 99 {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"success":false,"error":{"message":"unknown category"}}`)
			return
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"success":true,"data":{"id":1}}`)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		_, _ = io.WriteString(w, `{"success":true,"data":[]}`)
	}
}

func (b *backend) last() (string, string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.requests) == 0 {
		return "", ""
	}
	return b.requests[len(b.requests)-1], b.bodies[len(b.bodies)-1]
}

func setup(t *testing.T) *backend {
	t.Helper()
	b := &backend{}
	srv := httptest.NewServer(b)
	t.Cleanup(srv.Close)

	t.Setenv("FAQ_API_BASE_URL", srv.URL)
	t.Setenv("FAQ_STATE_DRIVER", "file")
	t.Setenv("FAQ_STATE_PATH", filepath.Join(t.TempDir(), "state.json"))
	t.Setenv("FAQ_LOG_LEVEL", "disabled")
	return b
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := &cli{}
	defer c.close()

	cmd := newRootCmd(c)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(t.Context())
	return out.String(), err
}

func TestLoginPersistsAcrossInvocations(t *testing.T) {
	setup(t)

	out, err := run(t, "", "whoami")
	if err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(out, `"authenticated": false`) {
		t.Fatalf("expected anonymous session, got %s", out)
	}

	if out, err = run(t, "", "login", "-e", "admin@example.com", "-p", "secret1!"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(out, "Signed in as admin@example.com (admin)") {
		t.Fatalf("unexpected login output %q", out)
	}

	out, _ = run(t, "", "whoami")
	if !strings.Contains(out, `"authenticated": true`) || !strings.Contains(out, `"role": "admin"`) {
		t.Fatalf("session not restored: %s", out)
	}

	out, _ = run(t, "", "navigate", "/categories")
	if strings.TrimSpace(out) != "/categories\tCategories" {
		t.Fatalf("admin should reach categories, got %q", out)
	}

	if _, err = run(t, "", "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	out, _ = run(t, "", "navigate", "/categories")
	if strings.TrimSpace(out) != "/login\tLogin" {
		t.Fatalf("anonymous should be sent to login, got %q", out)
	}
}

func TestLangSetPersists(t *testing.T) {
	setup(t)

	if _, err := run(t, "", "lang", "set", "fr"); err == nil {
		t.Fatal("expected unsupported language error")
	}
	if _, err := run(t, "", "lang", "set", "ar"); err != nil {
		t.Fatalf("lang set: %v", err)
	}

	out, _ := run(t, "", "lang", "get")
	if !strings.HasPrefix(out, "ar\t") || !strings.Contains(out, "rtl") {
		t.Fatalf("unexpected lang get output %q", out)
	}

	out, _ = run(t, "", "t", "save", "no_such_key")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || lines[0] != "حفظ" || lines[1] != "no_such_key" {
		t.Fatalf("unexpected translations %q", lines)
	}
}

func TestFAQsListSendsQuery(t *testing.T) {
	b := setup(t)

	if _, err := run(t, "", "faqs", "list", "--search", "refund", "--page-size", "20"); err != nil {
		t.Fatalf("faqs list: %v", err)
	}
	if req, _ := b.last(); req != "GET /api/faqs/?search=refund&page_size=20" {
		t.Fatalf("unexpected request %q", req)
	}

	if _, err := run(t, "", "faqs", "get", "7", "--all-translations"); err != nil {
		t.Fatalf("faqs get: %v", err)
	}
	if req, _ := b.last(); req != "GET /api/faqs/7?include_all_translations=true" {
		t.Fatalf("unexpected request %q", req)
	}
}

func TestCategoriesCreateAndDelete(t *testing.T) {
	b := setup(t)

	if _, err := run(t, `{"name":"Shipping"}`, "categories", "create", "-f", "-"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if req, body := b.last(); req != "POST /api/faq-categories/" || body != `{"name":"Shipping"}` {
		t.Fatalf("unexpected request %q %q", req, body)
	}

	if _, err := run(t, "", "categories", "update", "4", "--name", "Returns"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if req, body := b.last(); req != "PUT /api/faq-categories/4" || body != `{"name":"Returns"}` {
		t.Fatalf("unexpected request %q %q", req, body)
	}

	if _, err := run(t, "", "categories", "create", "-d", "{not json"); err == nil {
		t.Fatal("expected invalid JSON error")
	}

	out, err := run(t, "", "categories", "delete", "4")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if out != "" {
		t.Fatalf("expected no output for 204, got %q", out)
	}
	if req, _ := b.last(); req != "DELETE /api/faq-categories/4" {
		t.Fatalf("unexpected request %q", req)
	}

	if _, err := run(t, "", "categories", "get", "abc"); err == nil {
		t.Fatal("expected invalid id error")
	}
}

func TestFAQsImport(t *testing.T) {
	setup(t)

	doc := `faqs:
  - category_id: 1
    translations:
      - {language: en, question: "Where is my order?", answer: "Track it from the dashboard."}
  - category_id: 99
    translations:
      - {language: en, question: "Q", answer: "A"}
`
	path := filepath.Join(t.TempDir(), "faqs.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "faqs", "import", path, "-w", "2")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 FAQs failed") {
		t.Fatalf("expected partial failure, got %v", err)
	}
	if !strings.Contains(out, "created") || !strings.Contains(out, "unknown category") {
		t.Fatalf("unexpected import report %q", out)
	}
}
