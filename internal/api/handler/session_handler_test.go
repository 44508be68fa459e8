package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

func newContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	he, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("expected *echo.HTTPError, got %v", err)
	}
	return he.Code
}

func TestSessionHandler_Login_Success(t *testing.T) {
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	sessions := &stubSessions{
		expires: exp,
		loginFn: func(_ context.Context, email, password string) (domain.Session, error) {
			if email != "admin@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return domain.Session{User: &domain.Identity{ID: 1, Email: email, Role: domain.RoleAdmin}, Token: "tok"}, nil
		},
	}
	h := NewSessionHandler(sessions, &stubLocales{})

	c, rec := newContext(http.MethodPost, "/session/login", `{"email":"admin@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp sessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if !resp.Authenticated || resp.User.Role != domain.RoleAdmin || resp.Locale != "en" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if resp.ExpiresAt == nil || !resp.ExpiresAt.Equal(exp) {
		t.Fatalf("expected expiry in response")
	}
}

func TestSessionHandler_Login_Rejected(t *testing.T) {
	sessions := &stubSessions{
		loginFn: func(context.Context, string, string) (domain.Session, error) {
			return domain.Session{}, domain.ErrAuthentication
		},
	}
	h := NewSessionHandler(sessions, &stubLocales{})

	c, _ := newContext(http.MethodPost, "/session/login", `{"email":"admin@example.com","password":"bad"}`)
	if err := h.Login(c); err != domain.ErrAuthentication {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestSessionHandler_Login_Invalid(t *testing.T) {
	h := NewSessionHandler(&stubSessions{}, &stubLocales{})

	c, _ := newContext(http.MethodPost, "/session/login", `{`)
	if code := httpCode(t, h.Login(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}

	c, _ = newContext(http.MethodPost, "/session/login", `{"email":"not-an-email","password":"x"}`)
	if code := httpCode(t, h.Login(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
}

func TestSessionHandler_Register(t *testing.T) {
	var got domain.Registration
	sessions := &stubSessions{
		registerFn: func(_ context.Context, reg domain.Registration) (domain.Session, error) {
			got = reg
			return domain.Session{User: &domain.Identity{ID: 9, Email: reg.Email, Role: reg.Role}}, nil
		},
	}
	h := NewSessionHandler(sessions, &stubLocales{})

	c, rec := newContext(http.MethodPost, "/session/register",
		`{"name":"Shop","email":"shop@example.com","password":"passw0rd!","role":"merchant"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.Name != "Shop" || got.Role != domain.RoleMerchant {
		t.Fatalf("unexpected registration %+v", got)
	}

	var resp registerResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Authenticated || resp.Next != "/login" || resp.User.ID != 9 {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestSessionHandler_Register_Validation(t *testing.T) {
	h := NewSessionHandler(&stubSessions{
		registerFn: func(context.Context, domain.Registration) (domain.Session, error) {
			t.Fatalf("should not be called")
			return domain.Session{}, nil
		},
	}, &stubLocales{})

	cases := map[string]string{
		"short password": `{"name":"A","email":"a@x.io","password":"a1!","role":"merchant"}`,
		"no digit":       `{"name":"A","email":"a@x.io","password":"password!","role":"merchant"}`,
		"no special":     `{"name":"A","email":"a@x.io","password":"password1","role":"merchant"}`,
		"admin role":     `{"name":"A","email":"a@x.io","password":"passw0rd!","role":"admin"}`,
		"missing name":   `{"email":"a@x.io","password":"passw0rd!","role":"customer"}`,
	}
	for name, body := range cases {
		c, _ := newContext(http.MethodPost, "/session/register", body)
		if code := httpCode(t, h.Register(c)); code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: expected 422, got %d", name, code)
		}
	}
}

func TestSessionHandler_Logout(t *testing.T) {
	sessions := &stubSessions{session: domain.Session{User: &domain.Identity{ID: 1}, Token: "tok"}}
	h := NewSessionHandler(sessions, &stubLocales{})

	c, rec := newContext(http.MethodPost, "/session/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if sessions.logouts != 1 || rec.Code != http.StatusOK {
		t.Fatalf("logout not applied")
	}
	if strings.Contains(rec.Body.String(), `"authenticated":true`) {
		t.Fatalf("still authenticated: %s", rec.Body.String())
	}
}

func TestSessionHandler_SetLanguage(t *testing.T) {
	locales := &stubLocales{}
	h := NewSessionHandler(&stubSessions{}, locales)

	c, rec := newContext(http.MethodPut, "/session/language", `{"locale":"ar"}`)
	if err := h.SetLanguage(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp languageResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Locale.Code != "ar" || resp.Document.Dir != domain.DirRTL {
		t.Fatalf("unexpected response %+v", resp)
	}

	c, _ = newContext(http.MethodPut, "/session/language", `{"locale":"fr"}`)
	if code := httpCode(t, h.SetLanguage(c)); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}
	if locales.code != "ar" {
		t.Fatalf("unsupported locale must not change state")
	}
}
