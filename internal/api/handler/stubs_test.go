package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
)

type stubSessions struct {
	session    domain.Session
	expires    time.Time
	loginFn    func(ctx context.Context, email, password string) (domain.Session, error)
	registerFn func(ctx context.Context, reg domain.Registration) (domain.Session, error)
	logouts    int
}

func (s *stubSessions) Login(ctx context.Context, email, password string) (domain.Session, error) {
	sess, err := s.loginFn(ctx, email, password)
	if err == nil {
		s.session = sess
	}
	return sess, err
}

func (s *stubSessions) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	return s.registerFn(ctx, reg)
}

func (s *stubSessions) Logout(context.Context) {
	s.logouts++
	s.session = domain.Session{}
}

func (s *stubSessions) Current() domain.Session { return s.session }
func (s *stubSessions) ExpiresAt() time.Time    { return s.expires }

type stubLocales struct {
	code string
}

func (l *stubLocales) SetLocale(_ context.Context, code string) bool {
	if _, ok := domain.LookupLocale(code); !ok {
		return false
	}
	l.code = code
	return true
}

func (l *stubLocales) Current() domain.Locale {
	code := l.code
	if code == "" {
		code = domain.DefaultLocale
	}
	loc, _ := domain.LookupLocale(code)
	return loc
}

func (l *stubLocales) Document() domain.Document          { return domain.DocumentFor(l.Current().Code) }
func (l *stubLocales) Supported() []domain.Locale         { return domain.SupportedLocales() }
func (l *stubLocales) T(key string) string                { return l.Current().Code + ":" + key }
func (l *stubLocales) Labels(...string) map[string]string { return map[string]string{} }

type stubResources struct {
	ports.ResourceClient
	lastID   string
	lastBody any
	lastList ports.FAQListParams
	lastGet  ports.FAQGetParams
	response json.RawMessage
	err      error
}

func (s *stubResources) GetCategories(context.Context) (json.RawMessage, error) {
	return s.response, s.err
}

func (s *stubResources) GetCategory(_ context.Context, id string) (json.RawMessage, error) {
	s.lastID = id
	return s.response, s.err
}

func (s *stubResources) CreateCategory(_ context.Context, body any) (json.RawMessage, error) {
	s.lastBody = body
	return s.response, s.err
}

func (s *stubResources) DeleteCategory(_ context.Context, id string) (json.RawMessage, error) {
	s.lastID = id
	return s.response, s.err
}

func (s *stubResources) GetFAQs(_ context.Context, p ports.FAQListParams) (json.RawMessage, error) {
	s.lastList = p
	return s.response, s.err
}

func (s *stubResources) GetFAQ(_ context.Context, id string, p ports.FAQGetParams) (json.RawMessage, error) {
	s.lastID, s.lastGet = id, p
	return s.response, s.err
}

func (s *stubResources) GetStore(_ context.Context, id string) (json.RawMessage, error) {
	s.lastID = id
	return s.response, s.err
}

type stubImporter struct {
	got     []domain.FAQInput
	results []queue.ImportResult
}

func (s *stubImporter) Run(_ context.Context, faqs []domain.FAQInput) []queue.ImportResult {
	s.got = faqs
	return s.results
}
