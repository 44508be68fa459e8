package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// ---------------------------------------------------------------------------
// In-memory stubs
// ---------------------------------------------------------------------------

type stubStateStore struct {
	session    domain.Session
	locale     string
	saveErr    error
	loadErr    error
	saves      int
	clears     int
	localeSets []string
}

func (s *stubStateStore) LoadSession(context.Context) (domain.Session, error) {
	if s.loadErr != nil {
		return domain.Session{}, s.loadErr
	}
	return s.session, nil
}

func (s *stubStateStore) SaveSession(_ context.Context, sess domain.Session) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.session = sess
	return nil
}

func (s *stubStateStore) ClearSession(context.Context) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.clears++
	s.session = domain.Session{}
	return nil
}

func (s *stubStateStore) LoadLocale(context.Context) (string, error) {
	if s.loadErr != nil {
		return "", s.loadErr
	}
	return s.locale, nil
}

func (s *stubStateStore) SaveLocale(_ context.Context, code string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.locale = code
	s.localeSets = append(s.localeSets, code)
	return nil
}

func (s *stubStateStore) Ping(context.Context) error  { return nil }
func (s *stubStateStore) Close(context.Context) error { return nil }

type stubGateway struct {
	loginFn    func(ctx context.Context, email, password string) (json.RawMessage, error)
	registerFn func(ctx context.Context, reg domain.Registration) (json.RawMessage, error)
}

func (g *stubGateway) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	if g.loginFn == nil {
		return nil, errors.New("login not stubbed")
	}
	return g.loginFn(ctx, email, password)
}

func (g *stubGateway) Register(ctx context.Context, reg domain.Registration) (json.RawMessage, error) {
	if g.registerFn == nil {
		return nil, errors.New("register not stubbed")
	}
	return g.registerFn(ctx, reg)
}

type recordingSink struct {
	token  string
	locale string
	tokens []string
}

func (r *recordingSink) SetToken(token string) {
	r.token = token
	r.tokens = append(r.tokens, token)
}

func (r *recordingSink) SetLocale(locale string) { r.locale = locale }

// gatedSink blocks the push of one chosen token or locale until release is
// closed, signalling entered when it starts waiting.
type gatedSink struct {
	gateToken  string
	gateLocale string
	entered    chan struct{}
	release    chan struct{}

	mu     sync.Mutex
	token  string
	locale string
}

func newGatedSink(token, locale string) *gatedSink {
	return &gatedSink{
		gateToken:  token,
		gateLocale: locale,
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
}

func (g *gatedSink) SetToken(token string) {
	if g.gateToken != "" && token == g.gateToken {
		close(g.entered)
		<-g.release
	}
	g.mu.Lock()
	g.token = token
	g.mu.Unlock()
}

func (g *gatedSink) SetLocale(locale string) {
	if g.gateLocale != "" && locale == g.gateLocale {
		close(g.entered)
		<-g.release
	}
	g.mu.Lock()
	g.locale = locale
	g.mu.Unlock()
}

func (g *gatedSink) state() (token, locale string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.token, g.locale
}

type fixedSession domain.Session

func (f fixedSession) Current() domain.Session { return domain.Session(f) }

func admin() domain.Session {
	return domain.Session{User: &domain.Identity{ID: 1, Email: "admin@example.com", Name: "Admin", Role: domain.RoleAdmin}, Token: "tok"}
}

func withRole(role string) domain.Session {
	return domain.Session{User: &domain.Identity{ID: 2, Email: role + "@example.com", Name: role, Role: role}, Token: "tok"}
}
