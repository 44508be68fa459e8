package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

// SessionService owns the current identity and bearer credential.
// Every mutation replaces both wholesale, pushes the credential to the
// API client and persists the result.
type SessionService struct {
	// writeMu serialises mutations so the session, the client credential and
	// the persisted copy always end on the same value.
	writeMu sync.Mutex
	mu      sync.RWMutex
	session domain.Session

	gateway ports.AuthGateway
	store   ports.StateStore
	sink    ports.HeaderSink
	log     zerolog.Logger
	now     func() time.Time
}

// NewSessionService returns an anonymous SessionService. sink may be nil.
func NewSessionService(gateway ports.AuthGateway, store ports.StateStore, sink ports.HeaderSink, log zerolog.Logger) *SessionService {
	return &SessionService{
		gateway: gateway,
		store:   store,
		sink:    sink,
		log:     log,
		now:     time.Now,
	}
}

// Restore loads the persisted session. Incomplete sessions and sessions whose
// token has expired are discarded.
func (s *SessionService) Restore(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	sess, err := s.store.LoadSession(ctx)
	if err != nil {
		return err
	}

	switch {
	case !sess.Complete():
		s.log.Warn().Msg("persisted session incomplete, discarding")
		sess = domain.Session{}
		s.persist(ctx, sess)
	case sess.Authenticated():
		if exp := tokenExpiry(sess.Token); !exp.IsZero() && !s.now().Before(exp) {
			s.log.Warn().Time("expired_at", exp).Msg("persisted credential expired, discarding")
			sess = domain.Session{}
			s.persist(ctx, sess)
		}
	}

	s.set(sess)
	return nil
}

// Login exchanges credentials for a session. Any non-success response is
// reported as ErrAuthentication without further detail.
func (s *SessionService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	raw, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			s.log.Info().Int("status", reqErr.Status).Str("email", email).Msg("login rejected")
			return domain.Session{}, domain.ErrAuthentication
		}
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}

	result, err := decodeAuthResponse(raw)
	if err != nil {
		return domain.Session{}, fmt.Errorf("login: %w", err)
	}
	if result.User == nil || result.Token == "" {
		return domain.Session{}, fmt.Errorf("login: %w: response lacks user or token", domain.ErrDecode)
	}

	s.replace(ctx, result)
	s.log.Info().Uint64("user_id", result.User.ID).Str("role", result.User.Role).Msg("logged in")
	return result, nil
}

// Register creates an account. When the response carries both user and
// token the session is replaced; when it carries only the user the session
// is cleared, so a previous credential never outlives its identity.
// The decoded response is returned in both cases.
func (s *SessionService) Register(ctx context.Context, reg domain.Registration) (domain.Session, error) {
	raw, err := s.gateway.Register(ctx, reg)
	if err != nil {
		var reqErr *domain.RequestError
		if errors.As(err, &reqErr) {
			s.log.Info().Int("status", reqErr.Status).Str("email", reg.Email).Msg("registration rejected")
			return domain.Session{}, domain.ErrRegistration
		}
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}

	result, err := decodeAuthResponse(raw)
	if err != nil {
		return domain.Session{}, fmt.Errorf("register: %w", err)
	}
	if result.User == nil {
		return domain.Session{}, fmt.Errorf("register: %w: response lacks user", domain.ErrDecode)
	}

	if result.Token == "" {
		s.replace(ctx, domain.Session{})
		s.log.Info().Uint64("user_id", result.User.ID).Msg("registered without credential, login required")
		return result, nil
	}

	s.replace(ctx, result)
	s.log.Info().Uint64("user_id", result.User.ID).Str("role", result.User.Role).Msg("registered and logged in")
	return result, nil
}

// Logout clears the session. It never fails and makes no network call.
func (s *SessionService) Logout(ctx context.Context) {
	s.replace(ctx, domain.Session{})
	s.log.Info().Msg("logged out")
}

// Current returns a copy of the session.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.session
	if sess.User != nil {
		u := *sess.User
		sess.User = &u
	}
	return sess
}

// IsAuthenticated reports whether an identity is present.
func (s *SessionService) IsAuthenticated() bool {
	return s.Current().Authenticated()
}

// ExpiresAt returns the credential's unverified exp claim, or the zero time
// when there is no credential or it carries no expiry.
func (s *SessionService) ExpiresAt() time.Time {
	return tokenExpiry(s.Current().Token)
}

func (s *SessionService) replace(ctx context.Context, sess domain.Session) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.set(sess)
	s.persist(ctx, sess)
}

// set requires writeMu.
func (s *SessionService) set(sess domain.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.SetToken(sess.Token)
	}
}

func (s *SessionService) persist(ctx context.Context, sess domain.Session) {
	var err error
	if sess.Authenticated() {
		err = s.store.SaveSession(ctx, sess)
	} else {
		err = s.store.ClearSession(ctx)
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to persist session")
	}
}

type authPayload struct {
	User  *domain.Identity `json:"user"`
	Token string           `json:"token"`
}

// authEnvelope accepts both the nested {data:{user,token}} and the flat
// {user,token} response shapes. The nested one wins when present.
type authEnvelope struct {
	Data *authPayload `json:"data"`
	authPayload
}

func decodeAuthResponse(raw json.RawMessage) (domain.Session, error) {
	if len(raw) == 0 {
		return domain.Session{}, fmt.Errorf("%w: empty auth response", domain.ErrDecode)
	}

	var env authEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return domain.Session{}, fmt.Errorf("%w: %v", domain.ErrDecode, err)
	}

	p := env.authPayload
	if env.Data != nil && (env.Data.User != nil || env.Data.Token != "") {
		p = *env.Data
	}
	return domain.Session{User: p.User, Token: p.Token}, nil
}

func tokenExpiry(token string) time.Time {
	if token == "" {
		return time.Time{}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}
	return exp.Time
}
