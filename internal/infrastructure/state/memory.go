package state

import (
	"context"
	"sync"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

type memoryStore struct {
	mu      sync.RWMutex
	session domain.Session
	locale  string
}

// NewMemory builds a store that forgets everything when the process exits.
func NewMemory() ports.StateStore {
	return &memoryStore{}
}

func (m *memoryStore) LoadSession(context.Context) (domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneSession(m.session), nil
}

func (m *memoryStore) SaveSession(_ context.Context, sess domain.Session) error {
	m.mu.Lock()
	m.session = cloneSession(sess)
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) ClearSession(context.Context) error {
	m.mu.Lock()
	m.session = domain.Session{}
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) LoadLocale(context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.locale, nil
}

func (m *memoryStore) SaveLocale(_ context.Context, code string) error {
	m.mu.Lock()
	m.locale = code
	m.mu.Unlock()
	return nil
}

func (m *memoryStore) Ping(context.Context) error  { return nil }
func (m *memoryStore) Close(context.Context) error { return nil }

func cloneSession(s domain.Session) domain.Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}
