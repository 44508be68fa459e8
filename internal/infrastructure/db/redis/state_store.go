package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

// DefaultKeyPrefix namespaces the console keys.
const DefaultKeyPrefix = "faqconsole:"

const (
	sessionKey = "user"
	localeKey  = "language"
)

// StateStore keeps the session as JSON under <prefix>user and the locale
// as a plain string under <prefix>language. Keys never expire.
type StateStore struct {
	client *redis.Client
	prefix string
}

func NewStateStore(client *redis.Client, prefix string) *StateStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &StateStore{client: client, prefix: prefix}
}

func (s *StateStore) LoadSession(ctx context.Context) (domain.Session, error) {
	data, err := s.client.Get(ctx, s.prefix+sessionKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, fmt.Errorf("redis load session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return domain.Session{}, fmt.Errorf("redis decode session: %w", err)
	}
	return sess, nil
}

func (s *StateStore) SaveSession(ctx context.Context, sess domain.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("redis encode session: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+sessionKey, data, 0).Err(); err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *StateStore) ClearSession(ctx context.Context) error {
	if err := s.client.Del(ctx, s.prefix+sessionKey).Err(); err != nil {
		return fmt.Errorf("redis clear session: %w", err)
	}
	return nil
}

func (s *StateStore) LoadLocale(ctx context.Context) (string, error) {
	code, err := s.client.Get(ctx, s.prefix+localeKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis load locale: %w", err)
	}
	return code, nil
}

func (s *StateStore) SaveLocale(ctx context.Context, code string) error {
	if err := s.client.Set(ctx, s.prefix+localeKey, code, 0).Err(); err != nil {
		return fmt.Errorf("redis save locale: %w", err)
	}
	return nil
}

func (s *StateStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *StateStore) Close(context.Context) error {
	return s.client.Close()
}
