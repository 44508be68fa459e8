package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dialTimeout = 5 * time.Second

// Config selects the Redis server and key namespace of the state store.
type Config struct {
	Addr     string
	Password string
	DB       int
	// KeyPrefix defaults to DefaultKeyPrefix.
	KeyPrefix string
	// Timeout bounds dialing and the initial ping; defaults to 5s.
	Timeout time.Duration
}

// Open connects to Redis and returns a state store that owns the client.
// The server must answer a ping within cfg.Timeout.
func Open(ctx context.Context, cfg Config) (*StateStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = dialTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: timeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis state store %s: %w", cfg.Addr, err)
	}

	return NewStateStore(client, cfg.KeyPrefix), nil
}
