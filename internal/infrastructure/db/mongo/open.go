package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const connectTimeout = 10 * time.Second

// Config selects the MongoDB deployment and database holding console_state.
type Config struct {
	URI      string
	Database string
	// Timeout bounds server selection and the initial ping; defaults to 10s.
	Timeout time.Duration
}

// Open connects to MongoDB and returns a state store that owns the client.
// Writes are acknowledged by the majority so a restored session is never
// older than the last one saved.
func Open(ctx context.Context, cfg Config) (*StateStore, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = connectTimeout
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName("faqconsole").
		SetServerSelectionTimeout(timeout).
		SetWriteConcern(writeconcern.Majority())

	openCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(openCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo state store: %w", err)
	}
	if err := client.Ping(openCtx, nil); err != nil {
		_ = client.Disconnect(openCtx)
		return nil, fmt.Errorf("mongo state store: ping: %w", err)
	}

	return NewStateStore(client, client.Database(cfg.Database)), nil
}
