// Package state builds the persisted console state store from configuration.
package state

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/faqdesk/faqconsole/internal/core/ports"
	mongodb "github.com/faqdesk/faqconsole/internal/infrastructure/db/mongo"
	redisdb "github.com/faqdesk/faqconsole/internal/infrastructure/db/redis"
)

// Driver identifiers.
const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
	DriverMongo  = "mongo"
)

// Config selects and configures a driver. Only the section matching Driver is read.
type Config struct {
	Driver string
	// Path is the JSON file used by the file driver.
	Path string

	Redis redisdb.Config
	Mongo mongodb.Config
}

// New creates a state store for cfg.Driver, defaulting to the file driver.
func New(ctx context.Context, cfg Config, log zerolog.Logger) (ports.StateStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFile
	}
	log = log.With().Str("driver", driver).Logger()

	switch driver {
	case DriverFile:
		if cfg.Path == "" {
			return nil, fmt.Errorf("file state driver requires a path")
		}
		log.Debug().Str("path", cfg.Path).Msg("using file state store")
		return NewFile(cfg.Path), nil
	case DriverMemory:
		return NewMemory(), nil
	case DriverRedis:
		store, err := redisdb.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("addr", cfg.Redis.Addr).Msg("using redis state store")
		return store, nil
	case DriverMongo:
		store, err := mongodb.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		log.Debug().Str("database", cfg.Mongo.Database).Msg("using mongo state store")
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported state store driver: %s", driver)
	}
}
