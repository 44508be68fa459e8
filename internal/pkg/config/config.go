package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const envPrefix = "FAQ_"

type Config struct {
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	API     APIConfig
	State   StateConfig
	Redis   RedisConfig
	Mongo   MongoConfig
	Console ConsoleConfig
	Import  ImportConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8080"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=15s"`
}

type StateConfig struct {
	// Driver is one of file, memory, redis, mongo.
	Driver string `env:"STATE_DRIVER, default=file"`
	// Path defaults to <user config dir>/faqconsole/state.json.
	Path      string `env:"STATE_PATH"`
	KeyPrefix string `env:"STATE_KEY_PREFIX, default=faqconsole:"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=faqconsole"`
}

type ConsoleConfig struct {
	Addr            string        `env:"CONSOLE_ADDR,             default=:8081"`
	ShutdownTimeout time.Duration `env:"CONSOLE_SHUTDOWN_TIMEOUT, default=10s"`
}

type ImportConfig struct {
	Workers int `env:"IMPORT_WORKERS, default=4"`
}

// IsProduction reports whether Env selects production behaviour (JSON logs).
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads FAQ_* environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.PrefixLookuper(envPrefix, lookuper),
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.State.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.State.Path = filepath.Join(dir, "faqconsole", "state.json")
	}
	return &cfg, nil
}
