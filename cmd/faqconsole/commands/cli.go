package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/core/ports"
	"github.com/faqdesk/faqconsole/internal/core/service"
	"github.com/faqdesk/faqconsole/internal/infrastructure/apiclient"
	"github.com/faqdesk/faqconsole/internal/infrastructure/catalog"
	mongodb "github.com/faqdesk/faqconsole/internal/infrastructure/db/mongo"
	redisdb "github.com/faqdesk/faqconsole/internal/infrastructure/db/redis"
	"github.com/faqdesk/faqconsole/internal/infrastructure/state"
	"github.com/faqdesk/faqconsole/internal/pkg/config"
	"github.com/faqdesk/faqconsole/pkg/logger"
)

const closeTimeout = 5 * time.Second

type globalOptions struct {
	logLevel    string
	apiURL      string
	stateDriver string
}

// cli holds the process-wide collaborators the commands operate on.
type cli struct {
	opts globalOptions

	cfg    *config.Config
	log    zerolog.Logger
	store  ports.StateStore
	client *apiclient.Client
	app    *service.App
}

func (c *cli) init(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if c.opts.logLevel != "" {
		cfg.LogLevel = c.opts.logLevel
	}
	if c.opts.apiURL != "" {
		cfg.API.BaseURL = c.opts.apiURL
	}
	if c.opts.stateDriver != "" {
		cfg.State.Driver = c.opts.stateDriver
	}
	c.cfg = cfg

	c.log = logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Output:  cmd.ErrOrStderr(),
		Service: "faqconsole",
	})

	c.store, err = state.New(ctx, state.Config{
		Driver: cfg.State.Driver,
		Path:   cfg.State.Path,
		Redis: redisdb.Config{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.State.KeyPrefix,
		},
		Mongo: mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		},
	}, logger.Component("state"))
	if err != nil {
		return err
	}

	c.client = apiclient.New(apiclient.Config{
		BaseURL:    cfg.API.BaseURL,
		Timeout:    cfg.API.Timeout,
		OnResponse: metrics.ObserveUpstream,
	}, logger.Component("apiclient"))

	c.app, err = service.Bootstrap(ctx, service.Dependencies{
		State:   c.store,
		Auth:    c.client,
		Headers: c.client,
		Catalog: catalog.MustLoad(),
		Log:     c.log,
	})
	return err
}

func (c *cli) close() {
	if c.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	if err := c.store.Close(ctx); err != nil {
		c.log.Warn().Err(err).Msg("closing state store")
	}
}

// printJSON writes v indented. Raw backend payloads are re-indented as is.
func printJSON(w io.Writer, v any) error {
	var data []byte
	switch raw := v.(type) {
	case json.RawMessage:
		if len(raw) == 0 {
			return nil
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return fmt.Errorf("format response: %w", err)
		}
		data = buf.Bytes()
	default:
		var err error
		if data, err = json.MarshalIndent(v, "", "  "); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, string(data))
	return err
}
