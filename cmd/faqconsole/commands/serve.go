package commands

import (
	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/api"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
	"github.com/faqdesk/faqconsole/pkg/logger"
)

func newServeCommand(c *cli) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the console HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.cfg.Console.Addr
			}

			e := api.NewRouter(api.Dependencies{
				App:      c.app,
				Client:   c.client,
				State:    c.store,
				Importer: queue.NewDispatcher(c.cfg.Import.Workers, c.client, logger.Component("import")),
				Log:      logger.Component("http"),
			})

			c.log.Info().
				Str("addr", addr).
				Str("api", c.client.BaseURL()).
				Str("state", c.cfg.State.Driver).
				Msg("console starting")
			return api.Serve(cmd.Context(), e, addr, c.cfg.Console.ShutdownTimeout, c.log)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address; defaults to FAQ_CONSOLE_ADDR")
	return cmd
}
