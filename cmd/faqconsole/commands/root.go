package commands

import (
	"context"

	"github.com/spf13/cobra"
)

// Execute runs the faqconsole CLI and releases the state store afterwards.
func Execute(ctx context.Context) error {
	c := &cli{}
	defer c.close()
	return newRootCmd(c).ExecuteContext(ctx)
}

// newRootCmd creates the root command. Every subcommand shares c, which is
// initialised once before the subcommand runs.
func newRootCmd(c *cli) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "faqconsole",
		Short:        "Admin console for the multilingual FAQ backend",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.init(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&c.opts.logLevel, "log-level", "", "log level (trace, debug, info, warn, error); overrides FAQ_LOG_LEVEL")
	flags.StringVar(&c.opts.apiURL, "api-url", "", "backend base URL; overrides FAQ_API_BASE_URL")
	flags.StringVar(&c.opts.stateDriver, "state", "", "state driver (file, memory, redis, mongo); overrides FAQ_STATE_DRIVER")

	rootCmd.AddCommand(
		newLoginCommand(c),
		newRegisterCommand(c),
		newLogoutCommand(c),
		newWhoamiCommand(c),
		newLangCommand(c),
		newTranslateCommand(c),
		newNavigateCommand(c),
		newRoutesCommand(c),
		newCategoriesCommand(c),
		newFAQsCommand(c),
		newStoresCommand(c),
		newServeCommand(c),
	)

	return rootCmd
}
