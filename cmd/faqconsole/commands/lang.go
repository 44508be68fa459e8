package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newLangCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the display language",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "get",
			Short: "Print the current language",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				l := c.app.Translator.Current()
				doc := c.app.Translator.Document()
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", l.Code, l.Name, doc.Dir)
				return nil
			},
		},
		&cobra.Command{
			Use:   "set <code>",
			Short: "Switch the display language",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if !c.app.Translator.SetLocale(cmd.Context(), args[0]) {
					return fmt.Errorf("unsupported language %q", args[0])
				}
				l := c.app.Translator.Current()
				fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s (%s)\n", l.Name, l.Code)
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List supported languages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				current := c.app.Translator.Current().Code
				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				for _, l := range c.app.Translator.Supported() {
					marker := ""
					if l.Code == current {
						marker = "*"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, l.Code, l.Flag, l.Name)
				}
				return w.Flush()
			},
		},
	)

	return cmd
}

func newTranslateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "t <key>...",
		Short: "Translate catalog keys in the current language",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, key := range args {
				fmt.Fprintln(cmd.OutOrStdout(), c.app.Translator.T(key))
			}
			return nil
		},
	}
}
