package commands

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/core/service"
	"github.com/faqdesk/faqconsole/internal/infrastructure/queue"
	"github.com/faqdesk/faqconsole/pkg/logger"
)

func newImportCommand(c *cli) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create FAQs in bulk from a YAML document, - for stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			faqs, err := service.ParseFAQImport(r)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = c.cfg.Import.Workers
			}
			results := queue.NewDispatcher(workers, c.client, logger.Component("import")).Run(cmd.Context(), faqs)
			failed := queue.Failed(results)
			metrics.ImportItemsTotal.WithLabelValues("created").Add(float64(len(results) - failed))
			metrics.ImportItemsTotal.WithLabelValues("failed").Add(float64(failed))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tCATEGORY\tRESULT\tELAPSED")
			for _, res := range results {
				outcome := "created"
				if res.Err != nil {
					outcome = res.Error
				}
				fmt.Fprintf(w, "%d\t%d\t%s\t%s\n", res.Index, res.CategoryID, outcome, res.Elapsed)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d FAQs failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent workers; defaults to FAQ_IMPORT_WORKERS")
	return cmd
}
