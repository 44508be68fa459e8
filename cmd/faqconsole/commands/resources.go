package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/core/domain"
	"github.com/faqdesk/faqconsole/internal/core/ports"
)

// payloadFlags carries a JSON request body given inline or from a file.
// Category commands also accept --name, which builds the body.
type payloadFlags struct {
	named bool
	name  string
	data  string
	file  string
}

func (p *payloadFlags) register(cmd *cobra.Command) {
	sources := []string{"data", "file"}
	cmd.Flags().StringVarP(&p.data, "data", "d", "", "JSON request body")
	cmd.Flags().StringVarP(&p.file, "file", "f", "", "file holding the JSON request body, - for stdin")
	if p.named {
		cmd.Flags().StringVarP(&p.name, "name", "n", "", "category name")
		sources = append(sources, "name")
	}
	cmd.MarkFlagsMutuallyExclusive(sources...)
	cmd.MarkFlagsOneRequired(sources...)
}

func (p *payloadFlags) read(cmd *cobra.Command) (json.RawMessage, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case p.name != "":
		return json.Marshal(domain.CategoryInput{Name: p.name})
	case p.data != "":
		raw = []byte(p.data)
	case p.file == "-":
		raw, err = io.ReadAll(cmd.InOrStdin())
	default:
		raw, err = os.ReadFile(p.file)
	}
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid JSON")
	}
	return raw, nil
}

func parseID(s string) (string, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return "", fmt.Errorf("invalid id %q", s)
	}
	return strconv.FormatUint(id, 10), nil
}

// idCommand builds a subcommand taking a single numeric id argument.
func idCommand(use, short string, run func(cmd *cobra.Command, id string) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			out, err := run(cmd, id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func listCommand(short string, run func(cmd *cobra.Command) (json.RawMessage, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := run(cmd)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

func createCommand(short string, body *payloadFlags, run func(cmd *cobra.Command, raw json.RawMessage) (json.RawMessage, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := body.read(cmd)
			if err != nil {
				return err
			}
			out, err := run(cmd, raw)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
	body.register(cmd)
	return cmd
}

func updateCommand(short string, body *payloadFlags, run func(cmd *cobra.Command, id string, raw json.RawMessage) (json.RawMessage, error)) *cobra.Command {
	cmd := idCommand("update", short, func(cmd *cobra.Command, id string) (json.RawMessage, error) {
		raw, err := body.read(cmd)
		if err != nil {
			return nil, err
		}
		return run(cmd, id, raw)
	})
	body.register(cmd)
	return cmd
}

func newCategoriesCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "categories",
		Aliases: []string{"category"},
		Short:   "Manage FAQ categories",
	}

	cmd.AddCommand(
		listCommand("List categories", func(cmd *cobra.Command) (json.RawMessage, error) {
			return c.client.GetCategories(cmd.Context())
		}),
		idCommand("get", "Show a category", func(cmd *cobra.Command, id string) (json.RawMessage, error) {
			return c.client.GetCategory(cmd.Context(), id)
		}),
		createCommand("Create a category", &payloadFlags{named: true}, func(cmd *cobra.Command, body json.RawMessage) (json.RawMessage, error) {
			return c.client.CreateCategory(cmd.Context(), body)
		}),
		updateCommand("Update a category", &payloadFlags{named: true}, func(cmd *cobra.Command, id string, body json.RawMessage) (json.RawMessage, error) {
			return c.client.UpdateCategory(cmd.Context(), id, body)
		}),
		idCommand("delete", "Delete a category", func(cmd *cobra.Command, id string) (json.RawMessage, error) {
			return c.client.DeleteCategory(cmd.Context(), id)
		}),
	)
	return cmd
}

func newFAQsCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "faqs",
		Aliases: []string{"faq"},
		Short:   "Manage FAQs",
	}

	var params ports.FAQListParams
	list := listCommand("List FAQs", func(cmd *cobra.Command) (json.RawMessage, error) {
		return c.client.GetFAQs(cmd.Context(), params)
	})
	list.Flags().StringVarP(&params.Search, "search", "s", "", "search text")
	list.Flags().IntVar(&params.Page, "page", 0, "page number")
	list.Flags().IntVar(&params.PageSize, "page-size", 0, "items per page")
	list.Flags().StringVar(&params.Sort, "sort", "", "sort order")

	var get ports.FAQGetParams
	show := idCommand("get", "Show an FAQ", func(cmd *cobra.Command, id string) (json.RawMessage, error) {
		return c.client.GetFAQ(cmd.Context(), id, get)
	})
	show.Flags().BoolVar(&get.IncludeAllTranslations, "all-translations", false, "include every translation, not only the current language")

	cmd.AddCommand(
		list,
		show,
		createCommand("Create an FAQ", &payloadFlags{}, func(cmd *cobra.Command, body json.RawMessage) (json.RawMessage, error) {
			return c.client.CreateFAQ(cmd.Context(), body)
		}),
		updateCommand("Update an FAQ", &payloadFlags{}, func(cmd *cobra.Command, id string, body json.RawMessage) (json.RawMessage, error) {
			return c.client.UpdateFAQ(cmd.Context(), id, body)
		}),
		idCommand("delete", "Delete an FAQ", func(cmd *cobra.Command, id string) (json.RawMessage, error) {
			return c.client.DeleteFAQ(cmd.Context(), id)
		}),
		newImportCommand(c),
	)
	return cmd
}

func newStoresCommand(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stores",
		Aliases: []string{"store"},
		Short:   "Browse stores",
	}

	cmd.AddCommand(
		listCommand("List stores", func(cmd *cobra.Command) (json.RawMessage, error) {
			return c.client.GetStores(cmd.Context())
		}),
		idCommand("get", "Show a store", func(cmd *cobra.Command, id string) (json.RawMessage, error) {
			return c.client.GetStore(cmd.Context(), id)
		}),
	)
	return cmd
}
