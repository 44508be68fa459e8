package commands

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/core/service"
)

func newNavigateCommand(c *cli) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "navigate <path>",
		Short: "Resolve a console path through the route guard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			nav, err := c.app.Navigator.Navigate(args[0])
			if err != nil {
				return err
			}
			if verbose {
				return printJSON(cmd.OutOrStdout(), nav)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", nav.Path, nav.Route.Name)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the full decision trail as JSON")
	return cmd
}

func newRoutesCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "List console routes and whether the session may open them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := c.app.Session.Current()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PATH\tNAME\tACCESS\tDECISION")
			for _, r := range c.app.Routes.Routes() {
				decision := "redirect " + r.Redirect
				if r.Redirect == "" {
					d := service.Authorize(r, sess)
					decision = d.Reason
					if !d.Allowed() {
						decision += " -> " + string(d.Redirect)
					}
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Path, r.Name, access(r.RequiresAuth, r.Role, r.Roles), decision)
			}
			return w.Flush()
		},
	}
}

func access(requiresAuth bool, role string, roles []string) string {
	switch {
	case role != "":
		return "role " + role
	case roles != nil:
		return "roles " + strings.Join(roles, ",")
	case requiresAuth:
		return "signed in"
	}
	return "public"
}
