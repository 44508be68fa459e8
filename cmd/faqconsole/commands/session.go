package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/faqdesk/faqconsole/internal/core/domain"
)

type whoamiOutput struct {
	Authenticated bool             `json:"authenticated"`
	User          *domain.Identity `json:"user"`
	ExpiresAt     *time.Time       `json:"expires_at,omitempty"`
	Locale        string           `json:"locale"`
}

func newLoginCommand(c *cli) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Session.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (%s)\n", sess.User.Email, sess.User.Role)
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCommand(c *cli) *cobra.Command {
	var reg domain.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := c.app.Session.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if sess.Token == "" {
				fmt.Fprintln(out, "Account created; run 'faqconsole login' to sign in")
				return nil
			}
			fmt.Fprintf(out, "Account created; signed in as %s\n", sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "display name")
	cmd.Flags().StringVarP(&reg.Email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&reg.Password, "password", "p", "", "account password")
	cmd.Flags().StringVar(&reg.Role, "role", domain.RoleCustomer, "account role (merchant or customer)")
	for _, name := range []string{"name", "email", "password"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLogoutCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.app.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}

func newWhoamiCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess := c.app.Session.Current()
			out := whoamiOutput{
				Authenticated: sess.Authenticated(),
				User:          sess.User,
				Locale:        c.app.Translator.Current().Code,
			}
			if exp := c.app.Session.ExpiresAt(); !exp.IsZero() {
				out.ExpiresAt = &exp
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
