package cli

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

func (a *cliApp) loginCommand() *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}

			if _, err := a.rt.session.Login(cmd.Context(), username, password); err != nil {
				return err
			}
			snap := a.rt.session.Snapshot()
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"state": snap.State.String(),
				"user":  snap.User,
			})
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

func (a *cliApp) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.rt.session.Logout(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]string{"state": a.rt.session.Snapshot().State.String()})
		},
	}
}

func (a *cliApp) registerCommand() *cobra.Command {
	var req apiclient.RegisterRequest
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account (does not log in)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			u, err := a.rt.session.Register(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
	f := cmd.Flags()
	f.StringVar(&req.Username, "username", "", "username")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.FullName, "full-name", "", "display name")
	f.StringVar(&req.Password, "password", "", "password")
	f.StringVar(&req.ConfirmPassword, "confirm-password", "", "password again")
	return cmd
}

func (a *cliApp) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Verify the stored token and show the current user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.rt.session.Rehydrate(cmd.Context()); err != nil {
				return err
			}
			snap := a.rt.session.Snapshot()
			out := map[string]any{"state": snap.State.String()}
			if snap.User != nil {
				out["user"] = snap.User
			}
			if snap.Claims != nil && !snap.Claims.ExpiresAt.IsZero() {
				out["expires_at"] = snap.Claims.ExpiresAt
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}

// requireLogin rehydrates and fails unless the stored token is accepted.
func (a *cliApp) requireLogin(cmd *cobra.Command) error {
	if err := a.rt.session.Rehydrate(cmd.Context()); err != nil {
		return err
	}
	if !a.rt.session.Snapshot().Authenticated() {
		return fmt.Errorf("not logged in; run blogctl login")
	}
	return nil
}
