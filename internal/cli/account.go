package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

func (a *cliApp) settingsCommand() *cobra.Command {
	var pairs []string
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change account settings",
		Long:  "Without --set the current settings are printed. Each --set takes key=value using the JSON field names, e.g. --set email_notifications=false.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current, err := a.rt.client.Settings(cmd.Context())
			if err != nil {
				return err
			}
			if len(pairs) == 0 {
				return printJSON(cmd.OutOrStdout(), current)
			}
			next, err := applySettings(*current, pairs)
			if err != nil {
				return err
			}
			saved, err := a.rt.client.UpdateSettings(cmd.Context(), next)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), saved)
		},
	}
	cmd.Flags().StringArrayVar(&pairs, "set", nil, "key=value to change")
	return cmd
}

// applySettings overlays key=value pairs on s through its JSON form so the
// accepted keys are exactly the wire names.
func applySettings(s apiclient.UserSettings, pairs []string) (apiclient.UserSettings, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	fields := map[string]any{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return s, err
	}
	known := map[string]bool{"blog_title": true, "blog_description": true}
	for k := range fields {
		known[k] = true
	}

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return s, fmt.Errorf("invalid setting %q, want key=value", pair)
		}
		if !known[key] {
			return s, fmt.Errorf("unknown setting %q", key)
		}
		if key == "blog_title" || key == "blog_description" {
			fields[key] = value
			continue
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return s, fmt.Errorf("setting %s expects true or false, got %q", key, value)
		}
		fields[key] = b
	}

	raw, err = json.Marshal(fields)
	if err != nil {
		return s, err
	}
	var out apiclient.UserSettings
	if err := json.Unmarshal(raw, &out); err != nil {
		return s, err
	}
	return out, nil
}

func (a *cliApp) profileCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage your profile",
	}

	fields := []struct{ flag, usage string }{
		{"username", "username"},
		{"email", "email address"},
		{"full-name", "display name"},
		{"bio", "short bio"},
		{"website", "website URL"},
		{"twitter", "twitter handle"},
		{"linkedin", "linkedin profile"},
	}
	update := &cobra.Command{
		Use:   "update",
		Short: "Change profile fields; only the flags given are sent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var upd apiclient.ProfileUpdate
			targets := map[string]**string{
				"username":  &upd.Username,
				"email":     &upd.Email,
				"full-name": &upd.FullName,
				"bio":       &upd.Bio,
				"website":   &upd.Website,
				"twitter":   &upd.Twitter,
				"linkedin":  &upd.LinkedIn,
			}
			changed := 0
			for name, dst := range targets {
				if !cmd.Flags().Changed(name) {
					continue
				}
				v, _ := cmd.Flags().GetString(name)
				*dst = &v
				changed++
			}
			if changed == 0 {
				return fmt.Errorf("nothing to update")
			}

			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			u, err := a.rt.client.UpdateProfile(cmd.Context(), upd)
			if err != nil {
				return err
			}
			if err := a.rt.session.UpdateUser(*u); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), a.rt.session.Snapshot().User)
		},
	}
	for _, f := range fields {
		update.Flags().String(f.flag, "", f.usage)
	}

	cmd.AddCommand(update)
	return cmd
}

func (a *cliApp) passwordCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage your password",
	}

	var change apiclient.PasswordChange
	changeCmd := &cobra.Command{
		Use:   "change",
		Short: "Change your password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			msg, err := a.rt.client.ChangePassword(cmd.Context(), change)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
	changeCmd.Flags().StringVar(&change.CurrentPassword, "current", "", "current password")
	changeCmd.Flags().StringVar(&change.NewPassword, "new", "", "new password")
	changeCmd.Flags().StringVar(&change.ConfirmPassword, "confirm", "", "new password again")

	cmd.AddCommand(changeCmd)
	return cmd
}

func (a *cliApp) accountCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Export or delete your account",
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Download all of your account data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := a.rt.client.ExportData(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), data)
		},
	}

	var yes bool
	del := &cobra.Command{
		Use:   "delete",
		Short: "Permanently delete your account and log out",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to delete the account without --yes")
			}
			msg, err := a.rt.client.DeleteAccount(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.rt.session.Logout(cmd.Context()); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	cmd.AddCommand(export, del)
	return cmd
}
