package cli

import (
	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

func (a *cliApp) subscribersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subscribers",
		Short: "Inspect newsletter subscribers",
	}

	var skip, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List subscribers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			subs, err := a.rt.client.Subscribers(cmd.Context(), skip, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), subs)
		},
	}
	list.Flags().IntVar(&skip, "skip", 0, "offset")
	list.Flags().IntVar(&limit, "limit", apiclient.DefaultSubscribersLimit, "page size")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show subscriber counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.rt.client.SubscriberStats(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), s)
		},
	}

	cmd.AddCommand(list, stats)
	return cmd
}

func (a *cliApp) subscribeCommand() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "subscribe EMAIL",
		Short: "Subscribe an address to the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.rt.client.Subscribe(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "subscriber's full name")
	return cmd
}

func (a *cliApp) unsubscribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unsubscribe EMAIL",
		Short: "Remove an address from the newsletter",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			msg, err := a.rt.client.Unsubscribe(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
}

func (a *cliApp) likeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "like POST_ID",
		Short: "Toggle your like on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			msg, err := a.rt.client.ToggleLike(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
}

func (a *cliApp) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view POST_ID",
		Short: "Record a view of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			msg, err := a.rt.client.TrackView(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
}

func (a *cliApp) shareCommand() *cobra.Command {
	var platform string
	cmd := &cobra.Command{
		Use:   "share POST_ID",
		Short: "Record a share of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			msg, err := a.rt.client.TrackShare(cmd.Context(), id, platform)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
	cmd.Flags().StringVar(&platform, "platform", "link", "where the post was shared")
	return cmd
}

func (a *cliApp) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats POST_ID",
		Short: "Show engagement counts for a post, plus your own interactions when logged in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			stats, err := a.rt.client.PostStats(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := map[string]any{"stats": stats}
			if a.rt.client.Token() != "" {
				mine, err := a.rt.client.UserPostInteractions(cmd.Context(), id)
				if err != nil {
					return err
				}
				out["mine"] = mine
			}
			return printJSON(cmd.OutOrStdout(), out)
		},
	}
}
