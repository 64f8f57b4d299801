package cli

import (
	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

func (a *cliApp) postsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Read and manage posts",
	}

	var skip, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List published posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := a.rt.client.Posts(cmd.Context(), skip, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), posts)
		},
	}
	list.Flags().IntVar(&skip, "skip", 0, "offset")
	list.Flags().IntVar(&limit, "limit", apiclient.DefaultPostsLimit, "page size")

	var mineSkip, mineLimit int
	mine := &cobra.Command{
		Use:   "mine",
		Short: "List your own posts, drafts included",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			posts, err := a.rt.client.MyPosts(cmd.Context(), mineSkip, mineLimit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), posts)
		},
	}
	mine.Flags().IntVar(&mineSkip, "skip", 0, "offset")
	mine.Flags().IntVar(&mineLimit, "limit", apiclient.DefaultMyPostsLimit, "page size")

	get := &cobra.Command{
		Use:   "get POST_ID",
		Short: "Show one post and record a view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			p, err := a.rt.client.Post(cmd.Context(), id)
			if err != nil {
				return err
			}
			// View tracking is best effort, as on the post page.
			_, _ = a.rt.client.TrackView(cmd.Context(), id)
			return printJSON(cmd.OutOrStdout(), p)
		},
	}

	cmd.AddCommand(list, mine, get, a.postCreateCommand(), a.postUpdateCommand(), a.postDeleteCommand())
	return cmd
}

func postInputFlags(cmd *cobra.Command, in *apiclient.PostInput) {
	f := cmd.Flags()
	f.StringVar(&in.Title, "title", "", "post title")
	f.StringVar(&in.Content, "content", "", "post body")
	f.StringVar(&in.Summary, "summary", "", "short summary")
	f.BoolVar(&in.IsPublished, "publish", false, "publish instead of saving a draft")
}

func (a *cliApp) postCreateCommand() *cobra.Command {
	var in apiclient.PostInput
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a post",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.rt.client.CreatePost(cmd.Context(), in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	postInputFlags(cmd, &in)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func (a *cliApp) postUpdateCommand() *cobra.Command {
	var in apiclient.PostInput
	cmd := &cobra.Command{
		Use:   "update POST_ID",
		Short: "Replace a post's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			p, err := a.rt.client.UpdatePost(cmd.Context(), id, in)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), p)
		},
	}
	postInputFlags(cmd, &in)
	return cmd
}

func (a *cliApp) postDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete POST_ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			msg, err := a.rt.client.DeletePost(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}
}
