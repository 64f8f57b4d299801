package cli

import (
	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

func (a *cliApp) commentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Read and write comments",
	}

	var skip, limit int
	list := &cobra.Command{
		Use:   "list POST_ID",
		Short: "List comments on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			comments, err := a.rt.client.PostComments(cmd.Context(), id, skip, limit)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), comments)
		},
	}
	list.Flags().IntVar(&skip, "skip", 0, "offset")
	list.Flags().IntVar(&limit, "limit", apiclient.DefaultCommentsLimit, "page size")

	mine := &cobra.Command{
		Use:   "mine",
		Short: "List comments you wrote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			comments, err := a.rt.client.MyComments(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), comments)
		},
	}

	var content string
	add := &cobra.Command{
		Use:   "add POST_ID",
		Short: "Comment on a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("post", args[0])
			if err != nil {
				return err
			}
			c, err := a.rt.client.CreateComment(cmd.Context(), apiclient.CommentInput{PostID: id, Content: content})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	add.Flags().StringVar(&content, "content", "", "comment text")
	_ = add.MarkFlagRequired("content")

	var newContent string
	edit := &cobra.Command{
		Use:   "edit COMMENT_ID",
		Short: "Change a comment's text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("comment", args[0])
			if err != nil {
				return err
			}
			c, err := a.rt.client.UpdateComment(cmd.Context(), id, apiclient.CommentInput{Content: newContent})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), c)
		},
	}
	edit.Flags().StringVar(&newContent, "content", "", "new comment text")
	_ = edit.MarkFlagRequired("content")

	del := &cobra.Command{
		Use:   "delete COMMENT_ID",
		Short: "Delete a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("comment", args[0])
			if err != nil {
				return err
			}
			msg, err := a.rt.client.DeleteComment(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), msg)
		},
	}

	cmd.AddCommand(list, mine, add, edit, del)
	return cmd
}
