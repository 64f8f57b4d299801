package cli

import (
	"github.com/spf13/cobra"

	"blogia/blog-client/internal/apiclient"
)

type dashboardView struct {
	Stats          *apiclient.DashboardStats `json:"stats"`
	RecentPosts    apiclient.Series          `json:"recent_posts"`
	RecentComments apiclient.Series          `json:"recent_comments"`
	Activity       apiclient.Series          `json:"activity"`
}

type analyticsView struct {
	Overview       *apiclient.AnalyticsOverview `json:"overview"`
	TopPosts       apiclient.Series             `json:"top_posts"`
	ViewsOverTime  apiclient.Series             `json:"views_over_time"`
	AudienceGrowth apiclient.Series             `json:"audience_growth"`
}

func (a *cliApp) dashboardCommand() *cobra.Command {
	var recent, activity int
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show author dashboard stats and recent activity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			var view dashboardView
			var err error
			if view.Stats, err = a.rt.client.DashboardStats(ctx); err != nil {
				return err
			}
			if view.RecentPosts, err = a.rt.client.RecentPosts(ctx, recent); err != nil {
				return err
			}
			if view.RecentComments, err = a.rt.client.RecentComments(ctx, recent); err != nil {
				return err
			}
			if view.Activity, err = a.rt.client.ActivityFeed(ctx, activity); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().IntVar(&recent, "recent", apiclient.DefaultRecentLimit, "number of recent posts and comments")
	cmd.Flags().IntVar(&activity, "activity", apiclient.DefaultActivityLimit, "number of activity entries")
	return cmd
}

func (a *cliApp) analyticsCommand() *cobra.Command {
	var timeRange string
	var top int
	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Show analytics for a time range (7d, 30d, 90d, 1y)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requireLogin(cmd); err != nil {
				return err
			}
			ctx := cmd.Context()
			var view analyticsView
			var err error
			if view.Overview, err = a.rt.client.AnalyticsOverview(ctx, timeRange); err != nil {
				return err
			}
			if view.TopPosts, err = a.rt.client.TopPosts(ctx, timeRange, top); err != nil {
				return err
			}
			if view.ViewsOverTime, err = a.rt.client.ViewsOverTime(ctx, timeRange); err != nil {
				return err
			}
			if view.AudienceGrowth, err = a.rt.client.AudienceGrowth(ctx, timeRange); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().StringVar(&timeRange, "range", apiclient.DefaultTimeRange, "time range")
	cmd.Flags().IntVar(&top, "top", apiclient.DefaultTopPostsLimit, "number of top posts")
	return cmd
}
