package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

const (
	DefaultRecentLimit   = 5
	DefaultActivityLimit = 10
	DefaultTimeRange     = "30d"
	DefaultTopPostsLimit = 10
)

func (c *Client) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var s DashboardStats
	if err := c.call(ctx, http.MethodGet, "/dashboard/stats", RequestOptions{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// RecentPosts lists the caller's latest posts; limit <= 0 uses the default of 5.
func (c *Client) RecentPosts(ctx context.Context, limit int) (Series, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var out struct {
		RecentPosts Series `json:"recentPosts"`
	}
	if err := c.call(ctx, http.MethodGet, "/dashboard/recent-posts", RequestOptions{Query: limitQuery(limit)}, &out); err != nil {
		return nil, err
	}
	return out.RecentPosts, nil
}

func (c *Client) RecentComments(ctx context.Context, limit int) (Series, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	var out struct {
		RecentComments Series `json:"recentComments"`
	}
	if err := c.call(ctx, http.MethodGet, "/dashboard/recent-comments", RequestOptions{Query: limitQuery(limit)}, &out); err != nil {
		return nil, err
	}
	return out.RecentComments, nil
}

func (c *Client) ActivityFeed(ctx context.Context, limit int) (Series, error) {
	if limit <= 0 {
		limit = DefaultActivityLimit
	}
	var out struct {
		Activities Series `json:"activities"`
	}
	if err := c.call(ctx, http.MethodGet, "/dashboard/activity-feed", RequestOptions{Query: limitQuery(limit)}, &out); err != nil {
		return nil, err
	}
	return out.Activities, nil
}

func timeRangeQuery(timeRange string) url.Values {
	if timeRange == "" {
		timeRange = DefaultTimeRange
	}
	q := url.Values{}
	q.Set("time_range", timeRange)
	return q
}

func (c *Client) AnalyticsOverview(ctx context.Context, timeRange string) (*AnalyticsOverview, error) {
	var out AnalyticsOverview
	if err := c.call(ctx, http.MethodGet, "/analytics/overview", RequestOptions{Query: timeRangeQuery(timeRange)}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) TopPosts(ctx context.Context, timeRange string, limit int) (Series, error) {
	if limit <= 0 {
		limit = DefaultTopPostsLimit
	}
	q := timeRangeQuery(timeRange)
	q.Set("limit", limitQuery(limit).Get("limit"))

	var out struct {
		TopPosts Series `json:"topPosts"`
	}
	if err := c.call(ctx, http.MethodGet, "/analytics/top-posts", RequestOptions{Query: q}, &out); err != nil {
		return nil, err
	}
	return out.TopPosts, nil
}

func (c *Client) ViewsOverTime(ctx context.Context, timeRange string) (Series, error) {
	var out struct {
		ViewsOverTime Series `json:"viewsOverTime"`
	}
	if err := c.call(ctx, http.MethodGet, "/analytics/views-over-time", RequestOptions{Query: timeRangeQuery(timeRange)}, &out); err != nil {
		return nil, err
	}
	return out.ViewsOverTime, nil
}

func (c *Client) AudienceGrowth(ctx context.Context, timeRange string) (Series, error) {
	var out struct {
		AudienceGrowth Series `json:"audienceGrowth"`
	}
	if err := c.call(ctx, http.MethodGet, "/analytics/audience-growth", RequestOptions{Query: timeRangeQuery(timeRange)}, &out); err != nil {
		return nil, err
	}
	return out.AudienceGrowth, nil
}
