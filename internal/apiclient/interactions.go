package apiclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const DefaultSubscribersLimit = 50

type postRef struct {
	PostID int64 `json:"post_id"`
}

// TrackView records an anonymous view; no credentials are sent.
func (c *Client) TrackView(ctx context.Context, postID int64) (Message, error) {
	var out Message
	if err := c.call(ctx, http.MethodPost, "/interactions/view", RequestOptions{Body: postRef{PostID: postID}, SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ToggleLike(ctx context.Context, postID int64) (Message, error) {
	var out Message
	if err := c.call(ctx, http.MethodPost, "/interactions/like", RequestOptions{Body: postRef{PostID: postID}}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) TrackShare(ctx context.Context, postID int64, platform string) (Message, error) {
	body := struct {
		PostID   int64  `json:"post_id"`
		Platform string `json:"platform"`
	}{PostID: postID, Platform: platform}

	var out Message
	if err := c.call(ctx, http.MethodPost, "/interactions/share", RequestOptions{Body: body, SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostStats(ctx context.Context, postID int64) (*PostStats, error) {
	var s PostStats
	path := fmt.Sprintf("/interactions/post/%d/stats", postID)
	if err := c.call(ctx, http.MethodGet, path, RequestOptions{SkipAuth: true}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UserPostInteractions(ctx context.Context, postID int64) (*UserPostInteractions, error) {
	var out UserPostInteractions
	path := fmt.Sprintf("/interactions/post/%d/user-interactions", postID)
	if err := c.call(ctx, http.MethodGet, path, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Subscribe(ctx context.Context, email, fullName string) (Message, error) {
	body := struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
	}{Email: email, FullName: fullName}

	var out Message
	if err := c.call(ctx, http.MethodPost, "/interactions/subscribe", RequestOptions{Body: body, SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Unsubscribe(ctx context.Context, email string) (Message, error) {
	q := url.Values{}
	q.Set("email", email)

	var out Message
	if err := c.call(ctx, http.MethodPost, "/interactions/unsubscribe", RequestOptions{Query: q, SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Subscribers(ctx context.Context, skip, limit int) ([]Subscriber, error) {
	if limit <= 0 {
		limit = DefaultSubscribersLimit
	}
	var out []Subscriber
	if err := c.call(ctx, http.MethodGet, "/subscribers", RequestOptions{Query: pageQuery(skip, limit)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubscriberStats(ctx context.Context) (*SubscriberStats, error) {
	var s SubscriberStats
	if err := c.call(ctx, http.MethodGet, "/subscribers/stats", RequestOptions{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
