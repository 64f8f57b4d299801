package apiclient

import (
	"context"
	"fmt"
	"net/http"
)

const (
	DefaultPostsLimit    = 10
	DefaultMyPostsLimit  = 100
	DefaultCommentsLimit = 50
)

// Posts lists published posts without sending credentials.
func (c *Client) Posts(ctx context.Context, skip, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultPostsLimit
	}
	var out []Post
	if err := c.call(ctx, http.MethodGet, "/posts", RequestOptions{Query: pageQuery(skip, limit), SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyPosts(ctx context.Context, skip, limit int) ([]Post, error) {
	if limit <= 0 {
		limit = DefaultMyPostsLimit
	}
	var out []Post
	if err := c.call(ctx, http.MethodGet, "/posts/my-posts", RequestOptions{Query: pageQuery(skip, limit)}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Post(ctx context.Context, id int64) (*Post, error) {
	var p Post
	if err := c.call(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), RequestOptions{SkipAuth: true}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) CreatePost(ctx context.Context, in PostInput) (*Post, error) {
	var p Post
	if err := c.call(ctx, http.MethodPost, "/posts", RequestOptions{Body: in}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) UpdatePost(ctx context.Context, id int64, in PostInput) (*Post, error) {
	var p Post
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/posts/%d", id), RequestOptions{Body: in}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) DeletePost(ctx context.Context, id int64) (Message, error) {
	var out Message
	if err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) PostComments(ctx context.Context, postID int64, skip, limit int) ([]Comment, error) {
	if limit <= 0 {
		limit = DefaultCommentsLimit
	}
	var out []Comment
	path := fmt.Sprintf("/comments/post/%d", postID)
	if err := c.call(ctx, http.MethodGet, path, RequestOptions{Query: pageQuery(skip, limit), SkipAuth: true}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) MyComments(ctx context.Context) ([]Comment, error) {
	var out []Comment
	if err := c.call(ctx, http.MethodGet, "/comments/my-comments", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateComment(ctx context.Context, in CommentInput) (*Comment, error) {
	var cm Comment
	if err := c.call(ctx, http.MethodPost, "/comments", RequestOptions{Body: in}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) UpdateComment(ctx context.Context, id int64, in CommentInput) (*Comment, error) {
	var cm Comment
	if err := c.call(ctx, http.MethodPut, fmt.Sprintf("/comments/%d", id), RequestOptions{Body: in}, &cm); err != nil {
		return nil, err
	}
	return &cm, nil
}

func (c *Client) DeleteComment(ctx context.Context, id int64) (Message, error) {
	var out Message
	if err := c.call(ctx, http.MethodDelete, fmt.Sprintf("/comments/%d", id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
