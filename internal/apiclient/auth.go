package apiclient

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
)

// Login performs the form-encoded password grant against /auth/login and
// persists the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*Token, error) {
	tokenURL := c.baseURL + "/auth/login"
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := conf.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) && rErr.Response != nil {
			return nil, &HTTPStatusError{Code: rErr.Response.StatusCode, Message: detailMessage(rErr.Body)}
		}
		c.log.Warn("login request failed", "error", err)
		return nil, &NetworkError{Method: http.MethodPost, URL: tokenURL, Err: err}
	}

	out := &Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
		Expiry:      tok.Expiry,
	}
	if err := c.SetToken(ctx, out.AccessToken); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, &ValidationError{Field: "username", Message: "Username is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return nil, &ValidationError{Field: "email", Message: "Email is required"}
	}
	if req.Password == "" {
		return nil, &ValidationError{Field: "password", Message: "Password is required"}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}

	var u User
	if err := c.call(ctx, http.MethodPost, "/auth/register", RequestOptions{Body: req, SkipAuth: true}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Logout drops the token from memory and from the store.
func (c *Client) Logout(ctx context.Context) error {
	return c.SetToken(ctx, "")
}

func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", RequestOptions{SkipAuth: true}, nil)
}
