package apiclient

import (
	"context"
	"net/http"
)

func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodGet, "/user/profile", RequestOptions{}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var u User
	if err := c.call(ctx, http.MethodPut, "/user/profile", RequestOptions{Body: update}, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ChangePassword(ctx context.Context, change PasswordChange) (Message, error) {
	if change.NewPassword == "" {
		return nil, &ValidationError{Field: "new_password", Message: "New password is required"}
	}
	if change.NewPassword != change.ConfirmPassword {
		return nil, &ValidationError{Field: "confirm_password", Message: "Passwords do not match"}
	}
	var out Message
	if err := c.call(ctx, http.MethodPut, "/user/change-password", RequestOptions{Body: change}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Settings(ctx context.Context) (*UserSettings, error) {
	var s UserSettings
	if err := c.call(ctx, http.MethodGet, "/user/settings", RequestOptions{}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) UpdateSettings(ctx context.Context, settings UserSettings) (*UserSettings, error) {
	var s UserSettings
	if err := c.call(ctx, http.MethodPut, "/user/settings", RequestOptions{Body: settings}, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) DeleteAccount(ctx context.Context) (Message, error) {
	var out Message
	if err := c.call(ctx, http.MethodDelete, "/user/account", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ExportData returns the account export as the backend shapes it.
func (c *Client) ExportData(ctx context.Context) (map[string]any, error) {
	var out map[string]any
	if err := c.call(ctx, http.MethodGet, "/user/export-data", RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}
