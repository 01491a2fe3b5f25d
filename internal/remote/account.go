package remote

import (
	"context"
	"fmt"
)

// Identity represents the remote identity service's view of a user
type Identity struct {
	ID            string `json:"$id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"emailVerification"`
}

// Session represents an authenticated session issued by the identity service
type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

// CreateAccount registers a new account with the identity service
func (c *Client) CreateAccount(ctx context.Context, email, password, name string) (*Identity, error) {
	body := map[string]string{
		"userId":   "unique()",
		"email":    email,
		"password": password,
		"name":     name,
	}

	var identity Identity
	if err := c.do(ctx, "POST", "/account", body, &identity); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return &identity, nil
}

// CreateSession exchanges credentials for a new session
func (c *Client) CreateSession(ctx context.Context, email, password string) (*Session, error) {
	body := map[string]string{
		"email":    email,
		"password": password,
	}

	var session Session
	if err := c.do(ctx, "POST", "/account/sessions/email", body, &session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return &session, nil
}

// GetIdentity fetches the identity bound to the session in the context
func (c *Client) GetIdentity(ctx context.Context) (*Identity, error) {
	var identity Identity
	if err := c.do(ctx, "GET", "/account", nil, &identity); err != nil {
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}
	return &identity, nil
}

// UpdateName changes the display name of the current identity
func (c *Client) UpdateName(ctx context.Context, name string) error {
	if err := c.do(ctx, "PATCH", "/account/name", map[string]string{"name": name}, nil); err != nil {
		return fmt.Errorf("failed to update name: %w", err)
	}
	return nil
}

// UpdatePassword changes the password of the current identity
func (c *Client) UpdatePassword(ctx context.Context, newPassword, oldPassword string) error {
	body := map[string]string{
		"password":    newPassword,
		"oldPassword": oldPassword,
	}
	if err := c.do(ctx, "PATCH", "/account/password", body, nil); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// CreateVerification asks the identity service to send a verification email
func (c *Client) CreateVerification(ctx context.Context, redirectURL string) error {
	if err := c.do(ctx, "POST", "/account/verification", map[string]string{"url": redirectURL}, nil); err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

// ConfirmVerification confirms an email verification token
func (c *Client) ConfirmVerification(ctx context.Context, userID, secret string) error {
	body := map[string]string{
		"userId": userID,
		"secret": secret,
	}
	if err := c.do(ctx, "PUT", "/account/verification", body, nil); err != nil {
		return fmt.Errorf("failed to confirm verification: %w", err)
	}
	return nil
}

// DeleteSession invalidates the current session
func (c *Client) DeleteSession(ctx context.Context) error {
	if err := c.do(ctx, "DELETE", "/account/sessions/current", nil, nil); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
