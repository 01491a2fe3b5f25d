// Package remote implements the HTTP client for the hosted backend
// service: document database, file storage, identity and teams.
// The hosted service is an external collaborator; this package only
// speaks its REST contract and never reimplements it.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/islamizindagi/backend/internal/config"
)

type contextKey string

const sessionSecretKey contextKey = "sessionSecret"

// WithSessionSecret returns a context carrying the remote session secret
// for the current user; requests made with it are authenticated as that user
func WithSessionSecret(ctx context.Context, secret string) context.Context {
	return context.WithValue(ctx, sessionSecretKey, secret)
}

// SessionSecretFrom retrieves the remote session secret from context
func SessionSecretFrom(ctx context.Context) (string, bool) {
	secret, ok := ctx.Value(sessionSecretKey).(string)
	return secret, ok && secret != ""
}

// Client talks to the hosted backend service over HTTP
type Client struct {
	endpoint   string
	projectID  string
	databaseID string
	bucketID   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new remote client from configuration
//
// "apiKey" is optional; when set, requests without a session secret are
// authenticated as the privileged server identity.
func NewClient(cfg config.RemoteConfig, apiKey string) *Client {
	return &Client{
		endpoint:   cfg.Endpoint,
		projectID:  cfg.ProjectID,
		databaseID: cfg.DatabaseID,
		bucketID:   cfg.StorageBucketID,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// do performs a JSON request against the remote service and decodes
// the response body into out when out is non-nil
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.setAuthHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	return c.decodeResponse(resp, out)
}

// setAuthHeaders attaches project and authentication headers.
// A session secret from the context takes precedence over the API key.
func (c *Client) setAuthHeaders(req *http.Request) {
	req.Header.Set("X-Project-ID", c.projectID)
	if secret, ok := SessionSecretFrom(req.Context()); ok {
		req.Header.Set("X-Session", secret)
		return
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}

// decodeResponse checks the status code and decodes the body,
// converting service failures into *Error values
func (c *Client) decodeResponse(resp *http.Response, out any) error {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		svcErr := &Error{Code: resp.StatusCode}
		if err := json.Unmarshal(data, svcErr); err != nil || svcErr.Message == "" {
			svcErr.Message = http.StatusText(resp.StatusCode)
		}
		svcErr.Code = resp.StatusCode
		return svcErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
