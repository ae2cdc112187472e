// Package identity talks to the remote identity provider.
package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRejected means the provider answered with a non-success status. Callers
// must not distinguish wrong-password from unknown-user; the provider's
// response body is deliberately not inspected.
var ErrRejected = errors.New("identity provider rejected credentials")

const defaultTimeout = 10 * time.Second

// Client issues login requests against the identity endpoint.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client for the given base URL. A zero timeout falls back
// to the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a profile with a single request. The role a
// user picks in the dashboard is never transmitted; it is a local designation
// the provider knows nothing about.
func (c *Client) Login(ctx context.Context, username, password string) (User, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return User{}, fmt.Errorf("encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return User{}, fmt.Errorf("build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return User{}, fmt.Errorf("identity request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return User{}, fmt.Errorf("%w: status %d", ErrRejected, resp.StatusCode)
	}

	var u User
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return User{}, fmt.Errorf("decode login response: %w", err)
	}
	if u.Token == "" {
		return User{}, fmt.Errorf("%w: response carried no token", ErrRejected)
	}

	return u, nil
}
