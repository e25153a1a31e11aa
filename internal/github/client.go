package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	appErr "github.com/devconnect/api/pkg/errors"
	"github.com/devconnect/api/pkg/logger"
)

const userAgent = "devconnect-api"

// Client fetches public repository listings from the GitHub REST API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a client against baseURL. token may be empty for
// unauthenticated (rate-limited) access. The http.Client's Timeout bounds
// every outbound call.
func NewClient(baseURL, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, token: token, http: httpClient}
}

// Repos returns the raw JSON body for the user's five oldest repositories.
// Any failure collapses into the same NotFound the handler relays, so the
// client never learns whether the user, the network, or GitHub was at fault.
func (c *Client) Repos(ctx context.Context, username string) ([]byte, error) {
	if username == "" {
		return nil, appErr.New(appErr.CodeNotFound, "No Github profile found")
	}

	endpoint := fmt.Sprintf("%s/users/%s/repos?per_page=5&sort=created:asc", c.baseURL, url.PathEscape(username))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "No Github profile found")
	}
	req.Header.Set("User-Agent", userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		logger.L().Warn("github request failed", zap.String("username", username), zap.Error(err))
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "No Github profile found")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.L().Warn("github returned non-200", zap.String("username", username), zap.Int("status", resp.StatusCode))
		return nil, appErr.New(appErr.CodeNotFound, "No Github profile found")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeNotFound, "No Github profile found")
	}
	return body, nil
}
