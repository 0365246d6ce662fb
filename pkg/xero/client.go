package xero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"
)

const defaultConnectionsURL = "https://api.xero.com/connections"

// TokenRefresher supplies a fresh token after the API reports 401.
// *TokenManager satisfies this.
type TokenRefresher interface {
	Refresh(ctx context.Context) (*oauth2.Token, error)
}

// ClientConfig represents the configuration for the Xero API client.
type ClientConfig struct {
	APIURL         string // accounting API base, e.g. https://api.xero.com/api.xro/2.0
	AssetsURL      string // assets API base, e.g. https://api.xero.com/assets.xro/1.0
	ConnectionsURL string // defaults to the public /connections endpoint
	TenantID       string
	AccessToken    string
	Tokens         TokenRefresher // optional; enables the 401 refresh-and-retry
	Timeout        time.Duration  // default: 30 seconds
}

// Client is a Xero Accounting API client. Every request carries the bearer
// token and the Xero-tenant-id header.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	assetsURL      string
	connectionsURL string
	tenantID       string
	accessToken    string
	tokens         TokenRefresher
}

// NewClient creates a new Xero API client.
func NewClient(config ClientConfig) *Client {
	timeout := config.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	connectionsURL := config.ConnectionsURL
	if connectionsURL == "" {
		connectionsURL = defaultConnectionsURL
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:        config.APIURL,
		assetsURL:      config.AssetsURL,
		connectionsURL: connectionsURL,
		tenantID:       config.TenantID,
		accessToken:    config.AccessToken,
		tokens:         config.Tokens,
	}
}

// SetAccessToken sets the access token for API requests.
func (c *Client) SetAccessToken(token string) {
	c.accessToken = token
}

// get issues an authenticated GET. A 401 response triggers exactly one token
// refresh and one retry; a second 401 is returned as-is. Bounding the retry
// avoids the refresh loop an expired refresh token would otherwise cause.
func (c *Client) get(url string) (*http.Response, error) {
	resp, err := c.doGet(url)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		token, err := c.tokens.Refresh(context.Background())
		if err != nil {
			return nil, fmt.Errorf("token refresh after 401 failed: %w", err)
		}
		c.accessToken = token.AccessToken

		return c.doGet(url)
	}

	return resp, nil
}

func (c *Client) doGet(url string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if c.tenantID != "" {
		req.Header.Set("Xero-tenant-id", c.tenantID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}

	return resp, nil
}

// getJSON issues a GET and decodes a 200 response into out.
func (c *Client) getJSON(url string, out any) error {
	resp, err := c.get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// Connections lists the tenants the current token is authorized for.
func (c *Client) Connections() ([]Connection, error) {
	var connections []Connection
	if err := c.getJSON(c.connectionsURL, &connections); err != nil {
		return nil, err
	}
	return connections, nil
}

// parseError parses a non-200 response from the Xero API.
func (c *Client) parseError(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("xero API error (status %d): failed to read error response", resp.StatusCode)
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err != nil {
		return fmt.Errorf("xero API error (status %d): %s", resp.StatusCode, string(body))
	}

	switch {
	case errResp.Detail != "":
		return fmt.Errorf("xero API error (status %d): %s", resp.StatusCode, errResp.Detail)
	case errResp.Message != "":
		return fmt.Errorf("xero API error (status %d): %s", resp.StatusCode, errResp.Message)
	default:
		return fmt.Errorf("xero API error (status %d): %s", resp.StatusCode, string(body))
	}
}
