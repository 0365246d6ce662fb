package xero

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
)

// TokenManager handles OAuth2 token persistence and refresh for the Xero API.
// Tokens are kept in a JSON file so that repeated runs reuse the refresh
// token granted during the initial consent flow.
type TokenManager struct {
	config    *oauth2.Config
	tokenPath string
}

// NewTokenManager creates a token manager backed by the given token file.
func NewTokenManager(config *oauth2.Config, tokenPath string) *TokenManager {
	return &TokenManager{
		config:    config,
		tokenPath: tokenPath,
	}
}

// AuthCodeURL returns the consent URL to open in a browser.
func (m *TokenManager) AuthCodeURL(state string) string {
	return m.config.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// Exchange trades an authorization code for a token and persists it.
func (m *TokenManager) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := m.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if err := m.SaveToken(token); err != nil {
		return nil, err
	}

	return token, nil
}

// LoadToken loads the persisted token from file.
func (m *TokenManager) LoadToken() (*oauth2.Token, error) {
	data, err := os.ReadFile(m.tokenPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file: %w", err)
	}

	return &token, nil
}

// SaveToken persists the token to file with restrictive permissions.
func (m *TokenManager) SaveToken(token *oauth2.Token) error {
	dir := filepath.Dir(m.tokenPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(m.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

// Refresh forces a refresh of the persisted token and saves the result.
// Called by the client after a 401 response; the refresh itself is delegated
// to the oauth2 token source.
func (m *TokenManager) Refresh(ctx context.Context) (*oauth2.Token, error) {
	token, err := m.LoadToken()
	if err != nil {
		return nil, err
	}

	// Expire the access token so the token source performs a real refresh.
	token.Expiry = time.Now().Add(-time.Minute)

	refreshed, err := m.config.TokenSource(ctx, token).Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh token: %w", err)
	}

	if err := m.SaveToken(refreshed); err != nil {
		return nil, err
	}

	return refreshed, nil
}
