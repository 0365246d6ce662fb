package xero

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type stubRefresher struct {
	calls int
	token string
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) (*oauth2.Token, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &oauth2.Token{AccessToken: s.token}, nil
}

func TestGetRefreshesOnceOn401(t *testing.T) {
	var requests int
	var seenTokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		seenTokens = append(seenTokens, r.Header.Get("Authorization"))
		if requests == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte(`{"Accounts":[]}`))
	}))
	defer server.Close()

	refresher := &stubRefresher{token: "fresh-token"}
	client := NewClient(ClientConfig{
		APIURL:      server.URL,
		AccessToken: "stale-token",
		Tokens:      refresher,
	})

	resp, err := client.get(server.URL + "/Accounts")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, 2, requests)
	assert.Equal(t, []string{"Bearer stale-token", "Bearer fresh-token"}, seenTokens)
}

func TestGetDoesNotLoopOnRepeated401(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	refresher := &stubRefresher{token: "fresh-token"}
	client := NewClient(ClientConfig{
		APIURL:      server.URL,
		AccessToken: "stale-token",
		Tokens:      refresher,
	})

	resp, err := client.get(server.URL + "/Accounts")
	require.NoError(t, err)
	resp.Body.Close()

	// The second 401 comes back as-is instead of triggering another refresh.
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, refresher.calls)
	assert.Equal(t, 2, requests)
}

func TestGetWithoutRefresherReturns401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{APIURL: server.URL, AccessToken: "token"})

	resp, err := client.get(server.URL + "/Accounts")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestTenantHeaderSet(t *testing.T) {
	var gotTenant, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotTenant = r.Header.Get("Xero-tenant-id")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIURL:      server.URL,
		TenantID:    "tenant-123",
		AccessToken: "token",
	})

	resp, err := client.get(server.URL + "/Accounts")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "tenant-123", gotTenant)
	assert.Equal(t, "application/json", gotAccept)
}

func TestConnections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"conn-1","tenantId":"tenant-1","tenantType":"ORGANISATION","tenantName":"Demo Company"}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIURL:         server.URL,
		ConnectionsURL: server.URL,
		AccessToken:    "token",
	})

	connections, err := client.Connections()
	require.NoError(t, err)
	require.Len(t, connections, 1)
	assert.Equal(t, "tenant-1", connections[0].TenantID)
	assert.Equal(t, "Demo Company", connections[0].TenantName)
}

func TestParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"Detail":"AuthenticationUnsuccessful"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		APIURL:         server.URL,
		ConnectionsURL: server.URL,
		AccessToken:    "token",
	})

	_, err := client.Connections()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "AuthenticationUnsuccessful")
}
