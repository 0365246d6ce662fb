package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/openledger-tools/xero-migrate/pkg/config"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// connectCmd represents the connect command.
var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Authorize access to a Xero organisation",
	Long: `Connect runs the OAuth2 consent flow against Xero.

It starts a local callback server, prints the consent URL to open in a
browser, exchanges the returned authorization code for a token and saves
it to the token file. It then lists the organisations the token can
access so XERO_TENANT_ID can be set for migration.`,
	Run: runConnect,
}

func runConnect(cobraCmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "Failed to load configuration")
	exitOnError(cfg.ValidateConnect(), "Invalid configuration")

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.Xero.ClientID,
		ClientSecret: cfg.Xero.ClientSecret,
		RedirectURL:  cfg.Xero.RedirectURL,
		Scopes:       cfg.Xero.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Xero.AuthURL,
			TokenURL: cfg.Xero.TokenURL,
		},
	}
	tokens := xero.NewTokenManager(oauthConfig, cfg.Xero.TokenPath)

	redirect, err := url.Parse(cfg.Xero.RedirectURL)
	exitOnError(err, "Invalid XERO_REDIRECT_URL")

	state := uuid.NewString()
	codes := make(chan string, 1)

	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Get(redirect.Path, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			return
		}
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing authorization code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorization received. You can close this window.")
		codes <- code
	})

	server := &http.Server{Addr: redirect.Host, Handler: router}
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Callback server failed", "error", err)
		}
	}()

	fmt.Println("Open the following URL in your browser to authorize access:")
	fmt.Println()
	fmt.Println("  " + tokens.AuthCodeURL(state))
	fmt.Println()
	fmt.Printf("Waiting for the callback on %s ...\n", cfg.Xero.RedirectURL)

	code := <-codes

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Warn("Callback server shutdown failed", "error", err)
	}

	token, err := tokens.Exchange(context.Background(), code)
	exitOnError(err, "Failed to exchange authorization code")

	fmt.Printf("Token saved to %s\n", cfg.Xero.TokenPath)

	client := xero.NewClient(xero.ClientConfig{
		APIURL:      cfg.Xero.APIURL,
		AssetsURL:   cfg.Xero.AssetsURL,
		AccessToken: token.AccessToken,
		Tokens:      tokens,
	})

	connections, err := client.Connections()
	exitOnError(err, "Failed to list authorized organisations")

	fmt.Println()
	fmt.Println("=== Authorized Organisations ===")
	for _, conn := range connections {
		fmt.Printf("%-40s %s\n", conn.TenantName, conn.TenantID)
	}
	if len(connections) > 0 {
		fmt.Println()
		fmt.Printf("Set XERO_TENANT_ID=%s in your .env file to migrate %q.\n",
			connections[0].TenantID, connections[0].TenantName)
	}
}
