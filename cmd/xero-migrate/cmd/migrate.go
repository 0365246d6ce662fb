package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/openledger-tools/xero-migrate/pkg/config"
	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/migrator"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// migrateCmd represents the migrate command.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate Xero data into the document store",
	Long: `Migrate fetches accounting data from the Xero API and writes it
into the local document store as ERP documents.

Entities are migrated in dependency order: accounts, tax rates, contacts,
items, invoices, credit notes, payments, bank transactions, journals,
manual journals and fixed assets. Re-running is safe: records that were
already migrated are skipped.`,
	Run: runMigrate,
}

func runMigrate(cobraCmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "Failed to load configuration")
	exitOnError(cfg.Validate(), "Invalid configuration")

	conn, err := erp.Open(cfg.ERP.DBPath)
	exitOnError(err, "Failed to open document store")
	defer conn.Close()

	client, err := newXeroClient(cfg)
	exitOnError(err, "Failed to create Xero client")

	classifier := migrator.NewClassifier()
	if cfg.ERP.MappingPath != "" {
		classifier, err = migrator.NewClassifierFromFile(cfg.ERP.MappingPath)
		exitOnError(err, "Failed to load account mapping file")
	}

	slog.Info("Starting migration",
		"company", cfg.ERP.Company, "tenant", cfg.Xero.TenantID, "db", conn.GetPath())

	taxRates := client.FetchTaxRates()
	store := erp.NewStore(conn)
	ctx := migrator.NewContext(cfg.ERP.Company, cfg.ERP.CompanyAbbr, cfg.ERP.Currency,
		store, classifier, taxRates)

	start := time.Now()
	outcomes, err := migrator.NewPipeline(ctx, client, erp.NewRuns(conn), nil).Run()
	exitOnError(err, "Migration failed")

	fmt.Println()
	fmt.Println("=== Migration Summary ===")
	fmt.Printf("%-20s %8s %8s %8s %8s\n", "Entity", "Total", "Created", "Skipped", "Failed")
	var failed int
	for _, outcome := range outcomes {
		fmt.Printf("%-20s %8d %8d %8d %8d\n",
			outcome.Entity, outcome.Total, outcome.Created, outcome.Skipped, outcome.Failed)
		failed += outcome.Failed
		for _, id := range outcome.FailedIDs {
			slog.Warn("Record failed to migrate", "entity", outcome.Entity, "id", id)
		}
	}
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	if failed > 0 {
		fmt.Printf("%d record(s) failed; see the log for their IDs.\n", failed)
	}
}

// newXeroClient builds an API client from the saved token. The token manager
// is wired in as the refresher so an expired access token is renewed on 401.
func newXeroClient(cfg *config.Config) (*xero.Client, error) {
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

	token, err := tokens.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("no saved token (run 'xero-migrate connect' first): %w", err)
	}

	return xero.NewClient(xero.ClientConfig{
		APIURL:      cfg.Xero.APIURL,
		AssetsURL:   cfg.Xero.AssetsURL,
		TenantID:    cfg.Xero.TenantID,
		AccessToken: token.AccessToken,
		Tokens:      tokens,
	}), nil
}
