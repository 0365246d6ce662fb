package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/openledger-tools/xero-migrate/pkg/config"
	"github.com/openledger-tools/xero-migrate/pkg/erp"
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document counts and the latest migration run",
	Run:   runStats,
}

func runStats(cobraCmd *cobra.Command, args []string) {
	cfg, err := config.Load(getConfigFile())
	exitOnError(err, "Failed to load configuration")
	exitOnError(cfg.Validate(), "Invalid configuration")

	conn, err := erp.Open(cfg.ERP.DBPath)
	exitOnError(err, "Failed to open document store")
	defer conn.Close()

	stats, err := erp.NewRuns(conn).GetStats(cfg.ERP.Company)
	exitOnError(err, "Failed to load statistics")

	fmt.Println("=== Migration Statistics ===")
	fmt.Printf("Company:  %s\n", cfg.ERP.Company)
	fmt.Printf("Database: %s\n", conn.GetPath())
	fmt.Println()

	if len(stats.Documents) == 0 {
		fmt.Println("No documents migrated yet.")
	} else {
		doctypes := make([]string, 0, len(stats.Documents))
		for doctype := range stats.Documents {
			doctypes = append(doctypes, doctype)
		}
		sort.Strings(doctypes)

		fmt.Printf("%-20s %8s\n", "Doctype", "Count")
		for _, doctype := range doctypes {
			fmt.Printf("%-20s %8d\n", doctype, stats.Documents[doctype])
		}
	}

	if run := stats.LastRun; run != nil {
		fmt.Println()
		fmt.Printf("Last run: #%d %s", run.ID, run.Status)
		if !run.StartedAt.IsZero() {
			fmt.Printf(" (started %s)", run.StartedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Println()
	}
}
