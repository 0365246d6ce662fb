// Package main is the entry point for xero-migrate CLI.
package main

import (
	"os"

	"github.com/openledger-tools/xero-migrate/cmd/xero-migrate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
