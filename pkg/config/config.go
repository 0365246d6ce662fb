// Package config provides configuration management for the migration tool.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	Xero  XeroConfig
	ERP   ERPConfig
	Debug bool
}

// XeroConfig represents Xero API configuration.
type XeroConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
	TenantID     string
	APIURL       string
	AssetsURL    string
	AuthURL      string
	TokenURL     string
	TokenPath    string
}

// ERPConfig represents the target document store configuration.
type ERPConfig struct {
	Company     string
	CompanyAbbr string
	Currency    string
	DBPath      string
	MappingPath string
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	config := &Config{
		Xero: XeroConfig{
			ClientID:     os.Getenv("XERO_CLIENT_ID"),
			ClientSecret: os.Getenv("XERO_CLIENT_SECRET"),
			RedirectURL:  getEnvOrDefault("XERO_REDIRECT_URL", "http://localhost:8347/callback"),
			Scopes:       splitScopes(getEnvOrDefault("XERO_SCOPES", "offline_access accounting.transactions.read accounting.settings.read accounting.contacts.read assets.read")),
			TenantID:     os.Getenv("XERO_TENANT_ID"),
			APIURL:       getEnvOrDefault("XERO_API_URL", "https://api.xero.com/api.xro/2.0"),
			AssetsURL:    getEnvOrDefault("XERO_ASSETS_URL", "https://api.xero.com/assets.xro/1.0"),
			AuthURL:      getEnvOrDefault("XERO_AUTH_URL", "https://login.xero.com/identity/connect/authorize"),
			TokenURL:     getEnvOrDefault("XERO_TOKEN_URL", "https://identity.xero.com/connect/token"),
			TokenPath:    getEnvOrDefault("XERO_TOKEN_PATH", defaultTokenPath()),
		},
		ERP: ERPConfig{
			Company:     os.Getenv("ERP_COMPANY"),
			CompanyAbbr: os.Getenv("ERP_COMPANY_ABBR"),
			Currency:    getEnvOrDefault("ERP_CURRENCY", "USD"),
			DBPath:      getEnvOrDefault("ERP_DB_PATH", "./xero-migrate.db"),
			MappingPath: os.Getenv("ERP_MAPPING_PATH"),
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	if config.ERP.CompanyAbbr == "" && config.ERP.Company != "" {
		config.ERP.CompanyAbbr = abbreviate(config.ERP.Company)
	}

	return config, nil
}

// Validate validates the configuration.
// It checks that all fields required for a migration run are set.
func (c *Config) Validate() error {
	required := map[string]string{
		"XERO_CLIENT_ID":     c.Xero.ClientID,
		"XERO_CLIENT_SECRET": c.Xero.ClientSecret,
		"XERO_TENANT_ID":     c.Xero.TenantID,
		"ERP_COMPANY":        c.ERP.Company,
	}

	var missing []string
	for key, value := range required {
		if value == "" {
			missing = append(missing, key)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// ValidateConnect checks the subset required for the OAuth consent flow,
// which runs before a tenant ID exists.
func (c *Config) ValidateConnect() error {
	var missing []string
	if c.Xero.ClientID == "" {
		missing = append(missing, "XERO_CLIENT_ID")
	}
	if c.Xero.ClientSecret == "" {
		missing = append(missing, "XERO_CLIENT_SECRET")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitScopes(scopes string) []string {
	return strings.Fields(scopes)
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".xero-migrate/token.json"
	}
	return home + "/.xero-migrate/token.json"
}

// abbreviate derives a company abbreviation from the initials of its name.
func abbreviate(company string) string {
	var b strings.Builder
	for _, word := range strings.Fields(company) {
		runes := []rune(word)
		b.WriteString(strings.ToUpper(string(runes[0])))
	}
	return b.String()
}
