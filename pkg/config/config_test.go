package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("XERO_CLIENT_ID", "client-id")
	t.Setenv("XERO_CLIENT_SECRET", "secret")
	t.Setenv("XERO_TENANT_ID", "tenant")
	t.Setenv("ERP_COMPANY", "Xero Corp")
	t.Setenv("ERP_COMPANY_ABBR", "")
	t.Setenv("XERO_API_URL", "")
	t.Setenv("ERP_CURRENCY", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.xero.com/api.xro/2.0", cfg.Xero.APIURL)
	assert.Equal(t, "https://identity.xero.com/connect/token", cfg.Xero.TokenURL)
	assert.Contains(t, cfg.Xero.Scopes, "offline_access")
	assert.Equal(t, "USD", cfg.ERP.Currency)
	// Abbreviation derived from the company name initials.
	assert.Equal(t, "XC", cfg.ERP.CompanyAbbr)

	assert.NoError(t, cfg.Validate())
}

func TestValidateReportsMissing(t *testing.T) {
	t.Setenv("XERO_CLIENT_ID", "client-id")
	t.Setenv("XERO_CLIENT_SECRET", "")
	t.Setenv("XERO_TENANT_ID", "")
	t.Setenv("ERP_COMPANY", "")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "XERO_CLIENT_SECRET")
	assert.Contains(t, err.Error(), "ERP_COMPANY")

	// The consent flow only needs client credentials.
	err = cfg.ValidateConnect()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "ERP_COMPANY")
}

func TestExplicitAbbreviationWins(t *testing.T) {
	t.Setenv("ERP_COMPANY", "Xero Corp")
	t.Setenv("ERP_COMPANY_ABBR", "XRC")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "XRC", cfg.ERP.CompanyAbbr)
}
