package migrator

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

func newTestContext(t *testing.T, taxRates ...xero.TaxRate) Context {
	t.Helper()
	conn, err := erp.Open(filepath.Join(t.TempDir(), "erp.db"))
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return NewContext("Xero Corp", "XC", "NZD", erp.NewStore(conn), NewClassifier(), taxRates)
}

func TestEnsureRootAccounts(t *testing.T) {
	ctx := newTestContext(t)

	require.NoError(t, ctx.EnsureRootAccounts())

	for _, rootType := range RootTypes {
		doc, err := ctx.Store.Get(DoctypeAccount, rootType+" - Xero - XC")
		require.NoError(t, err)
		require.NotNil(t, doc, "missing root account for %s", rootType)
		assert.Equal(t, rootType, doc.RootType)
		assert.True(t, doc.IsGroup)
	}

	// Running again creates nothing new.
	require.NoError(t, ctx.EnsureRootAccounts())
	count, err := ctx.Store.Count(DoctypeAccount, "Xero Corp")
	require.NoError(t, err)
	assert.Equal(t, len(RootTypes), count)
}

func TestMigrateAccount(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.EnsureRootAccounts())

	result, err := ctx.MigrateAccount(xero.Account{
		AccountID:    "acc-1",
		Code:         "200",
		Name:         "Sales",
		Type:         "REVENUE",
		Class:        "REVENUE",
		CurrencyCode: "NZD",
	})
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.QueryOne(DoctypeAccount, erp.Filter{"xero_id": "acc-1"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Sales - Xero - XC", doc.Name)
	assert.Equal(t, "Income", doc.RootType)
	assert.Equal(t, "Income Account", doc.AccountType)
	assert.Equal(t, "200", doc.AccountNumber)
	assert.Equal(t, "Income - Xero - XC", doc.Parent)

	// The same source account a second time is skipped.
	result, err = ctx.MigrateAccount(xero.Account{AccountID: "acc-1", Name: "Sales", Class: "REVENUE"})
	require.NoError(t, err)
	assert.Equal(t, Skipped, result)
}

func TestMigrateAccountUnknownClass(t *testing.T) {
	ctx := newTestContext(t)

	_, err := ctx.MigrateAccount(xero.Account{AccountID: "acc-1", Name: "Odd", Class: "PROFIT"})
	assert.Error(t, err)
}

func TestMigrateAccountBankFields(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.EnsureRootAccounts())

	_, err := ctx.MigrateAccount(xero.Account{
		AccountID:         "acc-bank",
		Code:              "090",
		Name:              "Business Account",
		Type:              "BANK",
		Class:             "ASSET",
		CurrencyCode:      "NZD",
		BankAccountNumber: "12-3456-7890123-00",
	})
	require.NoError(t, err)

	doc, err := ctx.Store.QueryOne(DoctypeAccount, erp.Filter{"xero_id": "acc-bank"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Bank", doc.AccountType)
	assert.Equal(t, "12-3456-7890123-00", doc.Payload["bank_account_number"])
}

func TestUniqueAccountNameSuffixing(t *testing.T) {
	ctx := newTestContext(t)
	require.NoError(t, ctx.EnsureRootAccounts())

	first, err := ctx.MigrateAccount(xero.Account{AccountID: "a1", Name: "Sales", Class: "REVENUE"})
	require.NoError(t, err)
	assert.Equal(t, Created, first)

	// A different source account with the same display name gets a numeric
	// suffix instead of colliding.
	second, err := ctx.MigrateAccount(xero.Account{AccountID: "a2", Name: "Sales", Class: "REVENUE"})
	require.NoError(t, err)
	assert.Equal(t, Created, second)

	doc, err := ctx.Store.QueryOne(DoctypeAccount, erp.Filter{"xero_id": "a2"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Sales - 1 - Xero - XC", doc.Name)
}

func TestMigrateTaxRate(t *testing.T) {
	rate := xero.TaxRate{
		Name:           "GST on Income",
		TaxType:        "OUTPUT2",
		DisplayTaxRate: decimal.RequireFromString("15"),
	}
	ctx := newTestContext(t, rate)
	require.NoError(t, ctx.EnsureRootAccounts())

	result, err := ctx.MigrateTaxRate(rate)
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.QueryOne(DoctypeAccount, erp.Filter{"xero_id": "TaxRate - OUTPUT2"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "GST on Income - Xero - XC", doc.Name)
	assert.Equal(t, "Liability", doc.RootType)
	assert.Equal(t, "Liability - Xero - XC", doc.Parent)
	assert.False(t, doc.IsGroup)

	result, err = ctx.MigrateTaxRate(rate)
	require.NoError(t, err)
	assert.Equal(t, Skipped, result)
}
