package migrator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

func TestNormalizeLine(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		debit  string
		credit string
	}{
		{"positive posts debit", "100", "100", ""},
		{"negative posts absolute credit", "-100", "", "100"},
		{"zero posts zero debit", "0", "0", ""},
		{"fractional", "-12.34", "", "12.34"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := normalizeLine("Sales - Xero - XC", decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.debit, line.Debit)
			assert.Equal(t, tt.credit, line.Credit)
		})
	}
}

func seedAccounts(t *testing.T, ctx Context) {
	t.Helper()
	require.NoError(t, ctx.EnsureRootAccounts())
	for _, account := range []xero.Account{
		{AccountID: "acc-bank", Code: "090", Name: "Bank", Type: "BANK", Class: "ASSET"},
		{AccountID: "acc-sales", Code: "200", Name: "Sales", Type: "REVENUE", Class: "REVENUE"},
	} {
		_, err := ctx.MigrateAccount(account)
		require.NoError(t, err)
	}
}

func TestMigrateJournal(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	journal := xero.Journal{
		JournalID:     "j-1",
		JournalNumber: 7,
		JournalDate:   "/Date(1704067200000+0000)/",
		Reference:     "Opening sale",
		JournalLines: []xero.JournalLine{
			{AccountCode: "090", NetAmount: decimal.RequireFromString("150.5")},
			{AccountCode: "200", NetAmount: decimal.RequireFromString("-150.5")},
		},
	}

	result, err := ctx.MigrateJournal(journal)
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.Get(DoctypeJournalEntry, "JE-7")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, erp.StatusSubmitted, doc.Status)
	assert.Equal(t, "2024-01-01", doc.Payload["posting_date"])

	accounts, ok := doc.Payload["accounts"].([]any)
	require.True(t, ok)
	require.Len(t, accounts, 2)

	debitLine := accounts[0].(map[string]any)
	assert.Equal(t, "Bank - Xero - XC", debitLine["account"])
	assert.Equal(t, "150.5", debitLine["debit"])

	creditLine := accounts[1].(map[string]any)
	assert.Equal(t, "Sales - Xero - XC", creditLine["account"])
	assert.Equal(t, "150.5", creditLine["credit"])

	// Re-running the same journal changes nothing.
	result, err = ctx.MigrateJournal(journal)
	require.NoError(t, err)
	assert.Equal(t, Skipped, result)
}

func TestMigrateJournalUnknownAccount(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	_, err := ctx.MigrateJournal(xero.Journal{
		JournalID:   "j-2",
		JournalDate: "/Date(1704067200000)/",
		JournalLines: []xero.JournalLine{
			{AccountCode: "999", NetAmount: decimal.RequireFromString("10")},
		},
	})
	assert.Error(t, err)
}

func TestMigrateManualJournal(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	result, err := ctx.MigrateManualJournal(xero.ManualJournal{
		ManualJournalID: "mj-1",
		Narration:       "Correction",
		Date:            "/Date(1704067200000)/",
		JournalLines: []xero.ManualJournalLine{
			{AccountCode: "090", LineAmount: decimal.RequireFromString("25")},
			{AccountCode: "200", LineAmount: decimal.RequireFromString("-25")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.Get(DoctypeJournalEntry, "MJE-mj-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Correction", doc.Payload["title"])
}
