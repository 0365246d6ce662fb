package migrator

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// journalAccountLine is one row of a journal entry document. Amounts are
// stored as absolute values; the sign of the source amount only decides the
// column.
type journalAccountLine struct {
	Account string `json:"account"`
	Debit   string `json:"debit,omitempty"`
	Credit  string `json:"credit,omitempty"`
}

// normalizeLine converts a signed source amount into a debit or credit
// posting. Positive amounts debit, negative amounts credit; a zero amount
// posts a zero debit rather than failing.
func normalizeLine(account string, amount decimal.Decimal) journalAccountLine {
	line := journalAccountLine{Account: account}
	if amount.Sign() < 0 {
		line.Credit = amount.Abs().String()
	} else {
		line.Debit = amount.Abs().String()
	}
	return line
}

// MigrateJournal maps one system-generated journal into a Journal Entry
// document. Lines are assumed balanced at the source and are not validated.
func (c Context) MigrateJournal(journal xero.Journal) (WriteResult, error) {
	xeroID := fmt.Sprintf("Journal Entry - %s", journal.JournalID)

	exists, err := c.Store.Exists(DoctypeJournalEntry, erp.Filter{
		"xero_id": xeroID,
		"company": c.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	postingDate, err := xero.DateOf(journal.JournalDate)
	if err != nil {
		return Skipped, fmt.Errorf("journal %s has no usable date: %w", journal.JournalID, err)
	}

	lines := make([]journalAccountLine, 0, len(journal.JournalLines))
	for _, jl := range journal.JournalLines {
		account, err := c.AccountNameByCode(jl.AccountCode)
		if err != nil {
			return Skipped, err
		}
		lines = append(lines, normalizeLine(account, jl.NetAmount))
	}

	return c.WriteSubmitted(&erp.Document{
		Doctype: DoctypeJournalEntry,
		Name:    fmt.Sprintf("JE-%d", journal.JournalNumber),
		XeroID:  xeroID,
		Company: c.Company,
		Payload: map[string]any{
			"posting_date":   postingDate,
			"title":          journal.Reference,
			"multi_currency": true,
			"accounts":       lines,
		},
	})
}

// MigrateManualJournal maps one user-entered journal into a Journal Entry
// document with the same sign normalization as system journals.
func (c Context) MigrateManualJournal(journal xero.ManualJournal) (WriteResult, error) {
	xeroID := fmt.Sprintf("Manual Journal - %s", journal.ManualJournalID)

	exists, err := c.Store.Exists(DoctypeJournalEntry, erp.Filter{
		"xero_id": xeroID,
		"company": c.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	postingDate, err := xero.DateOf(journal.Date)
	if err != nil {
		return Skipped, fmt.Errorf("manual journal %s has no usable date: %w", journal.ManualJournalID, err)
	}

	lines := make([]journalAccountLine, 0, len(journal.JournalLines))
	for _, jl := range journal.JournalLines {
		account, err := c.AccountNameByCode(jl.AccountCode)
		if err != nil {
			return Skipped, err
		}
		lines = append(lines, normalizeLine(account, jl.LineAmount))
	}

	return c.WriteSubmitted(&erp.Document{
		Doctype: DoctypeJournalEntry,
		Name:    fmt.Sprintf("MJE-%s", journal.ManualJournalID),
		XeroID:  xeroID,
		Company: c.Company,
		Payload: map[string]any{
			"posting_date":   postingDate,
			"title":          journal.Narration,
			"multi_currency": true,
			"accounts":       lines,
		},
	})
}
