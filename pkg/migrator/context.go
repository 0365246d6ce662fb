// Package migrator maps Xero API records into ERP documents and drives the
// migration pipeline.
package migrator

import (
	"fmt"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// Target doctypes.
const (
	DoctypeAccount         = "Account"
	DoctypeCustomer        = "Customer"
	DoctypeSupplier        = "Supplier"
	DoctypeItem            = "Item"
	DoctypeSalesInvoice    = "Sales Invoice"
	DoctypePurchaseInvoice = "Purchase Invoice"
	DoctypeJournalEntry    = "Journal Entry"
	DoctypePaymentEntry    = "Payment Entry"
	DoctypeBankTransaction = "Bank Transaction"
	DoctypeAsset           = "Asset"
)

// Context carries the fixed inputs of one migration run. It is built once
// before the pipeline starts and never mutated afterwards.
type Context struct {
	Company      string
	CompanyAbbr  string
	BaseCurrency string
	Store        *erp.Store
	Classifier   *Classifier

	// taxRates indexes the tenant's tax rates by TaxType, built once at job
	// start so invoice and account mapping never re-fetch.
	taxRates map[string]xero.TaxRate
}

// NewContext builds a migration context.
func NewContext(company, abbr, currency string, store *erp.Store, classifier *Classifier, taxRates []xero.TaxRate) Context {
	byType := make(map[string]xero.TaxRate, len(taxRates))
	for _, rate := range taxRates {
		byType[rate.TaxType] = rate
	}

	return Context{
		Company:      company,
		CompanyAbbr:  abbr,
		BaseCurrency: currency,
		Store:        store,
		Classifier:   classifier,
		taxRates:     byType,
	}
}

// TaxRate looks up a tenant tax rate by its TaxType code.
func (c Context) TaxRate(taxType string) (xero.TaxRate, bool) {
	rate, ok := c.taxRates[taxType]
	return rate, ok
}

// Abbr suffixes a document name with the company abbreviation, the way the
// target system scopes names per company.
func (c Context) Abbr(name string) string {
	return fmt.Sprintf("%s - %s", name, c.CompanyAbbr)
}

// RootAccountName returns the company-scoped name of a root group account.
func (c Context) RootAccountName(rootType string) string {
	return c.Abbr(rootType + " - Xero")
}

// AccountNameByCode resolves a local account document name from its source
// account code.
func (c Context) AccountNameByCode(code string) (string, error) {
	doc, err := c.Store.QueryOne(DoctypeAccount, erp.Filter{
		"account_number": code,
		"company":        c.Company,
	})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("no account with code %q for company %q", code, c.Company)
	}
	return doc.Name, nil
}

// AccountNameByXeroID resolves a local account document name from its Xero ID.
func (c Context) AccountNameByXeroID(xeroID string) (string, error) {
	doc, err := c.Store.QueryOne(DoctypeAccount, erp.Filter{
		"xero_id": xeroID,
		"company": c.Company,
	})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("no account with xero_id %q for company %q", xeroID, c.Company)
	}
	return doc.Name, nil
}
