package migrator

import (
	"fmt"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// MigrateTaxRate records a tax rate as a leaf Liability account so that tax
// lines can post against it. The source carries rates as account attributes;
// the target wants them as separate accounts.
func (c Context) MigrateTaxRate(rate xero.TaxRate) (WriteResult, error) {
	xeroID := fmt.Sprintf("TaxRate - %s", rate.TaxType)

	exists, err := c.Store.Exists(DoctypeAccount, erp.Filter{
		"xero_id": xeroID,
		"company": c.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	accountName, err := c.UniqueAccountName(rate.Name)
	if err != nil {
		return Skipped, err
	}

	doc := &erp.Document{
		Doctype:  DoctypeAccount,
		Name:     c.Abbr(accountName),
		XeroID:   xeroID,
		Company:  c.Company,
		RootType: "Liability",
		Parent:   c.RootAccountName("Liability"),
		Payload: map[string]any{
			"account_name": accountName,
			"tax_type":     rate.TaxType,
			"tax_rate":     rate.DisplayTaxRate.String(),
		},
	}

	if err := c.Store.Insert(doc); err != nil {
		return Skipped, err
	}
	return Created, nil
}
