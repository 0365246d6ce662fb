package migrator

import (
	"fmt"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// maxNameSuffix bounds the numeric suffix search for colliding account names.
const maxNameSuffix = 100

// EnsureRootAccounts creates one group account per root type for the company.
// Leaf accounts attach to these roots, so they must exist before any account
// or tax rate is migrated. Already existing roots are left untouched.
func (c Context) EnsureRootAccounts() error {
	for _, rootType := range RootTypes {
		name := c.RootAccountName(rootType)

		exists, err := c.Store.Exists(DoctypeAccount, erp.Filter{
			"name":    name,
			"company": c.Company,
		})
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		doc := &erp.Document{
			Doctype:  DoctypeAccount,
			Name:     name,
			Company:  c.Company,
			RootType: rootType,
			IsGroup:  true,
			Payload: map[string]any{
				"account_name": rootType + " - Xero",
			},
		}
		if err := c.Store.Insert(doc); err != nil {
			return fmt.Errorf("failed to create root account %q: %w", name, err)
		}
	}

	return nil
}

// UniqueAccountName derives a company-unique account name from a source
// account name. The base form is "X - Xero"; collisions get an incrementing
// numeric infix: "X - 1 - Xero", "X - 2 - Xero".
func (c Context) UniqueAccountName(sourceName string) (string, error) {
	for number := 0; number <= maxNameSuffix; number++ {
		candidate := fmt.Sprintf("%s - Xero", sourceName)
		if number > 0 {
			candidate = fmt.Sprintf("%s - %d - Xero", sourceName, number)
		}

		exists, err := c.Store.Exists(DoctypeAccount, erp.Filter{
			"name":    c.Abbr(candidate),
			"company": c.Company,
		})
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no unique name for account %q within %d attempts", sourceName, maxNameSuffix)
}

// MigrateAccount maps one Xero account into a leaf account document under its
// class's root. Idempotent on (xero_id, company).
func (c Context) MigrateAccount(account xero.Account) (WriteResult, error) {
	exists, err := c.Store.Exists(DoctypeAccount, erp.Filter{
		"xero_id": account.AccountID,
		"company": c.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	rootType := RootTypeForClass(account.Class)
	if rootType == "" {
		return Skipped, fmt.Errorf("account %q has unknown class %q", account.Name, account.Class)
	}

	accountName, err := c.UniqueAccountName(account.Name)
	if err != nil {
		return Skipped, err
	}

	payload := map[string]any{
		"account_name": accountName,
	}
	if account.TaxType != "" && account.TaxType != "NONE" {
		if rate, ok := c.TaxRate(account.TaxType); ok {
			payload["tax_rate"] = rate.DisplayTaxRate.String()
		}
	}
	if account.Type == "BANK" {
		payload["bank_account_number"] = account.BankAccountNumber
		payload["bank_account_type"] = account.BankAccountType
	}

	doc := &erp.Document{
		Doctype:       DoctypeAccount,
		Name:          c.Abbr(accountName),
		XeroID:        account.AccountID,
		Company:       c.Company,
		RootType:      rootType,
		AccountType:   c.Classifier.AccountType(account),
		AccountNumber: account.Code,
		Currency:      account.CurrencyCode,
		Parent:        c.RootAccountName(rootType),
		Payload:       payload,
	}

	if err := c.Store.Insert(doc); err != nil {
		return Skipped, err
	}
	return Created, nil
}
