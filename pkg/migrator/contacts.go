package migrator

import (
	"fmt"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// MigrateContact splits one Xero contact into Customer and Supplier documents
// as flagged on the record. A contact that is both becomes both. Contacts
// flagged as neither produce nothing.
func (c Context) MigrateContact(contact xero.Contact) (WriteResult, error) {
	result := Skipped

	if contact.IsCustomer {
		r, err := c.writeContact(contact, DoctypeCustomer)
		if err != nil {
			return result, err
		}
		if r == Created {
			result = Created
		}
	}

	if contact.IsSupplier {
		r, err := c.writeContact(contact, DoctypeSupplier)
		if err != nil {
			return result, err
		}
		if r == Created {
			result = Created
		}
	}

	return result, nil
}

func (c Context) writeContact(contact xero.Contact, doctype string) (WriteResult, error) {
	currency := contact.DefaultCurrency
	if currency == "" {
		currency = c.BaseCurrency
	}

	payload := map[string]any{
		"email": contact.EmailAddress,
	}
	switch doctype {
	case DoctypeCustomer:
		payload["customer_name"] = contact.Name
		payload["customer_type"] = "Individual"
		payload["customer_group"] = "Commercial"
		payload["territory"] = "All Territories"
		if account, err := c.partyAccount("Receivable", currency); err == nil && account != "" {
			payload["default_receivable_account"] = account
		}
	case DoctypeSupplier:
		payload["supplier_name"] = contact.Name
		payload["supplier_group"] = "All Supplier Groups"
		if account, err := c.partyAccount("Payable", currency); err == nil && account != "" {
			payload["default_payable_account"] = account
		}
	}
	if len(contact.Addresses) > 0 {
		payload["addresses"] = contactAddresses(contact.Addresses)
	}

	return c.Write(&erp.Document{
		Doctype:  doctype,
		Name:     c.Abbr(contact.Name),
		XeroID:   contact.ContactID,
		Company:  c.Company,
		Currency: currency,
		Payload:  payload,
	})
}

// partyAccount finds a company account of the given account type and currency
// to link as a party default. Missing accounts are not an error; the document
// just carries no default.
func (c Context) partyAccount(accountType, currency string) (string, error) {
	doc, err := c.Store.QueryOne(DoctypeAccount, erp.Filter{
		"account_type": accountType,
		"currency":     currency,
		"company":      c.Company,
	})
	if err != nil || doc == nil {
		// Retry without the currency restriction.
		doc, err = c.Store.QueryOne(DoctypeAccount, erp.Filter{
			"account_type": accountType,
			"company":      c.Company,
		})
		if err != nil {
			return "", err
		}
	}
	if doc == nil {
		return "", nil
	}
	return doc.Name, nil
}

func contactAddresses(addresses []xero.Address) []map[string]any {
	out := make([]map[string]any, 0, len(addresses))
	for _, addr := range addresses {
		addressType := "Billing"
		if addr.AddressType == "STREET" {
			addressType = "Shipping"
		}
		out = append(out, map[string]any{
			"address_type":  addressType,
			"address_line1": addr.AddressLine1,
			"city":          addr.City,
			"postal_code":   addr.PostalCode,
			"country":       addr.Country,
		})
	}
	return out
}

// ContactNameByXeroID resolves the local party name for a contact reference.
// Customers are checked first, then suppliers.
func (c Context) ContactNameByXeroID(doctype, xeroID string) (string, error) {
	doc, err := c.Store.QueryOne(doctype, erp.Filter{
		"xero_id": xeroID,
		"company": c.Company,
	})
	if err != nil {
		return "", err
	}
	if doc == nil {
		return "", fmt.Errorf("no %s with xero_id %q for company %q", doctype, xeroID, c.Company)
	}
	return doc.Name, nil
}
