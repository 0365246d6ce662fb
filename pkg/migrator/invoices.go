package migrator

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// invoiceStatusMapping maps source invoice statuses to target ones.
var invoiceStatusMapping = map[string]string{
	"DRAFT":      "Draft",
	"SUBMITTED":  "Submitted",
	"AUTHORISED": "Unpaid",
	"PAID":       "Paid",
	"DELETED":    "Cancelled",
	"VOIDED":     "Cancelled",
}

// MigrateInvoice maps one Xero invoice by direction: ACCREC becomes a Sales
// Invoice against a customer, ACCPAY a Purchase Invoice against a supplier.
func (c Context) MigrateInvoice(invoice xero.Invoice) (WriteResult, error) {
	doctype := DoctypeSalesInvoice
	partyDoctype := DoctypeCustomer
	if invoice.Type == "ACCPAY" {
		doctype = DoctypePurchaseInvoice
		partyDoctype = DoctypeSupplier
	}

	return c.writeInvoice(invoiceFields{
		doctype:       doctype,
		partyDoctype:  partyDoctype,
		xeroID:        invoice.InvoiceID,
		number:        invoice.InvoiceNumber,
		contact:       invoice.Contact,
		dateValues:    []string{invoice.DateString, invoice.Date},
		dueDateValues: []string{invoice.DueDateString, invoice.DueDate},
		status:        invoice.Status,
		lineItems:     invoice.LineItems,
		currency:      invoice.CurrencyCode,
		currencyRate:  invoice.CurrencyRate,
		subTotal:      invoice.SubTotal,
		totalTax:      invoice.TotalTax,
		total:         invoice.Total,
		amountPaid:    invoice.AmountPaid,
		amountDue:     invoice.AmountDue,
	})
}

// MigrateCreditNote maps one Xero credit note as a return invoice with the
// same direction split: ACCRECCREDIT returns a Sales Invoice, ACCPAYCREDIT a
// Purchase Invoice. Quantities are negated.
func (c Context) MigrateCreditNote(note xero.CreditNote) (WriteResult, error) {
	doctype := DoctypeSalesInvoice
	partyDoctype := DoctypeCustomer
	if note.Type == "ACCPAYCREDIT" {
		doctype = DoctypePurchaseInvoice
		partyDoctype = DoctypeSupplier
	}

	return c.writeInvoice(invoiceFields{
		doctype:      doctype,
		partyDoctype: partyDoctype,
		xeroID:       fmt.Sprintf("CreditNote - %s", note.CreditNoteID),
		number:       note.CreditNoteNumber,
		contact:      note.Contact,
		dateValues:   []string{note.DateString, note.Date},
		status:       note.Status,
		lineItems:    note.LineItems,
		currency:     note.CurrencyCode,
		currencyRate: note.CurrencyRate,
		subTotal:     note.SubTotal,
		totalTax:     note.TotalTax,
		total:        note.Total,
		isReturn:     true,
	})
}

type invoiceFields struct {
	doctype       string
	partyDoctype  string
	xeroID        string
	number        string
	contact       xero.ContactRef
	dateValues    []string
	dueDateValues []string
	status        string
	lineItems     []xero.LineItem
	currency      string
	currencyRate  decimal.Decimal
	subTotal      decimal.Decimal
	totalTax      decimal.Decimal
	total         decimal.Decimal
	amountPaid    decimal.Decimal
	amountDue     decimal.Decimal
	isReturn      bool
}

func (c Context) writeInvoice(fields invoiceFields) (WriteResult, error) {
	exists, err := c.Store.Exists(fields.doctype, erp.Filter{
		"xero_id": fields.xeroID,
		"company": c.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	postingDate, err := xero.DateOf(fields.dateValues...)
	if err != nil {
		return Skipped, fmt.Errorf("invoice %s has no usable date: %w", fields.xeroID, err)
	}
	dueDate, err := xero.DateOf(fields.dueDateValues...)
	if err != nil {
		// Due date is not mandatory at the source; fall back to posting date.
		dueDate = postingDate
	}

	status, ok := invoiceStatusMapping[fields.status]
	if !ok {
		status = "Draft"
	}

	party, err := c.ContactNameByXeroID(fields.partyDoctype, fields.contact.ContactID)
	if err != nil {
		// Contacts embedded in transactions may never appear in the contacts
		// feed. Use the embedded display name.
		party = fields.contact.Name
	}

	conversionRate := fields.currencyRate
	if conversionRate.IsZero() {
		conversionRate = decimal.NewFromInt(1)
	}

	name := fields.number
	if name == "" {
		name = uuid.NewString()
	}

	payload := map[string]any{
		"posting_date":            postingDate,
		"due_date":                dueDate,
		"invoice_status":          status,
		"conversion_rate":         conversionRate.String(),
		"set_posting_time":        true,
		"disable_rounded_total":   true,
		"is_return":               fields.isReturn,
		"total":                   fields.subTotal.String(),
		"total_taxes_and_charges": fields.totalTax.String(),
		"grand_total":             fields.total.String(),
		"paid_amount":             fields.amountPaid.String(),
		"outstanding_amount":      fields.amountDue.String(),
		"items":                   c.invoiceItems(fields.lineItems, fields.isReturn),
	}
	if fields.partyDoctype == DoctypeCustomer {
		payload["customer"] = party
	} else {
		payload["supplier"] = party
	}

	return c.WriteSubmitted(&erp.Document{
		Doctype:  fields.doctype,
		Name:     name,
		XeroID:   fields.xeroID,
		Company:  c.Company,
		Currency: fields.currency,
		Payload:  payload,
	})
}

// invoiceItems converts source line items to target invoice rows. Return
// invoices carry negated quantities.
func (c Context) invoiceItems(lines []xero.LineItem, isReturn bool) []map[string]any {
	items := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		qty := line.Quantity
		if isReturn {
			qty = qty.Neg()
		}

		item := map[string]any{
			"description":     line.Description,
			"qty":             qty.String(),
			"price_list_rate": line.UnitAmount.String(),
			"amount":          line.LineAmount.String(),
		}
		if line.ItemCode != "" {
			item["item_code"] = line.ItemCode
		}
		if line.AccountCode != "" {
			if account, err := c.AccountNameByCode(line.AccountCode); err == nil {
				item["account"] = account
			}
		}
		if line.TaxType != "" && line.TaxType != "NONE" {
			if rate, ok := c.TaxRate(line.TaxType); ok {
				item["item_tax_rate"] = rate.DisplayTaxRate.String()
			}
			item["tax_amount"] = line.TaxAmount.String()
		}
		items = append(items, item)
	}
	return items
}
