package migrator

import (
	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// MigratePayment maps one standalone payment into a Payment Entry document
// referencing the invoice it settles. Invoices migrate before payments, so
// the reference resolves against already written documents.
func (c Context) MigratePayment(payment xero.Payment) (WriteResult, error) {
	date, err := xero.DateOf(payment.Date)
	if err != nil {
		return Skipped, err
	}

	paymentType := "Receive"
	referenceDoctype := DoctypeSalesInvoice
	if payment.PaymentType == "ACCPAYPAYMENT" || payment.Invoice.Type == "ACCPAY" {
		paymentType = "Pay"
		referenceDoctype = DoctypePurchaseInvoice
	}

	payload := map[string]any{
		"payment_type": paymentType,
		"posting_date": date,
		"paid_amount":  payment.Amount.String(),
		"reference_no": payment.Reference,
	}

	if account, err := c.AccountNameByXeroID(payment.Account.AccountID); err == nil {
		payload["paid_to"] = account
	} else if account, err := c.AccountNameByCode(payment.Account.Code); err == nil {
		payload["paid_to"] = account
	}

	if invoice, err := c.Store.QueryOne(referenceDoctype, erp.Filter{
		"xero_id": payment.Invoice.InvoiceID,
		"company": c.Company,
	}); err == nil && invoice != nil {
		payload["reference_doctype"] = referenceDoctype
		payload["reference_name"] = invoice.Name
	}

	return c.Write(&erp.Document{
		Doctype: DoctypePaymentEntry,
		Name:    payment.PaymentID,
		XeroID:  payment.PaymentID,
		Company: c.Company,
		Payload: payload,
	})
}
