package migrator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

func TestMigrateInvoiceDirection(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	_, err := ctx.MigrateContact(xero.Contact{
		ContactID:  "con-1",
		Name:       "Acme Ltd",
		IsCustomer: true,
		IsSupplier: true,
	})
	require.NoError(t, err)

	sales := xero.Invoice{
		InvoiceID:     "inv-1",
		Type:          "ACCREC",
		InvoiceNumber: "INV-001",
		Contact:       xero.ContactRef{ContactID: "con-1", Name: "Acme Ltd"},
		DateString:    "2024-02-01T00:00:00",
		DueDateString: "2024-03-01T00:00:00",
		Status:        "AUTHORISED",
		CurrencyCode:  "NZD",
		SubTotal:      decimal.RequireFromString("100"),
		TotalTax:      decimal.RequireFromString("15"),
		Total:         decimal.RequireFromString("115"),
		AmountDue:     decimal.RequireFromString("115"),
		LineItems: []xero.LineItem{
			{Description: "Widgets", Quantity: decimal.NewFromInt(2), UnitAmount: decimal.NewFromInt(50), LineAmount: decimal.NewFromInt(100), AccountCode: "200"},
		},
	}

	result, err := ctx.MigrateInvoice(sales)
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.Get(DoctypeSalesInvoice, "INV-001")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, erp.StatusSubmitted, doc.Status)
	assert.Equal(t, "Acme Ltd - XC", doc.Payload["customer"])
	assert.Equal(t, "Unpaid", doc.Payload["invoice_status"])
	assert.Equal(t, "2024-02-01", doc.Payload["posting_date"])
	assert.Equal(t, "2024-03-01", doc.Payload["due_date"])

	purchase := sales
	purchase.InvoiceID = "inv-2"
	purchase.Type = "ACCPAY"
	purchase.InvoiceNumber = "BILL-001"

	result, err = ctx.MigrateInvoice(purchase)
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err = ctx.Store.Get(DoctypePurchaseInvoice, "BILL-001")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Acme Ltd - XC", doc.Payload["supplier"])

	// Re-running the sales invoice is skipped.
	result, err = ctx.MigrateInvoice(sales)
	require.NoError(t, err)
	assert.Equal(t, Skipped, result)
}

func TestMigrateInvoiceDueDateFallback(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	_, err := ctx.MigrateInvoice(xero.Invoice{
		InvoiceID:     "inv-3",
		Type:          "ACCREC",
		InvoiceNumber: "INV-003",
		Contact:       xero.ContactRef{Name: "Walk-in"},
		DateString:    "2024-02-10T00:00:00",
		Status:        "PAID",
		CurrencyCode:  "NZD",
	})
	require.NoError(t, err)

	doc, err := ctx.Store.Get(DoctypeSalesInvoice, "INV-003")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "2024-02-10", doc.Payload["due_date"])
	// The embedded contact name stands in for an unmigrated contact.
	assert.Equal(t, "Walk-in", doc.Payload["customer"])
}

func TestMigrateCreditNoteAsReturn(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	result, err := ctx.MigrateCreditNote(xero.CreditNote{
		CreditNoteID:     "cn-1",
		Type:             "ACCRECCREDIT",
		CreditNoteNumber: "CN-001",
		Contact:          xero.ContactRef{Name: "Acme Ltd"},
		DateString:       "2024-02-15T00:00:00",
		Status:           "AUTHORISED",
		CurrencyCode:     "NZD",
		LineItems: []xero.LineItem{
			{Description: "Returned widgets", Quantity: decimal.NewFromInt(1), UnitAmount: decimal.NewFromInt(50), LineAmount: decimal.NewFromInt(50)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.QueryOne(DoctypeSalesInvoice, erp.Filter{"xero_id": "CreditNote - cn-1"})
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, true, doc.Payload["is_return"])

	items := doc.Payload["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "-1", items[0].(map[string]any)["qty"])
}

func TestMigratePaymentReferencesInvoice(t *testing.T) {
	ctx := newTestContext(t)
	seedAccounts(t, ctx)

	_, err := ctx.MigrateInvoice(xero.Invoice{
		InvoiceID:     "inv-9",
		Type:          "ACCREC",
		InvoiceNumber: "INV-009",
		Contact:       xero.ContactRef{Name: "Acme Ltd"},
		DateString:    "2024-02-01T00:00:00",
		Status:        "AUTHORISED",
		CurrencyCode:  "NZD",
	})
	require.NoError(t, err)

	payment := xero.Payment{
		PaymentID:   "pay-1",
		PaymentType: "ACCRECPAYMENT",
		Date:        "/Date(1707004800000)/",
		Amount:      decimal.RequireFromString("115"),
	}
	payment.Account.AccountID = "acc-bank"
	payment.Invoice.InvoiceID = "inv-9"

	result, err := ctx.MigratePayment(payment)
	require.NoError(t, err)
	assert.Equal(t, Created, result)

	doc, err := ctx.Store.Get(DoctypePaymentEntry, "pay-1")
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, "Receive", doc.Payload["payment_type"])
	assert.Equal(t, "Sales Invoice", doc.Payload["reference_doctype"])
	assert.Equal(t, "INV-009", doc.Payload["reference_name"])
	assert.Equal(t, "Bank - Xero - XC", doc.Payload["paid_to"])
}
