package migrator

import (
	"strings"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// bankTransactionStatus maps the source status and reconciliation flag to the
// target bank transaction status.
func bankTransactionStatus(tx xero.BankTransaction) string {
	switch tx.Status {
	case "DELETED":
		return "Cancelled"
	}
	if tx.IsReconciled {
		return "Reconciled"
	}
	return "Unreconciled"
}

// MigrateBankTransaction maps one spend or receive money transaction into a
// Bank Transaction document. SPEND types post the total as a withdrawal,
// RECEIVE types as a deposit.
func (c Context) MigrateBankTransaction(tx xero.BankTransaction) (WriteResult, error) {
	date, err := xero.DateOf(tx.DateString, tx.Date)
	if err != nil {
		return Skipped, err
	}

	payload := map[string]any{
		"transaction_type":   tx.Type,
		"date":               date,
		"transaction_status": bankTransactionStatus(tx),
		"bank_account":       tx.BankAccount.Name,
		"reference_number":   tx.Reference,
		"allocated_amount":   tx.Total.String(),
	}
	if strings.HasPrefix(tx.Type, "SPEND") {
		payload["withdrawal"] = tx.Total.String()
	} else {
		payload["deposit"] = tx.Total.String()
	}
	if account, err := c.AccountNameByCode(tx.BankAccount.Code); err == nil {
		payload["bank_account_document"] = account
	}

	return c.Write(&erp.Document{
		Doctype:  DoctypeBankTransaction,
		Name:     tx.BankTransactionID,
		XeroID:   tx.BankTransactionID,
		Company:  c.Company,
		Currency: tx.CurrencyCode,
		Payload:  payload,
	})
}
