package migrator

import (
	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// MigrateItem maps one Xero item into an Item document. Sales and purchase
// defaults link income and expense accounts by their source account codes;
// tracked inventory carries the COGS account.
func (c Context) MigrateItem(item xero.Item) (WriteResult, error) {
	name := item.Code
	if name == "" {
		name = item.Name
	}

	payload := map[string]any{
		"item_code":        item.Code,
		"item_name":        item.Name,
		"stock_uom":        "Unit",
		"is_sales_item":    item.IsSold,
		"is_purchase_item": item.IsPurchased,
		"is_stock_item":    item.IsTrackedAsInventory,
	}

	if item.SalesDetails != nil {
		payload["standard_rate"] = item.SalesDetails.UnitPrice.String()
		if account, err := c.AccountNameByCode(item.SalesDetails.AccountCode); err == nil {
			payload["income_account"] = account
		}
	}
	if item.PurchaseDetails != nil {
		payload["last_purchase_rate"] = item.PurchaseDetails.UnitPrice.String()
		if account, err := c.AccountNameByCode(item.PurchaseDetails.AccountCode); err == nil {
			payload["expense_account"] = account
		}
		if item.IsTrackedAsInventory && item.PurchaseDetails.COGSAccountCode != "" {
			if account, err := c.AccountNameByCode(item.PurchaseDetails.COGSAccountCode); err == nil {
				payload["expense_account"] = account
			}
		}
	}

	return c.Write(&erp.Document{
		Doctype: DoctypeItem,
		Name:    c.Abbr(name),
		XeroID:  item.ItemID,
		Company: c.Company,
		Payload: payload,
	})
}
