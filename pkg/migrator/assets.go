package migrator

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// depreciationMethodMapping maps source book depreciation methods to target
// ones. The DiminishingValue variants only differ in rate multiplier, which
// the rate itself already carries.
var depreciationMethodMapping = map[string]string{
	"StraightLine":        "Straight Line",
	"DiminishingValue100": "Written Down Value",
	"DiminishingValue150": "Written Down Value",
	"DiminishingValue200": "Written Down Value",
	"FullDepreciation":    "Straight Line",
}

// MigrateAsset maps one fixed asset into an Asset document with a derived
// depreciation schedule: annual rate R percent implies 100/R yearly
// depreciations.
func (c Context) MigrateAsset(asset xero.Asset) (WriteResult, error) {
	name := asset.AssetNumber
	if name == "" {
		name = asset.AssetName
	}

	payload := map[string]any{
		"asset_name":     asset.AssetName,
		"asset_number":   asset.AssetNumber,
		"status":         assetStatus(asset.AssetStatus),
		"gross_purchase_amount": asset.PurchasePrice.String(),
	}
	if date, err := xero.DateOf(asset.PurchaseDate); err == nil {
		payload["purchase_date"] = date
	}

	method := asset.BookDepreciationSetting.DepreciationMethod
	if method != "" && method != "NoDepreciation" {
		mapped, ok := depreciationMethodMapping[method]
		if !ok {
			mapped = "Straight Line"
		}
		payload["depreciation_method"] = mapped
		payload["calculate_depreciation"] = true

		rate := asset.BookDepreciationSetting.DepreciationRate
		if rate.IsPositive() {
			total := decimal.NewFromInt(100).Div(rate).Ceil().IntPart()
			if total < 1 {
				total = 1
			}
			payload["total_number_of_depreciations"] = total
			payload["frequency_of_depreciation_months"] = 12
		}
	}
	if method == "FullDepreciation" {
		payload["is_fully_depreciated"] = true
	}
	payload["accumulated_depreciation"] = asset.BookDepreciationDetail.CurrentAccumDepreciationAmount.String()

	return c.Write(&erp.Document{
		Doctype: DoctypeAsset,
		Name:    c.Abbr(name),
		XeroID:  asset.AssetID,
		Company: c.Company,
		Payload: payload,
	})
}

func assetStatus(status string) string {
	switch strings.ToUpper(status) {
	case "REGISTERED":
		return "Submitted"
	case "DISPOSED":
		return "Scrapped"
	default:
		return "Draft"
	}
}
