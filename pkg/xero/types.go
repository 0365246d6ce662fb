// Package xero provides a Xero Accounting API client and types.
package xero

import "github.com/shopspring/decimal"

// Account represents a chart-of-accounts entry in the Xero API.
type Account struct {
	AccountID         string `json:"AccountID"`
	Code              string `json:"Code"`
	Name              string `json:"Name"`
	Type              string `json:"Type"`  // BANK, CURRENT, FIXED, ...
	Class             string `json:"Class"` // ASSET, EQUITY, EXPENSE, LIABILITY, REVENUE
	Status            string `json:"Status"`
	TaxType           string `json:"TaxType"`
	SystemAccount     string `json:"SystemAccount,omitempty"` // CREDITORS, DEBTORS, ...
	CurrencyCode      string `json:"CurrencyCode,omitempty"`
	BankAccountNumber string `json:"BankAccountNumber,omitempty"`
	BankAccountType   string `json:"BankAccountType,omitempty"`
}

// Address represents a postal address attached to a contact.
type Address struct {
	AddressType  string `json:"AddressType"` // POBOX, STREET
	AddressLine1 string `json:"AddressLine1,omitempty"`
	City         string `json:"City,omitempty"`
	PostalCode   string `json:"PostalCode,omitempty"`
	Country      string `json:"Country,omitempty"`
}

// Contact represents a customer or supplier in the Xero API.
// Xero keeps both in one record; IsCustomer/IsSupplier decide the split.
type Contact struct {
	ContactID       string    `json:"ContactID"`
	Name            string    `json:"Name"`
	ContactStatus   string    `json:"ContactStatus"`
	IsCustomer      bool      `json:"IsCustomer"`
	IsSupplier      bool      `json:"IsSupplier"`
	DefaultCurrency string    `json:"DefaultCurrency,omitempty"`
	EmailAddress    string    `json:"EmailAddress,omitempty"`
	Addresses       []Address `json:"Addresses,omitempty"`
}

// ItemDetails represents purchase or sales defaults on an item.
type ItemDetails struct {
	UnitPrice       decimal.Decimal `json:"UnitPrice"`
	AccountCode     string          `json:"AccountCode,omitempty"`
	COGSAccountCode string          `json:"COGSAccountCode,omitempty"`
	TaxType         string          `json:"TaxType,omitempty"`
}

// Item represents a product or service in the Xero API.
type Item struct {
	ItemID               string       `json:"ItemID"`
	Code                 string       `json:"Code"`
	Name                 string       `json:"Name"`
	IsSold               bool         `json:"IsSold"`
	IsPurchased          bool         `json:"IsPurchased"`
	IsTrackedAsInventory bool         `json:"IsTrackedAsInventory"`
	PurchaseDetails      *ItemDetails `json:"PurchaseDetails,omitempty"`
	SalesDetails         *ItemDetails `json:"SalesDetails,omitempty"`
}

// LineItem represents a line on an invoice, credit note or bank transaction.
type LineItem struct {
	LineItemID  string          `json:"LineItemID,omitempty"`
	Description string          `json:"Description,omitempty"`
	Quantity    decimal.Decimal `json:"Quantity"`
	UnitAmount  decimal.Decimal `json:"UnitAmount"`
	LineAmount  decimal.Decimal `json:"LineAmount"`
	ItemCode    string          `json:"ItemCode,omitempty"`
	AccountCode string          `json:"AccountCode,omitempty"`
	TaxType     string          `json:"TaxType,omitempty"`
	TaxAmount   decimal.Decimal `json:"TaxAmount"`
}

// ContactRef is the embedded contact reference carried by transactions.
type ContactRef struct {
	ContactID string `json:"ContactID"`
	Name      string `json:"Name,omitempty"`
}

// PaymentRef is the abbreviated payment record embedded in an invoice.
type PaymentRef struct {
	PaymentID string          `json:"PaymentID"`
	Date      string          `json:"Date"`
	Amount    decimal.Decimal `json:"Amount"`
}

// Invoice represents a sales invoice (ACCREC) or bill (ACCPAY).
type Invoice struct {
	InvoiceID       string          `json:"InvoiceID"`
	Type            string          `json:"Type"` // ACCREC or ACCPAY
	InvoiceNumber   string          `json:"InvoiceNumber,omitempty"`
	Contact         ContactRef      `json:"Contact"`
	DateString      string          `json:"DateString,omitempty"`
	Date            string          `json:"Date,omitempty"` // /Date(ms+offset)/
	DueDateString   string          `json:"DueDateString,omitempty"`
	DueDate         string          `json:"DueDate,omitempty"`
	Status          string          `json:"Status"` // DRAFT, SUBMITTED, AUTHORISED, PAID, VOIDED, DELETED
	LineAmountTypes string          `json:"LineAmountTypes,omitempty"`
	LineItems       []LineItem      `json:"LineItems"`
	CurrencyCode    string          `json:"CurrencyCode"`
	CurrencyRate    decimal.Decimal `json:"CurrencyRate,omitempty"`
	SubTotal        decimal.Decimal `json:"SubTotal"`
	TotalTax        decimal.Decimal `json:"TotalTax"`
	Total           decimal.Decimal `json:"Total"`
	AmountDue       decimal.Decimal `json:"AmountDue"`
	AmountPaid      decimal.Decimal `json:"AmountPaid"`
	Payments        []PaymentRef    `json:"Payments,omitempty"`
}

// Allocation represents a credit note allocation against an invoice.
type Allocation struct {
	Amount  decimal.Decimal `json:"Amount"`
	Date    string          `json:"Date"`
	Invoice struct {
		InvoiceID     string `json:"InvoiceID"`
		InvoiceNumber string `json:"InvoiceNumber,omitempty"`
	} `json:"Invoice"`
}

// CreditNote represents an ACCRECCREDIT or ACCPAYCREDIT credit note.
type CreditNote struct {
	CreditNoteID     string          `json:"CreditNoteID"`
	Type             string          `json:"Type"` // ACCRECCREDIT or ACCPAYCREDIT
	CreditNoteNumber string          `json:"CreditNoteNumber,omitempty"`
	Contact          ContactRef      `json:"Contact"`
	DateString       string          `json:"DateString,omitempty"`
	Date             string          `json:"Date,omitempty"`
	Status           string          `json:"Status"`
	LineItems        []LineItem      `json:"LineItems"`
	CurrencyCode     string          `json:"CurrencyCode"`
	CurrencyRate     decimal.Decimal `json:"CurrencyRate,omitempty"`
	SubTotal         decimal.Decimal `json:"SubTotal"`
	TotalTax         decimal.Decimal `json:"TotalTax"`
	Total            decimal.Decimal `json:"Total"`
	Allocations      []Allocation    `json:"Allocations,omitempty"`
}

// Payment represents a standalone payment against an invoice.
type Payment struct {
	PaymentID   string          `json:"PaymentID"`
	PaymentType string          `json:"PaymentType"` // ACCRECPAYMENT, ACCPAYPAYMENT, ...
	Status      string          `json:"Status"`
	Date        string          `json:"Date"` // /Date(ms+offset)/
	Amount      decimal.Decimal `json:"Amount"`
	Reference   string          `json:"Reference,omitempty"`
	Account     struct {
		AccountID string `json:"AccountID"`
		Code      string `json:"Code,omitempty"`
	} `json:"Account"`
	Invoice struct {
		InvoiceID     string     `json:"InvoiceID"`
		InvoiceNumber string     `json:"InvoiceNumber,omitempty"`
		Type          string     `json:"Type,omitempty"`
		Contact       ContactRef `json:"Contact,omitempty"`
	} `json:"Invoice"`
}

// BankAccountRef is the bank account reference on a bank transaction.
type BankAccountRef struct {
	AccountID string `json:"AccountID"`
	Code      string `json:"Code,omitempty"`
	Name      string `json:"Name"`
}

// BankTransaction represents a spend or receive money transaction.
type BankTransaction struct {
	BankTransactionID string          `json:"BankTransactionID"`
	Type              string          `json:"Type"` // SPEND, RECEIVE, SPEND-TRANSFER, ...
	Contact           ContactRef      `json:"Contact,omitempty"`
	BankAccount       BankAccountRef  `json:"BankAccount"`
	IsReconciled      bool            `json:"IsReconciled"`
	DateString        string          `json:"DateString,omitempty"`
	Date              string          `json:"Date,omitempty"`
	Status            string          `json:"Status"` // AUTHORISED, DELETED
	Reference         string          `json:"Reference,omitempty"`
	CurrencyCode      string          `json:"CurrencyCode"`
	LineItems         []LineItem      `json:"LineItems"`
	SubTotal          decimal.Decimal `json:"SubTotal"`
	TotalTax          decimal.Decimal `json:"TotalTax"`
	Total             decimal.Decimal `json:"Total"`
}

// JournalLine represents a line on a system-generated journal.
// NetAmount is signed: positive means debit, negative means credit.
type JournalLine struct {
	JournalLineID string          `json:"JournalLineID"`
	AccountID     string          `json:"AccountID,omitempty"`
	AccountCode   string          `json:"AccountCode"`
	AccountName   string          `json:"AccountName,omitempty"`
	AccountType   string          `json:"AccountType,omitempty"`
	Description   string          `json:"Description,omitempty"`
	NetAmount     decimal.Decimal `json:"NetAmount"`
	GrossAmount   decimal.Decimal `json:"GrossAmount"`
	TaxAmount     decimal.Decimal `json:"TaxAmount"`
	TaxType       string          `json:"TaxType,omitempty"`
}

// Journal represents a system-generated journal in the Xero API.
// JournalNumber is the monotonic sequence the offset crawler keys on.
type Journal struct {
	JournalID     string        `json:"JournalID"`
	JournalDate   string        `json:"JournalDate"` // /Date(ms+offset)/
	JournalNumber int64         `json:"JournalNumber"`
	CreatedDateUTC string       `json:"CreatedDateUTC,omitempty"`
	Reference     string        `json:"Reference,omitempty"`
	SourceType    string        `json:"SourceType,omitempty"`
	JournalLines  []JournalLine `json:"JournalLines"`
}

// ManualJournalLine represents a line on a user-entered manual journal.
type ManualJournalLine struct {
	LineAmount  decimal.Decimal `json:"LineAmount"`
	AccountCode string          `json:"AccountCode"`
	Description string          `json:"Description,omitempty"`
	TaxType     string          `json:"TaxType,omitempty"`
}

// ManualJournal represents a user-entered journal in the Xero API.
type ManualJournal struct {
	ManualJournalID string              `json:"ManualJournalID"`
	Narration       string              `json:"Narration"`
	Date            string              `json:"Date"` // /Date(ms+offset)/
	Status          string              `json:"Status"`
	JournalLines    []ManualJournalLine `json:"JournalLines"`
}

// DepreciationSetting represents the book depreciation settings of an asset.
type DepreciationSetting struct {
	DepreciationMethod string          `json:"depreciationMethod"` // NoDepreciation, StraightLine, DiminishingValue100, ...
	DepreciationRate   decimal.Decimal `json:"depreciationRate"`
}

// DepreciationDetail represents the current book depreciation state of an asset.
type DepreciationDetail struct {
	DepreciationStartDate        string          `json:"depreciationStartDate"`
	CurrentAccumDepreciationAmount decimal.Decimal `json:"currentAccumDepreciationAmount"`
}

// Asset represents a fixed asset from the Xero Assets API.
// The Assets API uses camelCase field names, unlike the accounting API.
type Asset struct {
	AssetID                 string              `json:"assetId"`
	AssetName               string              `json:"assetName"`
	AssetNumber             string              `json:"assetNumber"`
	AssetStatus             string              `json:"assetStatus"`
	PurchaseDate            string              `json:"purchaseDate"`
	PurchasePrice           decimal.Decimal     `json:"purchasePrice"`
	BookDepreciationSetting DepreciationSetting `json:"bookDepreciationSetting"`
	BookDepreciationDetail  DepreciationDetail  `json:"bookDepreciationDetail"`
}

// TaxRate represents a tax rate in the Xero API.
type TaxRate struct {
	Name           string          `json:"Name"`
	TaxType        string          `json:"TaxType"`
	Status         string          `json:"Status"`
	DisplayTaxRate decimal.Decimal `json:"DisplayTaxRate"`
	EffectiveRate  decimal.Decimal `json:"EffectiveRate"`
}

// Connection represents an entry from the /connections endpoint, used to
// resolve the tenant ID after the OAuth consent flow.
type Connection struct {
	ID         string `json:"id"`
	TenantID   string `json:"tenantId"`
	TenantType string `json:"tenantType"`
	TenantName string `json:"tenantName,omitempty"`
}

// ErrorResponse represents an error payload from the Xero API.
type ErrorResponse struct {
	Type    string `json:"Type,omitempty"`
	Title   string `json:"Title,omitempty"`
	Detail  string `json:"Detail,omitempty"`
	Message string `json:"Message,omitempty"`
}
