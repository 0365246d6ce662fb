package migrator

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// rootTypeByClass maps the Xero account Class to the local root type.
var rootTypeByClass = map[string]string{
	"ASSET":     "Asset",
	"EQUITY":    "Equity",
	"EXPENSE":   "Expense",
	"LIABILITY": "Liability",
	"REVENUE":   "Income",
}

// RootTypes lists the local root types in creation order.
var RootTypes = []string{"Asset", "Equity", "Expense", "Liability", "Income"}

// RootTypeForClass maps a Xero account class to its local root type.
// Unknown classes map to the empty string.
func RootTypeForClass(class string) string {
	return rootTypeByClass[class]
}

// defaultSystemAccountTypes maps Xero system accounts to local account types.
// System accounts carry fixed roles regardless of how the tenant named them.
var defaultSystemAccountTypes = map[string]string{
	"CREDITORS":          "Payable",
	"DEBTORS":            "Receivable",
	"BANKCURRENCYGAIN":   "Round Off",
	"GST":                "Tax",
	"GSTONIMPORTS":       "Tax",
	"HISTORICAL":         "Temporary",
	"REALISEDCURRENCYGAIN":   "Round Off",
	"RETAINEDEARNINGS":   "Equity",
	"ROUNDING":           "Round Off",
	"TRACKINGTRANSFERS":  "Temporary",
	"UNPAIDEXPCLM":       "Payable",
	"UNREALISEDCURRENCYGAIN": "Round Off",
	"WAGEPAYABLES":       "Payable",
}

// defaultCommonNameTypes maps well-known display names to local account types.
var defaultCommonNameTypes = map[string]string{
	"Accounts Payable":    "Payable",
	"Accounts Receivable": "Receivable",
	"Sales":               "Income Account",
	"Cost of Goods Sold":  "Cost of Goods Sold",
	"Petty Cash":          "Cash",
	"Retained Earnings":   "Equity",
}

// defaultXeroTypeTypes maps the Xero account type enum to local account types.
var defaultXeroTypeTypes = map[string]string{
	"BANK":        "Bank",
	"CURRENT":     "Current Asset",
	"CURRLIAB":    "Current Liability",
	"DEPRECIATN":  "Depreciation",
	"DIRECTCOSTS": "Cost of Goods Sold",
	"EQUITY":      "Equity",
	"EXPENSE":     "Expense Account",
	"FIXED":       "Fixed Asset",
	"INVENTORY":   "Stock",
	"LIABILITY":   "Current Liability",
	"NONCURRENT":  "Fixed Asset",
	"OTHERINCOME": "Income Account",
	"OVERHEADS":   "Indirect Expense",
	"PREPAYMENT":  "Current Asset",
	"REVENUE":     "Income Account",
	"SALES":       "Income Account",
	"TERMLIAB":    "Current Liability",
}

// classifierOverrides is the YAML shape of a classification override file.
// Entries merge over the built-in tables.
type classifierOverrides struct {
	SystemAccounts map[string]string `yaml:"system_accounts"`
	CommonNames    map[string]string `yaml:"common_names"`
	AccountTypes   map[string]string `yaml:"account_types"`
}

// Classifier resolves the local account type for a Xero account. Three tables
// are consulted in priority order: the system-account role, the well-known
// display name, then the Xero account type enum. First match wins.
type Classifier struct {
	systemAccounts map[string]string
	commonNames    map[string]string
	accountTypes   map[string]string
}

// NewClassifier creates a classifier with the built-in tables.
func NewClassifier() *Classifier {
	return &Classifier{
		systemAccounts: cloneMap(defaultSystemAccountTypes),
		commonNames:    cloneMap(defaultCommonNameTypes),
		accountTypes:   cloneMap(defaultXeroTypeTypes),
	}
}

// NewClassifierFromFile creates a classifier with the built-in tables merged
// with overrides from a YAML file.
func NewClassifierFromFile(path string) (*Classifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read classification config: %w", err)
	}

	var overrides classifierOverrides
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse classification config: %w", err)
	}

	c := NewClassifier()
	for key, value := range overrides.SystemAccounts {
		c.systemAccounts[key] = value
	}
	for key, value := range overrides.CommonNames {
		c.commonNames[key] = value
	}
	for key, value := range overrides.AccountTypes {
		c.accountTypes[key] = value
	}

	return c, nil
}

// AccountType resolves the local account type for a Xero account.
// Returns empty string when no table matches.
func (c *Classifier) AccountType(account xero.Account) string {
	if account.SystemAccount != "" {
		if accountType, ok := c.systemAccounts[account.SystemAccount]; ok {
			return accountType
		}
	}
	if accountType, ok := c.commonNames[account.Name]; ok {
		return accountType
	}
	return c.accountTypes[account.Type]
}

func cloneMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
