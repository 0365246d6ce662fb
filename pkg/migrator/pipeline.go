package migrator

import (
	"fmt"
	"log/slog"

	"github.com/openledger-tools/xero-migrate/pkg/erp"
	"github.com/openledger-tools/xero-migrate/pkg/xero"
)

// EntityKind identifies one migratable entity type.
type EntityKind int

const (
	KindAccount EntityKind = iota
	KindTaxRate
	KindContact
	KindItem
	KindInvoice
	KindCreditNote
	KindPayment
	KindBankTransaction
	KindJournal
	KindManualJournal
	KindAsset
)

// entityOrder is the fixed migration order. Accounts and tax rates come
// first because everything else references accounts; contacts and items
// before the transactions that reference them; payments after invoices.
var entityOrder = []EntityKind{
	KindAccount,
	KindTaxRate,
	KindContact,
	KindItem,
	KindInvoice,
	KindCreditNote,
	KindPayment,
	KindBankTransaction,
	KindJournal,
	KindManualJournal,
	KindAsset,
}

func (k EntityKind) String() string {
	switch k {
	case KindAccount:
		return "accounts"
	case KindTaxRate:
		return "tax_rates"
	case KindContact:
		return "contacts"
	case KindItem:
		return "items"
	case KindInvoice:
		return "invoices"
	case KindCreditNote:
		return "credit_notes"
	case KindPayment:
		return "payments"
	case KindBankTransaction:
		return "bank_transactions"
	case KindJournal:
		return "journals"
	case KindManualJournal:
		return "manual_journals"
	case KindAsset:
		return "assets"
	default:
		return "unknown"
	}
}

// Outcome reports what happened to one entity batch.
type Outcome struct {
	Entity    string
	Total     int
	Created   int
	Skipped   int
	Failed    int
	FailedIDs []string
}

// Fetcher supplies entity batches from the source API. *xero.Client
// satisfies this.
type Fetcher interface {
	FetchAccounts() []xero.Account
	FetchTaxRates() []xero.TaxRate
	FetchContacts() []xero.Contact
	FetchItems() []xero.Item
	FetchInvoices() []xero.Invoice
	FetchCreditNotes() []xero.CreditNote
	FetchPayments() []xero.Payment
	FetchBankTransactions() []xero.BankTransaction
	FetchJournals() []xero.Journal
	FetchManualJournals() []xero.ManualJournal
	FetchAssets() []xero.Asset
}

// Pipeline runs a full migration: root accounts first, then every entity
// kind in fixed order. Per-record failures are recorded and skipped; the run
// continues.
type Pipeline struct {
	ctx      Context
	source   Fetcher
	runs     *erp.Runs
	reporter Reporter
}

// NewPipeline creates a migration pipeline. A nil reporter logs through slog.
func NewPipeline(ctx Context, source Fetcher, runs *erp.Runs, reporter Reporter) *Pipeline {
	if reporter == nil {
		reporter = SlogReporter{}
	}
	return &Pipeline{
		ctx:      ctx,
		source:   source,
		runs:     runs,
		reporter: reporter,
	}
}

// Run executes the migration and returns the per-entity outcomes. The run
// record tracks the lifecycle: Pending on creation, In Progress while
// migrating, Complete or Failed at the end.
func (p *Pipeline) Run() ([]Outcome, error) {
	runID, err := p.runs.Create(p.ctx.Company)
	if err != nil {
		return nil, err
	}
	if err := p.runs.Start(runID); err != nil {
		return nil, err
	}

	if err := p.ctx.EnsureRootAccounts(); err != nil {
		p.finish(runID, erp.RunFailed, nil)
		return nil, fmt.Errorf("failed to create root accounts: %w", err)
	}

	outcomes := make([]Outcome, 0, len(entityOrder))
	for _, kind := range entityOrder {
		outcomes = append(outcomes, p.migrate(kind))
	}

	summary := make(map[string]int, len(outcomes))
	for _, outcome := range outcomes {
		summary[outcome.Entity] = outcome.Created
	}
	p.finish(runID, erp.RunComplete, summary)

	return outcomes, nil
}

func (p *Pipeline) finish(runID int64, status erp.RunStatus, summary map[string]int) {
	if err := p.runs.Finish(runID, status, summary); err != nil {
		slog.Error("failed to record run status", "run", runID, "status", status, "error", err)
	}
}

func (p *Pipeline) migrate(kind EntityKind) Outcome {
	switch kind {
	case KindAccount:
		return saveBatch(p, kind, p.source.FetchAccounts(), p.ctx.MigrateAccount,
			func(a xero.Account) string { return a.AccountID })
	case KindTaxRate:
		return saveBatch(p, kind, p.source.FetchTaxRates(), p.ctx.MigrateTaxRate,
			func(r xero.TaxRate) string { return r.TaxType })
	case KindContact:
		return saveBatch(p, kind, p.source.FetchContacts(), p.ctx.MigrateContact,
			func(c xero.Contact) string { return c.ContactID })
	case KindItem:
		return saveBatch(p, kind, p.source.FetchItems(), p.ctx.MigrateItem,
			func(i xero.Item) string { return i.ItemID })
	case KindInvoice:
		return saveBatch(p, kind, p.source.FetchInvoices(), p.ctx.MigrateInvoice,
			func(i xero.Invoice) string { return i.InvoiceID })
	case KindCreditNote:
		return saveBatch(p, kind, p.source.FetchCreditNotes(), p.ctx.MigrateCreditNote,
			func(n xero.CreditNote) string { return n.CreditNoteID })
	case KindPayment:
		return saveBatch(p, kind, p.source.FetchPayments(), p.ctx.MigratePayment,
			func(pm xero.Payment) string { return pm.PaymentID })
	case KindBankTransaction:
		return saveBatch(p, kind, p.source.FetchBankTransactions(), p.ctx.MigrateBankTransaction,
			func(t xero.BankTransaction) string { return t.BankTransactionID })
	case KindJournal:
		return saveBatch(p, kind, p.source.FetchJournals(), p.ctx.MigrateJournal,
			func(j xero.Journal) string { return j.JournalID })
	case KindManualJournal:
		return saveBatch(p, kind, p.source.FetchManualJournals(), p.ctx.MigrateManualJournal,
			func(j xero.ManualJournal) string { return j.ManualJournalID })
	case KindAsset:
		return saveBatch(p, kind, p.source.FetchAssets(), p.ctx.MigrateAsset,
			func(a xero.Asset) string { return a.AssetID })
	default:
		return Outcome{Entity: kind.String()}
	}
}

// saveBatch maps one entity batch record by record. A failing record is
// logged with its source ID and counted; the loop continues.
func saveBatch[T any](p *Pipeline, kind EntityKind, records []T, save func(T) (WriteResult, error), sourceID func(T) string) Outcome {
	outcome := Outcome{Entity: kind.String(), Total: len(records)}

	for index, record := range records {
		p.reporter.Progress(kind.String(), index+1, len(records))

		result, err := save(record)
		if err != nil {
			id := sourceID(record)
			slog.Error("failed to migrate record",
				"entity", kind.String(), "id", id, "error", err, "record", fmt.Sprintf("%+v", record))
			outcome.Failed++
			outcome.FailedIDs = append(outcome.FailedIDs, id)
			continue
		}

		if result == Created {
			outcome.Created++
		} else {
			outcome.Skipped++
		}
	}

	return outcome
}
