package xero

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// journalOffsetStride is how far the offset advances past the last fetched
// journal number between batches.
const journalOffsetStride = 100

// fetchBatch issues one GET and extracts the named collection from the
// response envelope. A non-200 status or a missing collection key is reported
// as ok=false so the crawl loops can terminate without failing the run.
func (c *Client) fetchBatch(url, collection string) (records []json.RawMessage, ok bool) {
	resp, err := c.get(url)
	if err != nil {
		slog.Warn("request failed, stopping crawl", "collection", collection, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Warn("unexpected status, stopping crawl",
			"collection", collection, "status", resp.StatusCode)
		return nil, false
	}

	var envelope map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		slog.Warn("failed to decode response, stopping crawl", "collection", collection, "error", err)
		return nil, false
	}

	raw, found := envelope[collection]
	if !found {
		slog.Warn("collection key missing from response", "collection", collection)
		return nil, false
	}

	if err := json.Unmarshal(raw, &records); err != nil {
		slog.Warn("failed to decode collection, stopping crawl", "collection", collection, "error", err)
		return nil, false
	}

	return records, true
}

// fetchAllPages crawls ?page=N starting at 1 and accumulates records until
// the first empty page. Errors mid-crawl end the loop; whatever was collected
// so far is returned. Completeness is traded for partial-failure tolerance.
func (c *Client) fetchAllPages(baseURL, collection string) []json.RawMessage {
	var all []json.RawMessage

	for page := 1; ; page++ {
		records, ok := c.fetchBatch(fmt.Sprintf("%s?page=%d", baseURL, page), collection)
		if !ok || len(records) == 0 {
			break
		}
		all = append(all, records...)
	}

	return all
}

// fetchAllByOffset crawls using the offset strategy: an initial request with
// no parameter, then ?offset=V batches where V starts at the designated
// field's value in the last record of the initial batch and advances by
// stride past the last record of each subsequent batch. Returns the records
// and the final offset value the crawl terminated at.
func (c *Client) fetchAllByOffset(baseURL, collection, offsetField string, stride int64) ([]json.RawMessage, int64) {
	records, ok := c.fetchBatch(baseURL, collection)
	if !ok || len(records) == 0 {
		return nil, 0
	}

	all := records
	offset, err := lastFieldValue(records, offsetField)
	if err != nil {
		slog.Warn("offset field missing, stopping crawl", "collection", collection, "error", err)
		return all, 0
	}

	for {
		records, ok := c.fetchBatch(fmt.Sprintf("%s?offset=%d", baseURL, offset), collection)
		if !ok || len(records) == 0 {
			return all, offset
		}
		all = append(all, records...)

		last, err := lastFieldValue(records, offsetField)
		if err != nil {
			slog.Warn("offset field missing, stopping crawl", "collection", collection, "error", err)
			return all, offset
		}
		offset = last + stride
	}
}

// lastFieldValue extracts the integer value of the named field from the last
// record of a batch.
func lastFieldValue(records []json.RawMessage, field string) (int64, error) {
	var rec map[string]json.RawMessage
	if err := json.Unmarshal(records[len(records)-1], &rec); err != nil {
		return 0, fmt.Errorf("failed to decode record: %w", err)
	}

	raw, found := rec[field]
	if !found {
		return 0, fmt.Errorf("field %q not present in record", field)
	}

	var value int64
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, fmt.Errorf("field %q is not an integer: %w", field, err)
	}

	return value, nil
}

// decodeEach unmarshals raw records one by one, logging and skipping records
// that do not decode rather than failing the batch.
func decodeEach[T any](records []json.RawMessage, collection string) []T {
	out := make([]T, 0, len(records))
	for _, raw := range records {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			slog.Warn("skipping undecodable record", "collection", collection, "error", err)
			continue
		}
		out = append(out, v)
	}
	return out
}

// FetchAccounts fetches the full chart of accounts. The Accounts endpoint is
// not paginated.
func (c *Client) FetchAccounts() []Account {
	records, _ := c.fetchBatch(c.baseURL+"/Accounts", "Accounts")
	return decodeEach[Account](records, "Accounts")
}

// FetchTaxRates fetches all tax rates. Not paginated.
func (c *Client) FetchTaxRates() []TaxRate {
	records, _ := c.fetchBatch(c.baseURL+"/TaxRates", "TaxRates")
	return decodeEach[TaxRate](records, "TaxRates")
}

// FetchItems fetches all items. Not paginated.
func (c *Client) FetchItems() []Item {
	records, _ := c.fetchBatch(c.baseURL+"/Items", "Items")
	return decodeEach[Item](records, "Items")
}

// FetchContacts fetches all contacts with page-number pagination.
func (c *Client) FetchContacts() []Contact {
	return decodeEach[Contact](c.fetchAllPages(c.baseURL+"/Contacts", "Contacts"), "Contacts")
}

// FetchInvoices fetches all invoices with page-number pagination.
func (c *Client) FetchInvoices() []Invoice {
	return decodeEach[Invoice](c.fetchAllPages(c.baseURL+"/Invoices", "Invoices"), "Invoices")
}

// FetchCreditNotes fetches all credit notes with page-number pagination.
func (c *Client) FetchCreditNotes() []CreditNote {
	return decodeEach[CreditNote](c.fetchAllPages(c.baseURL+"/CreditNotes", "CreditNotes"), "CreditNotes")
}

// FetchPayments fetches all payments with page-number pagination.
func (c *Client) FetchPayments() []Payment {
	return decodeEach[Payment](c.fetchAllPages(c.baseURL+"/Payments", "Payments"), "Payments")
}

// FetchBankTransactions fetches all bank transactions with page-number
// pagination.
func (c *Client) FetchBankTransactions() []BankTransaction {
	return decodeEach[BankTransaction](c.fetchAllPages(c.baseURL+"/BankTransactions", "BankTransactions"), "BankTransactions")
}

// FetchManualJournals fetches all manual journals with page-number pagination.
func (c *Client) FetchManualJournals() []ManualJournal {
	return decodeEach[ManualJournal](c.fetchAllPages(c.baseURL+"/ManualJournals", "ManualJournals"), "ManualJournals")
}

// FetchJournals fetches all journals with the offset strategy keyed on
// JournalNumber, which the API assigns monotonically.
func (c *Client) FetchJournals() []Journal {
	records, _ := c.fetchAllByOffset(c.baseURL+"/Journals", "Journals", "JournalNumber", journalOffsetStride)
	return decodeEach[Journal](records, "Journals")
}

// FetchAssets fetches all fixed assets from the Assets API.
func (c *Client) FetchAssets() []Asset {
	base := c.assetsURL
	if base == "" {
		base = c.baseURL
	}
	return decodeEach[Asset](c.fetchAllPages(base+"/Assets", "items"), "items")
}
