package migrator

import (
	"github.com/openledger-tools/xero-migrate/pkg/erp"
)

// WriteResult reports what the idempotent writer did with a document.
type WriteResult int

const (
	// Created means the document was inserted.
	Created WriteResult = iota
	// Skipped means a document with the same source identity already exists.
	Skipped
)

func (r WriteResult) String() string {
	if r == Created {
		return "created"
	}
	return "skipped"
}

// Write inserts a document unless one with the same (doctype, xero_id,
// company) already exists. Running the same batch twice yields the record
// counts of running it once.
func (c Context) Write(doc *erp.Document) (WriteResult, error) {
	exists, err := c.Store.Exists(doc.Doctype, erp.Filter{
		"xero_id": doc.XeroID,
		"company": doc.Company,
	})
	if err != nil {
		return Skipped, err
	}
	if exists {
		return Skipped, nil
	}

	if err := c.Store.Insert(doc); err != nil {
		return Skipped, err
	}
	return Created, nil
}

// WriteSubmitted inserts a document and immediately submits it. Transactional
// documents (invoices, journal entries) take effect on submit.
func (c Context) WriteSubmitted(doc *erp.Document) (WriteResult, error) {
	result, err := c.Write(doc)
	if err != nil || result == Skipped {
		return result, err
	}

	if err := c.Store.Submit(doc.Doctype, doc.Name); err != nil {
		return result, err
	}
	return result, nil
}
