// Package erp provides a SQLite-backed document store modeled on an ERP
// document system. Migrated records become typed documents with a small set
// of indexed filter columns and the full record body kept as JSON.
package erp

// Schema defines the SQL statements to create database tables.
const Schema = `
-- Documents table
-- One row per ERP document (Account, Contact, Sales Invoice, ...)
CREATE TABLE IF NOT EXISTS documents (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    doctype TEXT NOT NULL,             -- e.g. 'Account', 'Sales Invoice'
    name TEXT NOT NULL,                -- document name, unique per doctype
    xero_id TEXT,                      -- source record ID from the Xero API
    company TEXT,                      -- owning company
    root_type TEXT,                    -- Account: Asset/Liability/Equity/Income/Expense
    account_type TEXT,                 -- Account: ERP account type
    account_number TEXT,               -- Account: source account code
    currency TEXT,
    parent TEXT,                       -- Account: parent account name
    is_group INTEGER NOT NULL DEFAULT 0,
    status TEXT NOT NULL DEFAULT 'Draft',  -- 'Draft' or 'Submitted'
    payload TEXT NOT NULL,             -- full document body as JSON
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(doctype, name)
);

CREATE INDEX IF NOT EXISTS idx_documents_source
    ON documents(doctype, xero_id, company);

CREATE INDEX IF NOT EXISTS idx_documents_company
    ON documents(doctype, company);

-- Migration runs table
-- One row per migration attempt with its lifecycle status
CREATE TABLE IF NOT EXISTS migration_runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    company TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'Pending',  -- Pending/In Progress/Complete/Failed
    summary TEXT,                      -- per-entity outcome counts as JSON
    started_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    finished_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_migration_runs_company
    ON migration_runs(company, started_at);
`

// InitializeSchema initializes the database schema.
// It creates all tables if they don't exist.
func InitializeSchema(conn *Connection) error {
	if _, err := conn.Exec(Schema); err != nil {
		return err
	}
	return nil
}
