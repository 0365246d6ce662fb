package erp

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Document statuses.
const (
	StatusDraft     = "Draft"
	StatusSubmitted = "Submitted"
)

// Document represents one ERP document. The indexed columns cover the fields
// migration lookups filter on; everything else lives in Payload.
type Document struct {
	ID            int64
	Doctype       string
	Name          string
	XeroID        string
	Company       string
	RootType      string
	AccountType   string
	AccountNumber string
	Currency      string
	Parent        string
	IsGroup       bool
	Status        string
	Payload       map[string]any
	CreatedAt     time.Time
}

// Filter selects documents by indexed column values. Keys must be one of the
// filterable columns; unknown keys are rejected rather than interpolated.
type Filter map[string]any

var filterColumns = map[string]bool{
	"name":           true,
	"xero_id":        true,
	"company":        true,
	"root_type":      true,
	"account_type":   true,
	"account_number": true,
	"currency":       true,
	"parent":         true,
	"is_group":       true,
	"status":         true,
}

// whereClause builds a deterministic WHERE fragment from a filter.
func whereClause(doctype string, filter Filter) (string, []any, error) {
	clauses := []string{"doctype = ?"}
	args := []any{doctype}

	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !filterColumns[key] {
			return "", nil, fmt.Errorf("unsupported filter column: %s", key)
		}
		clauses = append(clauses, key+" = ?")
		args = append(args, filter[key])
	}

	return strings.Join(clauses, " AND "), args, nil
}

// Store manages document operations.
type Store struct {
	conn *Connection
}

// NewStore creates a new Store instance.
func NewStore(conn *Connection) *Store {
	return &Store{conn: conn}
}

// Exists checks whether any document of the doctype matches the filter.
func (s *Store) Exists(doctype string, filter Filter) (bool, error) {
	where, args, err := whereClause(doctype, filter)
	if err != nil {
		return false, err
	}

	var count int
	query := `SELECT COUNT(*) FROM documents WHERE ` + where
	if err := s.conn.QueryRow(query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check document existence: %w", err)
	}

	return count > 0, nil
}

// Insert inserts a new document. The document name must be unique within its
// doctype; a duplicate insert returns an error.
func (s *Store) Insert(doc *Document) error {
	if doc.Doctype == "" || doc.Name == "" {
		return fmt.Errorf("document requires doctype and name")
	}

	status := doc.Status
	if status == "" {
		status = StatusDraft
	}

	payload := doc.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal document payload: %w", err)
	}

	query := `
		INSERT INTO documents (doctype, name, xero_id, company, root_type,
			account_type, account_number, currency, parent, is_group, status, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.conn.Exec(query,
		doc.Doctype,
		doc.Name,
		doc.XeroID,
		doc.Company,
		doc.RootType,
		doc.AccountType,
		doc.AccountNumber,
		doc.Currency,
		doc.Parent,
		doc.IsGroup,
		status,
		string(body),
	)
	if err != nil {
		return fmt.Errorf("failed to insert document %s %q: %w", doc.Doctype, doc.Name, err)
	}

	doc.ID, _ = result.LastInsertId()
	doc.Status = status
	return nil
}

// Query retrieves all documents of the doctype matching the filter.
func (s *Store) Query(doctype string, filter Filter) ([]Document, error) {
	where, args, err := whereClause(doctype, filter)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, doctype, name, xero_id, company, root_type, account_type,
			account_number, currency, parent, is_group, status, payload, created_at
		FROM documents
		WHERE ` + where + `
		ORDER BY id
	`

	rows, err := s.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	return docs, rows.Err()
}

// QueryOne retrieves a single document matching the filter.
// Returns nil without error when no document matches.
func (s *Store) QueryOne(doctype string, filter Filter) (*Document, error) {
	docs, err := s.Query(doctype, filter)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// Get retrieves a document by doctype and name.
// Returns nil without error when the document does not exist.
func (s *Store) Get(doctype, name string) (*Document, error) {
	return s.QueryOne(doctype, Filter{"name": name})
}

// Submit marks a draft document as submitted. Submitting an already submitted
// document is a no-op.
func (s *Store) Submit(doctype, name string) error {
	query := `UPDATE documents SET status = ? WHERE doctype = ? AND name = ?`

	result, err := s.conn.Exec(query, StatusSubmitted, doctype, name)
	if err != nil {
		return fmt.Errorf("failed to submit document %s %q: %w", doctype, name, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("document %s %q not found", doctype, name)
	}

	return nil
}

// Count returns the number of documents of the doctype for a company.
func (s *Store) Count(doctype, company string) (int, error) {
	var count int
	err := s.conn.QueryRow(
		`SELECT COUNT(*) FROM documents WHERE doctype = ? AND company = ?`,
		doctype, company,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	return count, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*Document, error) {
	var doc Document
	var xeroID, company, rootType, accountType, accountNumber sql.NullString
	var currency, parent sql.NullString
	var payload string

	if err := row.Scan(
		&doc.ID,
		&doc.Doctype,
		&doc.Name,
		&xeroID,
		&company,
		&rootType,
		&accountType,
		&accountNumber,
		&currency,
		&parent,
		&doc.IsGroup,
		&doc.Status,
		&payload,
		&doc.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan document: %w", err)
	}

	doc.XeroID = xeroID.String
	doc.Company = company.String
	doc.RootType = rootType.String
	doc.AccountType = accountType.String
	doc.AccountNumber = accountNumber.String
	doc.Currency = currency.String
	doc.Parent = parent.String

	if err := json.Unmarshal([]byte(payload), &doc.Payload); err != nil {
		return nil, fmt.Errorf("failed to parse payload of %s %q: %w", doc.Doctype, doc.Name, err)
	}

	return &doc, nil
}
