package erp

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// RunStatus represents the lifecycle state of a migration run.
type RunStatus string

const (
	RunPending    RunStatus = "Pending"
	RunInProgress RunStatus = "In Progress"
	RunComplete   RunStatus = "Complete"
	RunFailed     RunStatus = "Failed"
)

// Run represents one migration attempt.
type Run struct {
	ID         int64
	Company    string
	Status     RunStatus
	Summary    map[string]int
	StartedAt  time.Time
	FinishedAt sql.NullTime
}

// Runs manages migration run bookkeeping.
type Runs struct {
	conn *Connection
}

// NewRuns creates a new Runs instance.
func NewRuns(conn *Connection) *Runs {
	return &Runs{conn: conn}
}

// Create records a new pending run for a company and returns its ID.
func (r *Runs) Create(company string) (int64, error) {
	result, err := r.conn.Exec(
		`INSERT INTO migration_runs (company, status) VALUES (?, ?)`,
		company, string(RunPending),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}
	return id, nil
}

// Start transitions a run to In Progress.
func (r *Runs) Start(id int64) error {
	return r.setStatus(id, RunInProgress, false, nil)
}

// Finish transitions a run to Complete or Failed and records the per-entity
// outcome counts.
func (r *Runs) Finish(id int64, status RunStatus, summary map[string]int) error {
	if status != RunComplete && status != RunFailed {
		return fmt.Errorf("invalid terminal run status: %s", status)
	}
	return r.setStatus(id, status, true, summary)
}

func (r *Runs) setStatus(id int64, status RunStatus, finished bool, summary map[string]int) error {
	var summaryJSON sql.NullString
	if summary != nil {
		data, err := json.Marshal(summary)
		if err != nil {
			return fmt.Errorf("failed to marshal run summary: %w", err)
		}
		summaryJSON = sql.NullString{String: string(data), Valid: true}
	}

	query := `UPDATE migration_runs SET status = ?, summary = COALESCE(?, summary) WHERE id = ?`
	if finished {
		query = `UPDATE migration_runs SET status = ?, summary = COALESCE(?, summary),
			finished_at = CURRENT_TIMESTAMP WHERE id = ?`
	}

	result, err := r.conn.Exec(query, string(status), summaryJSON, id)
	if err != nil {
		return fmt.Errorf("failed to update run status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("migration run %d not found", id)
	}

	return nil
}

// Latest retrieves the most recent run for a company.
// Returns nil without error when no run exists.
func (r *Runs) Latest(company string) (*Run, error) {
	query := `
		SELECT id, company, status, summary, started_at, finished_at
		FROM migration_runs
		WHERE company = ?
		ORDER BY started_at DESC, id DESC
		LIMIT 1
	`

	var run Run
	var summary sql.NullString

	err := r.conn.QueryRow(query, company).Scan(
		&run.ID,
		&run.Company,
		&run.Status,
		&summary,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}

	if summary.Valid {
		if err := json.Unmarshal([]byte(summary.String), &run.Summary); err != nil {
			return nil, fmt.Errorf("failed to parse run summary: %w", err)
		}
	}

	return &run, nil
}

// Stats represents migration statistics for a company.
type Stats struct {
	Documents map[string]int // doctype -> count
	LastRun   *Run
}

// GetStats retrieves document counts per doctype and the latest run.
func (r *Runs) GetStats(company string) (*Stats, error) {
	stats := &Stats{Documents: map[string]int{}}

	rows, err := r.conn.Query(
		`SELECT doctype, COUNT(*) FROM documents WHERE company = ? GROUP BY doctype`,
		company,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count documents: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var doctype string
		var count int
		if err := rows.Scan(&doctype, &count); err != nil {
			return nil, fmt.Errorf("failed to scan document count: %w", err)
		}
		stats.Documents[doctype] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	last, err := r.Latest(company)
	if err != nil {
		return nil, err
	}
	stats.LastRun = last

	return stats, nil
}
