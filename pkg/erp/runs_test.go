package erp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLifecycle(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "erp.db"))
	require.NoError(t, err)
	defer conn.Close()

	runs := NewRuns(conn)

	id, err := runs.Create("Xero Corp")
	require.NoError(t, err)

	run, err := runs.Latest("Xero Corp")
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, RunPending, run.Status)
	assert.False(t, run.FinishedAt.Valid)

	require.NoError(t, runs.Start(id))
	run, err = runs.Latest("Xero Corp")
	require.NoError(t, err)
	assert.Equal(t, RunInProgress, run.Status)

	summary := map[string]int{"accounts": 12, "invoices": 40}
	require.NoError(t, runs.Finish(id, RunComplete, summary))

	run, err = runs.Latest("Xero Corp")
	require.NoError(t, err)
	assert.Equal(t, RunComplete, run.Status)
	assert.Equal(t, summary, run.Summary)
	assert.True(t, run.FinishedAt.Valid)
}

func TestFinishRejectsNonTerminalStatus(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "erp.db"))
	require.NoError(t, err)
	defer conn.Close()

	runs := NewRuns(conn)
	id, err := runs.Create("Xero Corp")
	require.NoError(t, err)

	assert.Error(t, runs.Finish(id, RunInProgress, nil))
	assert.Error(t, runs.Finish(999, RunComplete, nil))
}

func TestGetStats(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "erp.db"))
	require.NoError(t, err)
	defer conn.Close()

	store := NewStore(conn)
	runs := NewRuns(conn)

	require.NoError(t, store.Insert(&Document{Doctype: "Account", Name: "A", Company: "Xero Corp"}))
	require.NoError(t, store.Insert(&Document{Doctype: "Account", Name: "B", Company: "Xero Corp"}))
	require.NoError(t, store.Insert(&Document{Doctype: "Contact", Name: "C", Company: "Xero Corp"}))
	require.NoError(t, store.Insert(&Document{Doctype: "Account", Name: "D", Company: "Other Corp"}))

	id, err := runs.Create("Xero Corp")
	require.NoError(t, err)
	require.NoError(t, runs.Finish(id, RunFailed, map[string]int{"accounts": 2}))

	stats, err := runs.GetStats("Xero Corp")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Account": 2, "Contact": 1}, stats.Documents)
	require.NotNil(t, stats.LastRun)
	assert.Equal(t, RunFailed, stats.LastRun.Status)

	stats, err = runs.GetStats("Empty Corp")
	require.NoError(t, err)
	assert.Empty(t, stats.Documents)
	assert.Nil(t, stats.LastRun)
}
