package migrator

import "log/slog"

// Reporter receives per-record progress while an entity batch is saved.
type Reporter interface {
	Progress(entity string, count, total int)
}

// SlogReporter logs progress events through slog.
type SlogReporter struct{}

// Progress logs one progress event.
func (SlogReporter) Progress(entity string, count, total int) {
	slog.Info("saving", "entity", entity, "count", count, "total", total)
}

// NopReporter discards progress events.
type NopReporter struct{}

// Progress does nothing.
func (NopReporter) Progress(entity string, count, total int) {}
