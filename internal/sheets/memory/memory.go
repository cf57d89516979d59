// Package memory is an in-process ledger exporter for development and tests.
package memory

import (
	"context"
	"sync"

	"lifeos/internal/core"
	ports "lifeos/internal/sheets"
)

type Exporter struct {
	mu      sync.Mutex
	rows    [][]any
	exports int
}

var _ ports.LedgerExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{}
}

// ExportLedger replaces the stored rows.
func (e *Exporter) ExportLedger(_ context.Context, txs []core.Transaction, balance core.Money) error {
	rows := ports.LedgerRows(txs, balance)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rows = rows
	e.exports++
	return nil
}

// Rows returns the last exported rows.
func (e *Exporter) Rows() [][]any {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([][]any(nil), e.rows...)
}

// Exports counts ExportLedger calls.
func (e *Exporter) Exports() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.exports
}
