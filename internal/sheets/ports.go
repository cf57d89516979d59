// Package sheets defines the outbound ports for spreadsheet exports.
package sheets

import (
	"context"

	"lifeos/internal/core"
)

// Ports for outbound adapters.
type (
	// LedgerExporter replaces the exported ledger with txs and the balance.
	LedgerExporter interface {
		ExportLedger(ctx context.Context, txs []core.Transaction, balance core.Money) error
	}
)

// LedgerHeader is the first row of an exported ledger.
var LedgerHeader = []any{"Date", "Time", "Type", "Category", "Amount", "Signed"}

// LedgerRows renders the ledger oldest first, followed by an empty row and
// the balance. Amounts are decimal strings so spreadsheets parse them
// exactly.
func LedgerRows(txs []core.Transaction, balance core.Money) [][]any {
	rows := make([][]any, 0, len(txs)+3)
	rows = append(rows, LedgerHeader)
	for i := len(txs) - 1; i >= 0; i-- {
		tx := txs[i]
		rows = append(rows, []any{
			tx.Date,
			tx.Time,
			string(tx.Type),
			string(tx.Category),
			tx.Amount.Decimal().StringFixed(2),
			tx.Signed().Decimal().StringFixed(2),
		})
	}
	rows = append(rows, []any{}, []any{"Balance", "", "", "", "", balance.Decimal().StringFixed(2)})
	return rows
}
