package sheets

import (
	"testing"

	"lifeos/internal/core"
)

func TestLedgerRows(t *testing.T) {
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 250}, Category: core.CategoryFood, Type: core.Expense, Date: "2 Jun 2025", Time: "08:00 AM"},
		{Amount: core.Money{Cents: 100000}, Category: core.CategorySalary, Type: core.Income, Date: "1 Jun 2025", Time: "09:30 AM"},
	}
	rows := LedgerRows(txs, core.Money{Cents: 99750})

	if len(rows) != 5 {
		t.Fatalf("expected header, 2 entries, spacer and balance; got %d rows", len(rows))
	}
	if rows[0][0] != "Date" {
		t.Fatalf("header missing: %v", rows[0])
	}
	// Oldest first.
	if rows[1][3] != "Salary" || rows[1][4] != "1000.00" || rows[1][5] != "1000.00" {
		t.Fatalf("unexpected first entry %v", rows[1])
	}
	if rows[2][2] != "expense" || rows[2][5] != "-2.50" {
		t.Fatalf("unexpected second entry %v", rows[2])
	}
	if len(rows[3]) != 0 {
		t.Fatalf("expected spacer row, got %v", rows[3])
	}
	if rows[4][0] != "Balance" || rows[4][5] != "997.50" {
		t.Fatalf("unexpected balance row %v", rows[4])
	}
}

func TestLedgerRowsEmpty(t *testing.T) {
	rows := LedgerRows(nil, core.Money{})
	if len(rows) != 3 || rows[2][5] != "0.00" {
		t.Fatalf("unexpected rows %v", rows)
	}
}
