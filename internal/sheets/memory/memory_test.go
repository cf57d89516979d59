package memory

import (
	"context"
	"testing"

	"lifeos/internal/core"
)

func TestExporterOverwrites(t *testing.T) {
	e := New()
	ctx := context.Background()
	first := []core.Transaction{
		{Amount: core.Money{Cents: 500}, Type: core.Income, Category: core.CategoryGift},
		{Amount: core.Money{Cents: 300}, Type: core.Expense, Category: core.CategoryFood},
	}
	if err := e.ExportLedger(ctx, first, core.Money{Cents: 200}); err != nil {
		t.Fatal(err)
	}
	if err := e.ExportLedger(ctx, first[:1], core.Money{Cents: 500}); err != nil {
		t.Fatal(err)
	}
	if e.Exports() != 2 {
		t.Fatalf("expected 2 exports, got %d", e.Exports())
	}
	// header + 1 entry + spacer + balance
	if rows := e.Rows(); len(rows) != 4 {
		t.Fatalf("expected the second export to replace the first, got %d rows", len(rows))
	}
}
