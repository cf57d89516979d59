package ledger

import (
	"errors"
	"testing"
	"time"

	"lifeos/internal/core"
)

var base = time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)

func TestAddUpdatesBalanceAndOrder(t *testing.T) {
	l := &Ledger{}
	steps := []struct {
		cents int64
		typ   core.TransactionType
		want  int64
	}{
		{10000, core.Income, 10000},
		{2550, core.Expense, 7450},
		{8000, core.Expense, -550},
		{600, core.Income, 50},
	}
	for i, s := range steps {
		tx, err := l.Add(core.Money{Cents: s.cents}, "Food", s.typ, base.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
		if l.Balance().Cents != s.want {
			t.Fatalf("step %d: balance = %d, want %d", i, l.Balance().Cents, s.want)
		}
		if l.Recent(1)[0].ID != tx.ID {
			t.Fatalf("step %d: newest transaction not first", i)
		}
	}
	if l.Recompute() != l.Balance() {
		t.Fatalf("incremental balance %d != fold %d", l.Balance().Cents, l.Recompute().Cents)
	}
	if l.Len() != 4 {
		t.Fatalf("expected 4 transactions, got %d", l.Len())
	}
}

func TestNegativeWarning(t *testing.T) {
	l := &Ledger{}
	if _, err := l.Add(core.Money{Cents: 100}, "Bills", core.Expense, base); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !l.Negative() {
		t.Fatalf("expected negative balance warning")
	}
	if _, err := l.Add(core.Money{Cents: 100}, "Salary", core.Income, base); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if l.Negative() {
		t.Fatalf("zero balance must not warn")
	}
}

func TestAddRejectsInvalidInput(t *testing.T) {
	l := &Ledger{}
	if _, err := l.Add(core.Money{Cents: 500}, "Food", core.Income, base); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	cases := []struct {
		amount core.Money
		typ    core.TransactionType
		err    error
	}{
		{core.Money{Cents: 0}, core.Income, core.ErrInvalidAmount},
		{core.Money{Cents: -500}, core.Expense, core.ErrInvalidAmount},
		{core.Money{Cents: 100}, core.TransactionType("transfer"), core.ErrInvalidType},
	}
	for i, tc := range cases {
		if _, err := l.Add(tc.amount, "Food", tc.typ, base); !errors.Is(err, tc.err) {
			t.Fatalf("case %d: expected %v, got %v", i, tc.err, err)
		}
	}
	if l.Len() != 1 || l.Balance().Cents != 500 {
		t.Fatalf("state changed after rejected adds: len=%d balance=%d", l.Len(), l.Balance().Cents)
	}
}

func TestAddCapturesDisplayFieldsAndCategory(t *testing.T) {
	l := &Ledger{}
	tx, err := l.Add(core.Money{Cents: 4200}, "  ", core.Expense, base)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if tx.Category != core.CategoryOther {
		t.Fatalf("expected default category, got %q", tx.Category)
	}
	if tx.Date != "10 May 2025" || tx.Time != "09:30 AM" {
		t.Fatalf("unexpected display fields %q %q", tx.Date, tx.Time)
	}
	if tx.ID != base.UnixMilli() {
		t.Fatalf("expected timestamp id, got %d", tx.ID)
	}
}

func TestIDsStayUniqueWithinOneMillisecond(t *testing.T) {
	l := New([]core.Transaction{{ID: base.UnixMilli() + 5, Amount: core.Money{Cents: 1}, Type: core.Income}}, core.Money{Cents: 1})
	a, _ := l.Add(core.Money{Cents: 1}, "Food", core.Income, base)
	b, _ := l.Add(core.Money{Cents: 1}, "Food", core.Income, base)
	if a.ID != base.UnixMilli()+6 || b.ID != a.ID+1 {
		t.Fatalf("ids not unique: %d %d", a.ID, b.ID)
	}
}

func TestRecentLimits(t *testing.T) {
	l := &Ledger{}
	for i := 0; i < 7; i++ {
		if _, err := l.Add(core.Money{Cents: int64(100 + i)}, "Food", core.Income, base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("unexpected error %v", err)
		}
	}
	recent := l.Recent(5)
	if len(recent) != 5 {
		t.Fatalf("expected 5, got %d", len(recent))
	}
	if recent[0].Amount.Cents != 106 || recent[4].Amount.Cents != 102 {
		t.Fatalf("unexpected order: first=%d last=%d", recent[0].Amount.Cents, recent[4].Amount.Cents)
	}
	if len(l.Recent(50)) != 7 || len(l.Transactions()) != 7 {
		t.Fatalf("limit above length should return everything")
	}
	recent[0].Category = "mutated"
	if l.Recent(1)[0].Category == "mutated" {
		t.Fatalf("Recent must return a copy")
	}
}

func TestFold(t *testing.T) {
	txs := []core.Transaction{
		{Amount: core.Money{Cents: 1000}, Type: core.Income},
		{Amount: core.Money{Cents: 250}, Type: core.Expense},
		{Amount: core.Money{Cents: 250}, Type: core.Expense},
	}
	if got := Fold(txs); got.Cents != 500 {
		t.Fatalf("Fold = %d, want 500", got.Cents)
	}
	if got := Fold(nil); got.Cents != 0 {
		t.Fatalf("Fold(nil) = %d", got.Cents)
	}
}
