// Package ledger keeps the append-only list of income and expense entries
// together with their running balance.
package ledger

import (
	"time"

	"lifeos/internal/core"
)

const (
	dateLayout = "2 Jan 2006"
	timeLayout = "03:04 PM"
)

// Ledger holds transactions most-recent first. The zero value is ready to use.
type Ledger struct {
	transactions []core.Transaction
	balance      core.Money
	lastID       int64
}

// New restores a ledger from persisted state. The balance is taken as stored;
// use Recompute to compare it against the full fold.
func New(transactions []core.Transaction, balance core.Money) *Ledger {
	l := &Ledger{
		transactions: append([]core.Transaction(nil), transactions...),
		balance:      balance,
	}
	for _, tx := range l.transactions {
		if tx.ID > l.lastID {
			l.lastID = tx.ID
		}
	}
	return l
}

// Add records a new transaction at the front of the ledger and moves the
// balance by its signed amount. On error the ledger is left unchanged.
func (l *Ledger) Add(amount core.Money, category string, typ core.TransactionType, now time.Time) (core.Transaction, error) {
	if err := amount.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if err := typ.Validate(); err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		ID:        l.nextID(now),
		Amount:    amount,
		Category:  core.NormalizeCategory(category),
		Type:      typ,
		Date:      now.Format(dateLayout),
		Time:      now.Format(timeLayout),
		CreatedAt: now,
	}
	l.transactions = append([]core.Transaction{tx}, l.transactions...)
	l.balance = l.balance.Add(tx.Signed())
	return tx, nil
}

func (l *Ledger) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= l.lastID {
		id = l.lastID + 1
	}
	l.lastID = id
	return id
}

// Balance returns the running balance.
func (l *Ledger) Balance() core.Money {
	return l.balance
}

// Negative reports whether spending has exceeded income.
func (l *Ledger) Negative() bool {
	return l.balance.Cents < 0
}

// Recent returns up to n transactions, most recent first.
func (l *Ledger) Recent(n int) []core.Transaction {
	if n < 0 || n > len(l.transactions) {
		n = len(l.transactions)
	}
	return append([]core.Transaction(nil), l.transactions[:n]...)
}

// Transactions returns a copy of every transaction, most recent first.
func (l *Ledger) Transactions() []core.Transaction {
	return l.Recent(-1)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Recompute folds every transaction into a balance from scratch.
func (l *Ledger) Recompute() core.Money {
	return Fold(l.transactions)
}

// Fold sums income minus expense over txs.
func Fold(txs []core.Transaction) core.Money {
	var total core.Money
	for _, tx := range txs {
		total = total.Add(tx.Signed())
	}
	return total
}
