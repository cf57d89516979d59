package dashboard

import (
	"time"

	"lifeos/internal/core"
	"lifeos/internal/habit"
)

// View is everything the dashboard page renders. It is derived from the
// session state and the current day only.
type View struct {
	Today            time.Time          `json:"today"`
	Tasks            []core.Task        `json:"tasks"`
	TaskTotal        int                `json:"taskTotal"`
	TaskCompleted    int                `json:"taskCompleted"`
	Transactions     []core.Transaction `json:"transactions"`
	TransactionCount int                `json:"transactionCount"`
	Balance          core.Money         `json:"balance"`
	BalanceNegative  bool               `json:"balanceNegative"`
	Streak           int                `json:"streak"`
	LastHabitDate    *time.Time         `json:"lastHabitDate,omitempty"`
	MarkedToday      bool               `json:"markedToday"`
	Calendar         []habit.Day        `json:"calendar"`
	Motivation       string             `json:"motivation"`
	Categories       []core.Category    `json:"categories"`
}

// View builds the presentation model for the current moment.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	total, completed := s.tasks.Stats()
	st := s.habit.State()
	balance := s.ledger.Balance()

	return View{
		Today:            core.Midnight(now),
		Tasks:            s.tasks.Sorted(),
		TaskTotal:        total,
		TaskCompleted:    completed,
		Transactions:     s.ledger.Recent(RecentTransactions),
		TransactionCount: s.ledger.Len(),
		Balance:          balance,
		BalanceNegative:  s.ledger.Negative(),
		Streak:           st.Streak,
		LastHabitDate:    st.LastHabitDate,
		MarkedToday:      st.LastHabitDate != nil && core.SameDay(*st.LastHabitDate, now),
		Calendar:         s.habit.Calendar(s.now()),
		Motivation:       habit.Motivation(st.Streak),
		Categories:       core.Categories(),
	}
}
