package dashboard

import (
	"context"
	"time"

	"lifeos/internal/core"
	"lifeos/internal/habit"
	"lifeos/internal/log"
)

func (s *Session) AddTask(ctx context.Context, text string) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.tasks.Add(text, s.now())
	if err != nil {
		return core.Task{}, err
	}
	s.logger.InfoContext(ctx, "Task added", log.FieldTaskID, t.ID)
	s.changed(ctx, log.OpCreate)
	return t, nil
}

func (s *Session) ToggleTask(ctx context.Context, id int64) (core.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, err := s.tasks.Toggle(id, s.now())
	if err != nil {
		return core.Task{}, err
	}
	s.logger.InfoContext(ctx, "Task toggled", log.FieldTaskID, t.ID, "completed", t.Completed)
	s.changed(ctx, log.OpUpdate)
	return t, nil
}

// DeleteTask removes a task. confirmed carries the user's answer to the
// confirmation prompt.
func (s *Session) DeleteTask(ctx context.Context, id int64, confirmed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.tasks.Delete(id, confirmed); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Task deleted", log.FieldTaskID, id)
	s.changed(ctx, log.OpDelete)
	return nil
}

// ClearCompleted removes finished tasks and returns how many were removed.
// Nothing is persisted when there was nothing to clear.
func (s *Session) ClearCompleted(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.tasks.ClearCompleted()
	if n == 0 {
		return 0
	}
	s.logger.InfoContext(ctx, "Completed tasks cleared", "count", n)
	s.changed(ctx, log.OpDelete)
	return n
}

// Tasks returns the display order: incomplete first, newest first.
func (s *Session) Tasks() []core.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tasks.Sorted()
}

func (s *Session) AddTransaction(ctx context.Context, amount core.Money, category string, typ core.TransactionType) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.ledger.Add(amount, category, typ, s.Now())
	if err != nil {
		return core.Transaction{}, err
	}
	s.events.LogTransactionAdded(ctx, tx.ID, string(tx.Type), tx.Amount.Cents, string(tx.Category), s.ledger.Balance().Cents)
	if s.ledger.Negative() {
		s.logger.WarnContext(ctx, "Balance is negative", log.FieldBalanceCents, s.ledger.Balance().Cents)
	}
	s.changed(ctx, log.OpCreate)
	return tx, nil
}

// Transactions returns up to limit entries, most recent first; limit < 0
// returns all of them.
func (s *Session) Transactions(limit int) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Recent(limit)
}

// Balance returns the running balance and whether it is negative.
func (s *Session) Balance() (core.Money, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Balance(), s.ledger.Negative()
}

func (s *Session) MarkToday(ctx context.Context) (habit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.habit.MarkToday(s.now())
	if err != nil {
		return habit.Result{}, err
	}
	s.streakChanged(ctx, res)
	return res, nil
}

// MarkDay records date as a habit day.
func (s *Session) MarkDay(ctx context.Context, date time.Time) (habit.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.habit.MarkDay(date, s.now())
	if err != nil {
		return habit.Result{}, err
	}
	s.streakChanged(ctx, res)
	return res, nil
}

func (s *Session) ResetStreak(ctx context.Context) habit.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	res := s.habit.Reset()
	s.streakChanged(ctx, res)
	return res
}

// Habit returns the streak state.
func (s *Session) Habit() core.StreakState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.habit.State()
}

func (s *Session) streakChanged(ctx context.Context, res habit.Result) {
	if !res.Changed() {
		s.logger.DebugContext(ctx, "Habit unchanged", log.FieldOutcome, string(res.Outcome))
		return
	}
	s.events.LogStreakChanged(ctx, res.Streak, string(res.Outcome), string(res.Milestone))
	s.changed(ctx, log.OpUpdate)
}
