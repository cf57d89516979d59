// Package habit tracks a single daily habit as a streak of consecutive days.
//
// Only the streak length and the most recent marked day are kept. The week
// calendar is reconstructed from those two values, so it shows the last
// `streak` days as active whether or not each of them was marked
// individually.
package habit

import (
	"time"

	"lifeos/internal/core"
)

// Outcome describes what a streak operation did.
type Outcome string

const (
	Started            Outcome = "started"
	Continued          Outcome = "continued"
	Restarted          Outcome = "restarted"
	AlreadyMarkedToday Outcome = "already_marked_today"
	Recorded           Outcome = "recorded"
	ResetDone          Outcome = "reset"
	NothingToReset     Outcome = "nothing_to_reset"
)

// Milestone is a celebratory event; it never affects state.
type Milestone string

const (
	NoMilestone Milestone = ""
	Weekly      Milestone = "weekly"
	Monthly     Milestone = "monthly"
	Century     Milestone = "century"
)

// Result reports the effect of an operation.
type Result struct {
	Outcome Outcome `json:"outcome"`
	Streak  int     `json:"streak"`
	// Previous is the streak before the operation, reported when a streak is
	// broken or reset.
	Previous  int       `json:"previous,omitempty"`
	Milestone Milestone `json:"milestone,omitempty"`
}

// Changed reports whether the operation modified the state.
func (r Result) Changed() bool {
	return r.Outcome != AlreadyMarkedToday && r.Outcome != NothingToReset
}

// Tracker owns the streak state. Dates are truncated to midnight in loc.
type Tracker struct {
	state core.StreakState
	loc   *time.Location
}

// NewTracker restores a tracker. A streak without a date, or a date without a
// streak, is normalized to "no streak".
func NewTracker(state core.StreakState, loc *time.Location) *Tracker {
	if loc == nil {
		loc = time.Local
	}
	t := &Tracker{loc: loc}
	if state.Streak > 0 && state.LastHabitDate != nil {
		d := core.Midnight(state.LastHabitDate.In(loc))
		t.state = core.StreakState{Streak: state.Streak, LastHabitDate: &d}
	}
	return t
}

// State returns a copy of the current state.
func (t *Tracker) State() core.StreakState {
	s := core.StreakState{Streak: t.state.Streak}
	if t.state.LastHabitDate != nil {
		d := *t.state.LastHabitDate
		s.LastHabitDate = &d
	}
	return s
}

func (t *Tracker) today(now time.Time) time.Time {
	return core.Midnight(now.In(t.loc))
}

// MarkToday records the habit for the day containing now.
func (t *Tracker) MarkToday(now time.Time) (Result, error) {
	today := t.today(now)

	if t.state.LastHabitDate == nil {
		t.set(1, today)
		return t.result(Started, 0), nil
	}

	diff := core.DaysBetween(*t.state.LastHabitDate, today)
	switch {
	case diff == 0:
		return Result{Outcome: AlreadyMarkedToday, Streak: t.state.Streak}, nil
	case diff == 1:
		prev := t.state.Streak
		t.set(prev+1, today)
		return t.result(Continued, prev), nil
	case diff > 1:
		prev := t.state.Streak
		t.set(1, today)
		return t.result(Restarted, prev), nil
	default:
		return Result{}, core.ErrClockSkew
	}
}

// MarkDay records the habit for an arbitrary past day. Marking today (or the
// first day ever) extends the streak; marking another past day only moves
// the last habit date.
func (t *Tracker) MarkDay(date, now time.Time) (Result, error) {
	today := t.today(now)
	day := core.Midnight(date.In(t.loc))

	if core.DaysBetween(today, day) > 0 {
		return Result{}, core.ErrFutureDate
	}
	if t.state.LastHabitDate != nil && core.SameDay(*t.state.LastHabitDate, day) {
		return Result{}, core.ErrAlreadyMarked
	}

	prev := t.state.Streak
	if t.state.LastHabitDate == nil || core.SameDay(day, today) {
		t.set(prev+1, day)
		if prev == 0 {
			return t.result(Started, prev), nil
		}
		return t.result(Continued, prev), nil
	}

	t.set(prev, day)
	return Result{Outcome: Recorded, Streak: prev, Previous: prev}, nil
}

// Reset clears the streak.
func (t *Tracker) Reset() Result {
	if t.state.Streak == 0 {
		return Result{Outcome: NothingToReset}
	}
	prev := t.state.Streak
	t.state = core.StreakState{}
	return Result{Outcome: ResetDone, Previous: prev}
}

func (t *Tracker) set(streak int, day time.Time) {
	t.state = core.StreakState{Streak: streak, LastHabitDate: &day}
}

func (t *Tracker) result(o Outcome, prev int) Result {
	return Result{
		Outcome:   o,
		Streak:    t.state.Streak,
		Previous:  prev,
		Milestone: MilestoneFor(t.state.Streak),
	}
}

// MilestoneFor returns the milestone reached by a streak value, if any.
func MilestoneFor(streak int) Milestone {
	switch {
	case streak <= 0:
		return NoMilestone
	case streak%7 == 0:
		return Weekly
	case streak == 30:
		return Monthly
	case streak == 100:
		return Century
	default:
		return NoMilestone
	}
}
