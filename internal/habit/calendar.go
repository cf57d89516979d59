package habit

import (
	"time"

	"lifeos/internal/core"
)

// Day is one cell of the week calendar.
type Day struct {
	Date   time.Time `json:"date"`
	Name   string    `json:"name"`   // Sun, Mon, ...
	Number int       `json:"number"` // day of month
	Active bool      `json:"active"`
	Today  bool      `json:"today"`
}

// WeekCalendar returns the seven days of the Sunday-first week containing
// today. A day is active when it is the last habit date, or when it lies
// within the `streak` days counted backwards from today.
func WeekCalendar(today time.Time, state core.StreakState) []Day {
	today = core.Midnight(today)
	start := today.AddDate(0, 0, -int(today.Weekday()))

	days := make([]Day, 7)
	for i := range days {
		d := start.AddDate(0, 0, i)
		cell := Day{
			Date:   d,
			Name:   d.Weekday().String()[:3],
			Number: d.Day(),
			Today:  core.SameDay(d, today),
		}
		if state.LastHabitDate != nil {
			if core.SameDay(d, *state.LastHabitDate) {
				cell.Active = true
			}
			ago := core.DaysBetween(d, today)
			if state.Streak > 0 && ago >= 0 && ago < state.Streak {
				cell.Active = true
			}
		}
		days[i] = cell
	}
	return days
}

// Calendar returns the week calendar for the tracker's current state.
func (t *Tracker) Calendar(now time.Time) []Day {
	return WeekCalendar(t.today(now), t.state)
}
