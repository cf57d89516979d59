package habit

import (
	"testing"
	"time"

	"lifeos/internal/core"
)

func activeDays(days []Day) []int {
	var out []int
	for _, d := range days {
		if d.Active {
			out = append(out, d.Number)
		}
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestWeekCalendarShape(t *testing.T) {
	// Wednesday June 4th 2025.
	days := WeekCalendar(day(4), core.StreakState{})
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	for i, d := range days {
		if d.Name != names[i] || d.Number != i+1 {
			t.Fatalf("day %d: got %s %d", i, d.Name, d.Number)
		}
		if d.Today != (d.Number == 4) {
			t.Fatalf("day %d: today flag %v", i, d.Today)
		}
		if d.Active {
			t.Fatalf("no day should be active without a streak")
		}
	}
}

func TestWeekCalendarActiveReconstruction(t *testing.T) {
	cases := []struct {
		name   string
		today  time.Time
		streak int
		last   time.Time
		want   []int
	}{
		{"streak ending today", day(5), 3, midnight(5), []int{3, 4, 5}},
		{"streak longer than week so far", day(3), 10, midnight(3), []int{1, 2, 3}},
		// The last mark was yesterday: the counter still lights today and
		// the day before, and the last date itself.
		{"last mark yesterday", day(6), 2, midnight(5), []int{5, 6}},
		// A past day recorded via MarkDay stays active even outside the streak window.
		{"recorded past day", day(6), 1, midnight(2), []int{2, 6}},
		{"sunday today", day(1), 1, midnight(1), []int{1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			last := tc.last
			got := activeDays(WeekCalendar(tc.today, core.StreakState{Streak: tc.streak, LastHabitDate: &last}))
			if !equalInts(got, tc.want) {
				t.Fatalf("active = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrackerCalendar(t *testing.T) {
	tr := NewTracker(core.StreakState{}, time.UTC)
	for _, d := range []int{2, 3, 4} {
		if _, err := tr.MarkToday(day(d)); err != nil {
			t.Fatal(err)
		}
	}
	got := activeDays(tr.Calendar(day(4)))
	if !equalInts(got, []int{2, 3, 4}) {
		t.Fatalf("active = %v", got)
	}
}

func TestMotivation(t *testing.T) {
	if Motivation(10) != Motivation(7) {
		t.Fatalf("10 should use the 7-day message, got %q", Motivation(10))
	}
	if Motivation(7) != "🎉 ONE WEEK! You've mastered the first milestone!" {
		t.Fatalf("unexpected 7-day message %q", Motivation(7))
	}
	if Motivation(0) != "Every great journey begins with a single step. Start your streak today!" {
		t.Fatalf("unexpected 0-day message %q", Motivation(0))
	}
	if Motivation(45) != Motivation(30) {
		t.Fatalf("45 should use the 30-day message")
	}
	if Motivation(100) != "👑 100 DAYS! Legendary commitment!" {
		t.Fatalf("unexpected 100-day message %q", Motivation(100))
	}
	if got := Motivation(150); got != "150 days! Your consistency is truly remarkable!" {
		t.Fatalf("unexpected generic message %q", got)
	}
}
