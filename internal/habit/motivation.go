package habit

import "fmt"

type motivation struct {
	from    int
	message string
}

// motivations must stay sorted by from.
var motivations = []motivation{
	{0, "Every great journey begins with a single step. Start your streak today!"},
	{1, "Great start! The first day is the hardest. Keep going!"},
	{2, "Two days in a row! You're building momentum!"},
	{3, "Three-day streak! Consistency is becoming a habit!"},
	{4, "Four days! You're officially building a routine!"},
	{5, "Five days strong! Almost a full week!"},
	{6, "Six days! One more day for your first weekly milestone!"},
	{7, "🎉 ONE WEEK! You've mastered the first milestone!"},
	{14, "🏆 TWO WEEKS! Your dedication is inspiring!"},
	{21, "🌟 THREE WEEKS! You're developing powerful discipline!"},
	{30, "💯 ONE MONTH! You are a habit master!"},
	{60, "🔥 TWO MONTHS! Unstoppable consistency!"},
	{90, "🏅 THREE MONTHS! You've transformed your life!"},
	{100, "👑 100 DAYS! Legendary commitment!"},
}

// Motivation picks the message of the highest milestone not above streak.
// Streaks beyond the last milestone get a generic message.
func Motivation(streak int) string {
	last := motivations[len(motivations)-1]
	if streak > last.from {
		return fmt.Sprintf("%d days! Your consistency is truly remarkable!", streak)
	}
	msg := motivations[0].message
	for _, m := range motivations {
		if streak >= m.from {
			msg = m.message
		}
	}
	return msg
}
