package engine

import (
	"fmt"
	"sort"
	"time"

	"lifequest/internal/domain"
)

// JournalStats are read-only statistics derived from a journal's entries.
type JournalStats struct {
	TotalEntries  int
	TodayEntries  int
	WeekEntries   int
	MonthEntries  int
	AvgMood       float64
	TotalSaved    float64
	CurrentStreak int
	LongestStreak int
}

// ComputeJournalStats aggregates j's entries relative to now. Week and month
// windows are rolling (now-7d, now-1 month).
func ComputeJournalStats(j domain.Journal, now time.Time) JournalStats {
	loc := now.Location()
	weekStart := now.AddDate(0, 0, -7)
	monthStart := now.AddDate(0, -1, 0)

	st := JournalStats{TotalEntries: len(j.Entries)}
	moodSum, moodCount := 0, 0
	for _, e := range j.Entries {
		if sameDay(e.At, now, loc) {
			st.TodayEntries++
		}
		if !e.At.Before(weekStart) {
			st.WeekEntries++
		}
		if !e.At.Before(monthStart) {
			st.MonthEntries++
		}
		if e.Mood != nil {
			moodSum += *e.Mood
			moodCount++
		}
		if j.Kind == domain.JournalSavings && e.Amount != nil {
			st.TotalSaved += *e.Amount
		}
	}
	if moodCount > 0 {
		st.AvgMood = float64(moodSum) / float64(moodCount)
	}

	st.CurrentStreak, st.LongestStreak = entryStreaks(j.Entries, now)
	return st
}

// entryStreaks scans distinct entry dates. current counts consecutive days
// ending today; longest is the longest consecutive run in the history.
func entryStreaks(entries []domain.JournalEntry, now time.Time) (current, longest int) {
	if len(entries) == 0 {
		return 0, 0
	}
	loc := now.Location()

	seen := map[string]bool{}
	var days []time.Time
	for _, e := range entries {
		k := dayKey(e.At, loc)
		if seen[k] {
			continue
		}
		seen[k] = true
		days = append(days, startOfDay(e.At, loc))
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	run := 1
	longest = 1
	for i := 1; i < len(days); i++ {
		if daysBetween(days[i-1], days[i], loc) == 1 {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}

	today := startOfDay(now, loc)
	for d := today; seen[dayKey(d, loc)]; d = d.AddDate(0, 0, -1) {
		current++
	}
	return current, longest
}

type insightRule struct {
	match func(k domain.JournalKind, st JournalStats) bool
	text  func(st JournalStats) string
}

var insightRules = []insightRule{
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.CurrentStreak >= 7 },
		text:  func(st JournalStats) string { return fmt.Sprintf("🔥 %d days in a row. This is a habit now.", st.CurrentStreak) },
	},
	{
		match: func(k domain.JournalKind, st JournalStats) bool { return k == domain.JournalSavings && st.TotalSaved >= 1000 },
		text:  func(st JournalStats) string { return fmt.Sprintf("💰 %.2f saved so far. Treat yourself to something small.", st.TotalSaved) },
	},
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.CurrentStreak >= 3 },
		text:  func(st JournalStats) string { return fmt.Sprintf("✨ %d-day streak. Keep it going!", st.CurrentStreak) },
	},
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.AvgMood >= 8 },
		text:  func(st JournalStats) string { return fmt.Sprintf("😊 Average mood %.1f. Whatever you are doing, it works.", st.AvgMood) },
	},
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.AvgMood > 0 && st.AvgMood <= 4 },
		text: func(st JournalStats) string {
			return fmt.Sprintf("💙 Average mood %.1f. Consider a rest day or a chat with someone you trust.", st.AvgMood)
		},
	},
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.TotalEntries > 0 && st.WeekEntries == 0 },
		text:  func(JournalStats) string { return "📅 Nothing written this week. One line is enough to restart." },
	},
	{
		match: func(_ domain.JournalKind, st JournalStats) bool { return st.TotalEntries == 0 },
		text:  func(JournalStats) string { return "📝 Write your first entry." },
	},
}

// Insight returns the first matching insight message for the stats.
func Insight(kind domain.JournalKind, st JournalStats) string {
	for _, r := range insightRules {
		if r.match(kind, st) {
			return r.text(st)
		}
	}
	return "📖 Keep writing."
}
