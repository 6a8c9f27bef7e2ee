package engine

import (
	"strings"
	"testing"
	"time"

	"lifequest/internal/domain"
)

func moodEntry(at time.Time, mood int) domain.JournalEntry {
	m := mood
	return domain.JournalEntry{ID: at.String(), At: at, Text: "entry", Mood: &m}
}

func TestJournalStatsStreakAndMood(t *testing.T) {
	now := dayN(2).Add(11 * time.Hour)
	j := domain.Journal{Kind: domain.JournalMood, Entries: []domain.JournalEntry{
		moodEntry(dayN(0), 8),
		moodEntry(dayN(1), 9),
		moodEntry(dayN(1).Add(time.Hour), 9),
		moodEntry(dayN(2), 10),
	}}

	st := ComputeJournalStats(j, now)
	if st.TotalEntries != 4 || st.TodayEntries != 1 || st.WeekEntries != 4 || st.MonthEntries != 4 {
		t.Fatalf("counts=%+v", st)
	}
	if st.AvgMood != 9 {
		t.Fatalf("AvgMood=%v, want 9", st.AvgMood)
	}
	if st.CurrentStreak != 3 || st.LongestStreak != 3 {
		t.Fatalf("streak=%d longest=%d, want 3/3", st.CurrentStreak, st.LongestStreak)
	}
	// The streak rule outranks the mood rule.
	if got := Insight(j.Kind, st); !strings.HasPrefix(got, "✨ 3-day streak") {
		t.Fatalf("Insight=%q", got)
	}
}

func TestJournalStatsLongestVsCurrent(t *testing.T) {
	var entries []domain.JournalEntry
	for _, d := range []int{0, 1, 2, 3, 5, 6} {
		entries = append(entries, domain.JournalEntry{At: dayN(d)})
	}
	st := ComputeJournalStats(domain.Journal{Entries: entries}, dayN(6))
	if st.CurrentStreak != 2 || st.LongestStreak != 4 {
		t.Fatalf("streak=%d longest=%d, want 2/4", st.CurrentStreak, st.LongestStreak)
	}
	if st.AvgMood != 0 {
		t.Fatalf("AvgMood=%v, want 0 without moods", st.AvgMood)
	}
}

func TestJournalStatsSavings(t *testing.T) {
	amount := func(v float64) *float64 { return &v }
	now := dayN(30)
	entries := []domain.JournalEntry{
		{At: dayN(10), Amount: amount(600)},
		{At: dayN(20), Amount: amount(650)},
	}

	st := ComputeJournalStats(domain.Journal{Kind: domain.JournalSavings, Entries: entries}, now)
	if st.TotalSaved != 1250 || st.WeekEntries != 0 || st.MonthEntries != 2 || st.CurrentStreak != 0 {
		t.Fatalf("stats=%+v", st)
	}
	if got := Insight(domain.JournalSavings, st); !strings.HasPrefix(got, "💰") {
		t.Fatalf("Insight=%q", got)
	}

	general := ComputeJournalStats(domain.Journal{Kind: domain.JournalGeneral, Entries: entries}, now)
	if general.TotalSaved != 0 {
		t.Fatalf("TotalSaved for general journal=%v, want 0", general.TotalSaved)
	}
	if got := Insight(domain.JournalGeneral, general); !strings.HasPrefix(got, "📅") {
		t.Fatalf("Insight=%q", got)
	}
}

func TestInsightEmptyJournal(t *testing.T) {
	st := ComputeJournalStats(domain.Journal{}, day0)
	if got := Insight(domain.JournalGeneral, st); got != "📝 Write your first entry." {
		t.Fatalf("Insight=%q", got)
	}
}
