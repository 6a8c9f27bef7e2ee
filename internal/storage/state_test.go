package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lifequest/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "lq.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleState() domain.State {
	created := time.Date(2025, 3, 1, 9, 30, 0, 123456789, time.UTC)
	done := created.Add(26 * time.Hour)
	mood := 8
	saved := 12.5

	return domain.State{
		Player: domain.Player{
			Name: "Ada", Level: 3, XP: 40, XPToNextLevel: 520, Gold: 77, SkillPoints: 1,
			CurrentStreak: 2, LongestStreak: 5, StreakGoal: 7, LastActiveDate: &done,
			Health: 90, MaxHealth: 100, Energy: 60, MaxEnergy: 100, QuestsCompleted: 4,
		},
		Quests: []domain.Quest{
			{
				ID: "q1", Title: "Write report", Type: domain.QuestMain, Category: "work",
				Priority: domain.PriorityHigh, Status: domain.QuestCompleted, XPReward: 50,
				GoldReward: domain.ComputedReward(), Difficulty: 3, EstimatedTime: 60,
				EnergyRequired: 4, AnxietyLevel: 2, Tags: []string{"deep", "q1"},
				CreatedAt: created, CompletedAt: &done,
			},
			{
				ID: "q2", Title: "Call mom", Type: domain.QuestSide, Priority: domain.PriorityLow,
				Status: domain.QuestActive, XPReward: 10, GoldReward: domain.ExplicitReward(3),
				Difficulty: 1, EstimatedTime: 10, TemplateCode: "tidy_desk", CreatedAt: created,
			},
		},
		UnlockedSkills:       []string{"adaptive_focus", "vitality"},
		UnlockedAchievements: []domain.AchievementUnlock{{ID: "first_quest", UnlockedAt: done}},
		Actions: []domain.RepeatableAction{
			{
				ID: "a1", Title: "Drink water", TargetCount: 8, CurrentCount: 3, Period: domain.PeriodDaily,
				ResetDate: created, LastCompletedDate: &done, XPPerCompletion: 2, GoldPerCompletion: 1,
				TotalCompletions: 11, CreatedAt: created,
			},
		},
		Challenges: []domain.StreakChallenge{
			{
				ID: "c1", Title: "No sugar", Description: "none at all", Difficulty: domain.ChallengeHard,
				CurrentStreak: 1, LongestStreak: 3, IsActive: true, StartDate: &created,
				CheckIns: []domain.CheckIn{
					{Date: created, Success: false, Notes: "cake"},
					{Date: done, Success: true},
				},
				Rewards: []domain.MilestoneReward{
					{DaysMilestone: 3, XPReward: 90, GoldReward: 18, Title: "Three-Day Spark"},
					{DaysMilestone: 7, XPReward: 210, GoldReward: 42, Title: "One Week Strong"},
				},
				CreatedAt: created,
			},
		},
		Journals: []domain.Journal{
			{
				ID: "j1", Name: "Piggy bank", Kind: domain.JournalSavings, CreatedAt: created,
				Entries: []domain.JournalEntry{
					{ID: "e1", At: created, Text: "skipped coffee", Amount: &saved},
					{ID: "e2", At: done, Text: "good day", Mood: &mood},
				},
			},
		},
		HealthLog: []domain.HealthLogEntry{
			{ID: "h1", Type: domain.HealthSleep, At: done, Minutes: 480, XPAwarded: 10, HealthDelta: 5, EnergyDelta: 30},
		},
	}
}

func TestLoadStateEmpty(t *testing.T) {
	db := openTestDB(t)

	_, found, err := LoadState(context.Background(), db)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	want := sampleState()

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		return SaveState(ctx, tx, want)
	}))

	got, found, err := LoadState(ctx, db)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)

	v, explicit := got.Quests[1].GoldReward.Value()
	assert.True(t, explicit)
	assert.Equal(t, 3, v)
	assert.False(t, got.Quests[0].GoldReward.IsExplicit())
}

func TestSaveStateReplacesMutableTables(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := sampleState()
	require.NoError(t, SaveState(ctx, db, s))

	s.Quests = s.Quests[1:]
	s.Challenges[0].CheckIns = s.Challenges[0].CheckIns[:1]
	s.Challenges[0].CurrentStreak = 0
	require.NoError(t, SaveState(ctx, db, s))

	got, _, err := LoadState(ctx, db)
	require.NoError(t, err)
	require.Len(t, got.Quests, 1)
	assert.Equal(t, "q2", got.Quests[0].ID)
	require.Len(t, got.Challenges[0].CheckIns, 1)
	assert.Equal(t, 0, got.Challenges[0].CurrentStreak)
}

func TestJournalEntriesAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	s := sampleState()
	require.NoError(t, SaveState(ctx, db, s))

	s.Journals[0].Entries[0].Text = "rewritten"
	require.NoError(t, SaveState(ctx, db, s))

	got, _, err := LoadState(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, "skipped coffee", got.Journals[0].Entries[0].Text)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if err := SaveState(ctx, tx, sampleState()); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, found, err := LoadState(ctx, db)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestLedger(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	ledger := NewLedgerRepo(db)
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, xp := range []int{10, 20, 30} {
		_, err := ledger.Insert(ctx, LedgerEntry{
			At: base.Add(time.Duration(i) * 24 * time.Hour), Action: "complete_quest",
			Source: "quest", SourceID: "q", XP: xp, Gold: 1,
		})
		require.NoError(t, err)
	}

	recent, err := ledger.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, 30, recent[0].XP)
	assert.Equal(t, 20, recent[1].XP)

	xp, gold, err := ledger.TotalsSince(ctx, base.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 50, xp)
	assert.Equal(t, 2, gold)
}
