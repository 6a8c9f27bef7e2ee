package domain

import "time"

type Player struct {
	Name          string `json:"name"`
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xp_to_next_level"`
	Gold          int    `json:"gold"`
	SkillPoints   int    `json:"skill_points"`

	CurrentStreak  int        `json:"current_streak"`
	LongestStreak  int        `json:"longest_streak"`
	StreakGoal     int        `json:"streak_goal"`
	LastActiveDate *time.Time `json:"last_active_date,omitempty"`

	Health    int `json:"health"`
	MaxHealth int `json:"max_health"`
	Energy    int `json:"energy"`
	MaxEnergy int `json:"max_energy"`

	QuestsCompleted int `json:"quests_completed"`
}

// RewardOverride is either an explicit user-supplied value or a marker that
// the value must be computed. The zero value is Computed.
type RewardOverride struct {
	explicit bool
	value    int
}

func ExplicitReward(v int) RewardOverride { return RewardOverride{explicit: true, value: v} }
func ComputedReward() RewardOverride      { return RewardOverride{} }

// Value returns the explicit value and true, or 0 and false when computed.
func (r RewardOverride) Value() (int, bool) {
	return r.value, r.explicit
}

func (r RewardOverride) IsExplicit() bool { return r.explicit }

type Quest struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Type           QuestType      `json:"type"`
	Category       string         `json:"category"`
	Priority       Priority       `json:"priority"`
	Status         QuestStatus    `json:"status"`
	XPReward       int            `json:"xp_reward"`
	GoldReward     RewardOverride `json:"-"`
	Difficulty     Difficulty     `json:"difficulty"`
	EstimatedTime  int            `json:"estimated_time"`
	EnergyRequired int            `json:"energy_required"`
	AnxietyLevel   int            `json:"anxiety_level"`
	Tags           []string       `json:"tags,omitempty"`
	TemplateCode   string         `json:"template_code,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
	CompletedAt    *time.Time     `json:"completed_at,omitempty"`
}

type RepeatableAction struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	TargetCount       int        `json:"target_count"`
	CurrentCount      int        `json:"current_count"`
	Period            Period     `json:"period"`
	ResetDate         time.Time  `json:"reset_date"`
	LastCompletedDate *time.Time `json:"last_completed_date,omitempty"`
	XPPerCompletion   int        `json:"xp_per_completion"`
	GoldPerCompletion int        `json:"gold_per_completion"`
	TotalCompletions  int        `json:"total_completions"`
	CreatedAt         time.Time  `json:"created_at"`
}

func (a RepeatableAction) IsDaily() bool  { return a.Period == PeriodDaily }
func (a RepeatableAction) IsWeekly() bool { return a.Period == PeriodWeekly }

type CheckIn struct {
	Date    time.Time `json:"date"`
	Success bool      `json:"success"`
	Notes   string    `json:"notes,omitempty"`
}

type MilestoneReward struct {
	DaysMilestone int    `json:"days_milestone"`
	XPReward      int    `json:"xp_reward"`
	GoldReward    int    `json:"gold_reward"`
	Title         string `json:"title"`
}

type StreakChallenge struct {
	ID            string              `json:"id"`
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Difficulty    ChallengeDifficulty `json:"difficulty"`
	CurrentStreak int                 `json:"current_streak"`
	LongestStreak int                 `json:"longest_streak"`
	IsActive      bool                `json:"is_active"`
	StartDate     *time.Time          `json:"start_date,omitempty"`
	CheckIns      []CheckIn           `json:"check_ins"`
	Rewards       []MilestoneReward   `json:"rewards"`
	CreatedAt     time.Time           `json:"created_at"`
}

type JournalEntry struct {
	ID     string    `json:"id"`
	At     time.Time `json:"at"`
	Text   string    `json:"text"`
	Mood   *int      `json:"mood,omitempty"`
	Amount *float64  `json:"amount,omitempty"`
}

// Journal owns its entries; entries are append-only.
type Journal struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Kind      JournalKind    `json:"kind"`
	CreatedAt time.Time      `json:"created_at"`
	Entries   []JournalEntry `json:"entries"`
}

type HealthLogEntry struct {
	ID          string             `json:"id"`
	Type        HealthActivityType `json:"type"`
	At          time.Time          `json:"at"`
	Minutes     int                `json:"minutes"`
	XPAwarded   int                `json:"xp_awarded"`
	HealthDelta int                `json:"health_delta"`
	EnergyDelta int                `json:"energy_delta"`
}

type AchievementUnlock struct {
	ID         string    `json:"id"`
	UnlockedAt time.Time `json:"unlocked_at"`
}
