package engine

import (
	"testing"

	"lifequest/internal/domain"
)

var (
	allQuestTypes = []domain.QuestType{domain.QuestMain, domain.QuestSide, domain.QuestDaily, domain.QuestWeekly}
	allPriorities = []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityUrgent}
)

func TestGoldRewardScenarios(t *testing.T) {
	cases := []struct {
		qt   domain.QuestType
		diff domain.Difficulty
		prio domain.Priority
		want int
	}{
		{domain.QuestMain, 3, domain.PriorityHigh, 56},
		{domain.QuestSide, 1, domain.PriorityLow, 7},
		{domain.QuestDaily, 1, domain.PriorityLow, 5},
		{domain.QuestWeekly, 5, domain.PriorityUrgent, 100},
		{domain.QuestSide, 2, domain.PriorityMedium, 18},
	}
	for _, tc := range cases {
		q := domain.Quest{Type: tc.qt, Difficulty: tc.diff, Priority: tc.prio}
		if got := GoldReward(q); got != tc.want {
			t.Fatalf("GoldReward(%s/%d/%s)=%d, want %d", tc.qt, tc.diff, tc.prio, got, tc.want)
		}
	}
}

func TestGoldRewardAtLeastOne(t *testing.T) {
	for _, qt := range allQuestTypes {
		for _, prio := range allPriorities {
			for d := domain.DifficultyTrivial; d <= domain.DifficultyEpic; d++ {
				q := domain.Quest{Type: qt, Difficulty: d, Priority: prio}
				if got := GoldReward(q); got < 1 {
					t.Fatalf("GoldReward(%s/%d/%s)=%d, want >= 1", qt, d, prio, got)
				}
			}
		}
	}
}

func TestGoldRewardExplicitOverrideWins(t *testing.T) {
	for _, qt := range allQuestTypes {
		for _, prio := range allPriorities {
			for d := domain.DifficultyTrivial; d <= domain.DifficultyEpic; d++ {
				q := domain.Quest{Type: qt, Difficulty: d, Priority: prio, GoldReward: domain.ExplicitReward(7)}
				if got := GoldReward(q); got != 7 {
					t.Fatalf("GoldReward(%s/%d/%s)=%d, want 7", qt, d, prio, got)
				}
			}
		}
	}
}

func permutations(skills []SkillDef) [][]SkillDef {
	if len(skills) <= 1 {
		return [][]SkillDef{append([]SkillDef(nil), skills...)}
	}
	var out [][]SkillDef
	for i := range skills {
		rest := make([]SkillDef, 0, len(skills)-1)
		rest = append(rest, skills[:i]...)
		rest = append(rest, skills[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]SkillDef{skills[i]}, p...))
		}
	}
	return out
}

func TestModifierPipelineCommutative(t *testing.T) {
	skills := DefaultSkills()
	s := NewState("Ada", 3)
	s.Player.CurrentStreak = 5
	for _, sk := range skills {
		s.UnlockedSkills = append(s.UnlockedSkills, sk.ID)
	}

	contexts := []RewardContext{
		{Quest: &domain.Quest{Type: domain.QuestMain, EstimatedTime: 10, AnxietyLevel: 5}},
		{Quest: &domain.Quest{Type: domain.QuestMain, EstimatedTime: 90, AnxietyLevel: 4}},
		{Quest: &domain.Quest{Type: domain.QuestSide, EstimatedTime: 30}},
		{Health: &domain.HealthLogEntry{Type: domain.HealthSleep}},
		{Action: &domain.RepeatableAction{Title: "Stretch"}},
	}
	perms := permutations(skills)
	if len(perms) != 120 {
		t.Fatalf("len(perms)=%d, want 120", len(perms))
	}
	for ci, rc := range contexts {
		for _, base := range []float64{1, 15, 50, 123} {
			want := ApplyModifiers(base, rc, &s, skills)
			for _, p := range perms {
				if got := ApplyModifiers(base, rc, &s, p); got != want {
					t.Fatalf("context %d base %v: order-dependent result %v vs %v", ci, base, got, want)
				}
			}
		}
	}
}

func TestModifierPipelineIgnoresLockedSkills(t *testing.T) {
	s := NewState("Ada", 7)
	rc := RewardContext{Quest: &domain.Quest{EstimatedTime: 5, AnxietyLevel: 9}}
	if got := ApplyModifiers(40, rc, &s, DefaultSkills()); got != 40 {
		t.Fatalf("ApplyModifiers with nothing unlocked=%v, want 40", got)
	}

	s.UnlockedSkills = []string{SkillAnxietyWarrior, SkillAdaptiveFocus}
	// 40 * 1.5 * 1.5
	if got := ApplyModifiers(40, rc, &s, DefaultSkills()); got != 90 {
		t.Fatalf("ApplyModifiers=%v, want 90", got)
	}
}

func TestQuestXPRounds(t *testing.T) {
	s := NewState("Ada", 7)
	s.UnlockedSkills = []string{SkillDeepWork}
	q := domain.Quest{Type: domain.QuestMain, EstimatedTime: 60, XPReward: 11}
	// 11 * 1.25 = 13.75
	if got := QuestXP(&s, q, DefaultSkills()); got != 14 {
		t.Fatalf("QuestXP=%d, want 14", got)
	}
}
