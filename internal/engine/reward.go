package engine

import (
	"math"

	"lifequest/internal/domain"
)

// BaseGold is the base value multiplied by type, difficulty and priority.
const BaseGold = 5.0

func typeMultiplier(t domain.QuestType) float64 {
	switch t {
	case domain.QuestMain:
		return 5
	case domain.QuestSide:
		return 3
	case domain.QuestDaily:
		return 2
	case domain.QuestWeekly:
		return 4
	default:
		return 3
	}
}

func priorityMultiplier(p domain.Priority) float64 {
	switch p {
	case domain.PriorityUrgent:
		return 2.0
	case domain.PriorityHigh:
		return 1.5
	case domain.PriorityMedium:
		return 1.25
	case domain.PriorityLow:
		return 1.0
	default:
		return 1.0
	}
}

// GoldReward returns the quest's gold. An explicit override is returned as-is;
// otherwise floor(5 * type * difficulty*0.5 * priority), never below 1.
func GoldReward(q domain.Quest) int {
	if v, ok := q.GoldReward.Value(); ok {
		return v
	}
	gold := BaseGold * typeMultiplier(q.Type) * (float64(q.Difficulty) * 0.5) * priorityMultiplier(q.Priority)
	g := int(math.Floor(gold))
	if g < 1 {
		return 1
	}
	return g
}

// QuestXP runs the stored XP reward through the modifier pipeline and rounds it.
func QuestXP(s *domain.State, q domain.Quest, skills []SkillDef) int {
	amount := ApplyModifiers(float64(q.XPReward), RewardContext{Quest: &q}, s, skills)
	return roundReward(amount)
}

func roundReward(v float64) int {
	r := int(math.Round(v))
	if r < 0 {
		return 0
	}
	return r
}
