package engine

import "lifequest/internal/domain"

// RewardContext describes what triggered a reward. At most one field is set.
type RewardContext struct {
	Quest  *domain.Quest
	Health *domain.HealthLogEntry
	Action *domain.RepeatableAction
}

// EffectFunc adjusts a reward amount. Effects must be total: when their
// condition does not hold they return the amount unchanged.
type EffectFunc func(s *domain.State, amount float64, rc RewardContext) float64

type SkillDef struct {
	ID          string
	Name        string
	Description string
	Cost        int
	Effect      EffectFunc
}

const (
	SkillAdaptiveFocus  = "adaptive_focus"
	SkillDeepWork       = "deep_work"
	SkillAnxietyWarrior = "anxiety_warrior"
	SkillVitality       = "vitality"
	SkillMomentum       = "momentum"
)

// DefaultSkills returns the shipped skill tree in declaration order. The order
// is the fold order of the modifier pipeline.
func DefaultSkills() []SkillDef {
	return []SkillDef{
		{
			ID:          SkillAdaptiveFocus,
			Name:        "Adaptive Focus",
			Description: "+50% XP on quests estimated at 15 minutes or less",
			Cost:        1,
			Effect: func(_ *domain.State, amount float64, rc RewardContext) float64 {
				if rc.Quest != nil && rc.Quest.EstimatedTime <= 15 {
					return amount * 1.5
				}
				return amount
			},
		},
		{
			ID:          SkillDeepWork,
			Name:        "Deep Work",
			Description: "+25% XP on main quests of an hour or more",
			Cost:        2,
			Effect: func(_ *domain.State, amount float64, rc RewardContext) float64 {
				if rc.Quest != nil && rc.Quest.Type == domain.QuestMain && rc.Quest.EstimatedTime >= 60 {
					return amount * 1.25
				}
				return amount
			},
		},
		{
			ID:          SkillAnxietyWarrior,
			Name:        "Anxiety Warrior",
			Description: "+50% XP on quests with anxiety level 4 or higher",
			Cost:        2,
			Effect: func(_ *domain.State, amount float64, rc RewardContext) float64 {
				if rc.Quest != nil && rc.Quest.AnxietyLevel >= 4 {
					return amount * 1.5
				}
				return amount
			},
		},
		{
			ID:          SkillVitality,
			Name:        "Vitality",
			Description: "+25% XP from health activities",
			Cost:        1,
			Effect: func(_ *domain.State, amount float64, rc RewardContext) float64 {
				if rc.Health != nil {
					return amount * 1.25
				}
				return amount
			},
		},
		{
			ID:          SkillMomentum,
			Name:        "Momentum",
			Description: "+25% XP while the daily streak is at or above the streak goal",
			Cost:        3,
			Effect: func(s *domain.State, amount float64, _ RewardContext) float64 {
				if s != nil && s.Player.StreakGoal > 0 && s.Player.CurrentStreak >= s.Player.StreakGoal {
					return amount * 1.25
				}
				return amount
			},
		},
	}
}

// ApplyModifiers left-folds the effects of every unlocked skill over base, in
// the order skills are declared (not the order they were unlocked).
func ApplyModifiers(base float64, rc RewardContext, s *domain.State, skills []SkillDef) float64 {
	amount := base
	for _, sk := range skills {
		if sk.Effect == nil || s == nil || !s.HasSkill(sk.ID) {
			continue
		}
		amount = sk.Effect(s, amount, rc)
	}
	return amount
}

func findSkill(skills []SkillDef, id string) *SkillDef {
	for i := range skills {
		if skills[i].ID == id {
			return &skills[i]
		}
	}
	return nil
}
