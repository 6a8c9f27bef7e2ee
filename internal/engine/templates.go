package engine

import (
	"strings"

	"lifequest/internal/domain"
)

// TemplateDef is a pre-authored quest. Its XP is fixed here, at authoring time.
type TemplateDef struct {
	Code           string
	Title          string
	Type           domain.QuestType
	Category       string
	Priority       domain.Priority
	Difficulty     domain.Difficulty
	XPReward       int
	EstimatedTime  int
	EnergyRequired int
	AnxietyLevel   int
	Tags           []string
	MinLevel       int
}

func DefaultTemplates() []TemplateDef {
	return []TemplateDef{
		{
			Code:          "tidy_desk",
			Title:         "Tidy your desk",
			Type:          domain.QuestDaily,
			Category:      "home",
			Priority:      domain.PriorityLow,
			Difficulty:    domain.DifficultyTrivial,
			XPReward:      10,
			EstimatedTime: 10,
			Tags:          []string{"quick-win"},
		},
		{
			Code:           "inbox_zero",
			Title:          "Reach inbox zero",
			Type:           domain.QuestSide,
			Category:       "work",
			Priority:       domain.PriorityMedium,
			Difficulty:     domain.DifficultyEasy,
			XPReward:       25,
			EstimatedTime:  30,
			EnergyRequired: 2,
			AnxietyLevel:   3,
			MinLevel:       2,
		},
		{
			Code:           "weekly_review",
			Title:          "Weekly review",
			Type:           domain.QuestWeekly,
			Category:       "planning",
			Priority:       domain.PriorityHigh,
			Difficulty:     domain.DifficultyMedium,
			XPReward:       50,
			EstimatedTime:  45,
			EnergyRequired: 3,
			MinLevel:       LevelTemplatesIntermediate,
		},
		{
			Code:           "dreaded_call",
			Title:          "Make the call you keep postponing",
			Type:           domain.QuestSide,
			Category:       "admin",
			Priority:       domain.PriorityUrgent,
			Difficulty:     domain.DifficultyHard,
			XPReward:       60,
			EstimatedTime:  15,
			EnergyRequired: 4,
			AnxietyLevel:   5,
			Tags:           []string{"courage"},
			MinLevel:       LevelTemplatesAdvanced,
		},
		{
			Code:           "deep_project",
			Title:          "Two hours on your main project",
			Type:           domain.QuestMain,
			Category:       "work",
			Priority:       domain.PriorityHigh,
			Difficulty:     domain.DifficultyEpic,
			XPReward:       120,
			EstimatedTime:  120,
			EnergyRequired: 6,
			AnxietyLevel:   2,
			MinLevel:       LevelTemplatesEpic,
		},
	}
}

func normalizeTemplateCode(code string) (string, error) {
	c := strings.TrimSpace(strings.ToLower(code))
	if c == "" {
		return "", ValidationError{Field: "template", Reason: "code is required"}
	}
	return c, nil
}

func findTemplate(defs []TemplateDef, code string) *TemplateDef {
	for i := range defs {
		if defs[i].Code == code {
			return &defs[i]
		}
	}
	return nil
}

type TemplateView struct {
	TemplateDef
	Unlocked bool
}

func Templates(level int, defs []TemplateDef) []TemplateView {
	out := make([]TemplateView, 0, len(defs))
	for _, def := range defs {
		out = append(out, TemplateView{TemplateDef: def, Unlocked: level >= def.MinLevel})
	}
	return out
}
