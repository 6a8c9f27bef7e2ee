package domain

import (
	"fmt"
	"strings"
)

type QuestType string

const (
	QuestMain   QuestType = "main"
	QuestSide   QuestType = "side"
	QuestDaily  QuestType = "daily"
	QuestWeekly QuestType = "weekly"
)

func (t QuestType) IsValid() bool {
	switch t {
	case QuestMain, QuestSide, QuestDaily, QuestWeekly:
		return true
	default:
		return false
	}
}

// DefaultQuestType is used when user input is missing.
const DefaultQuestType QuestType = QuestSide

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	default:
		return false
	}
}

const DefaultPriority Priority = PriorityMedium

type QuestStatus string

const (
	QuestActive    QuestStatus = "active"
	QuestCompleted QuestStatus = "completed"
)

type Difficulty int

const (
	DifficultyTrivial Difficulty = 1
	DifficultyEasy    Difficulty = 2
	DifficultyMedium  Difficulty = 3
	DifficultyHard    Difficulty = 4
	DifficultyEpic    Difficulty = 5
)

func (d Difficulty) IsValid() bool {
	return d >= DifficultyTrivial && d <= DifficultyEpic
}

type Period string

const (
	PeriodDaily  Period = "daily"
	PeriodWeekly Period = "weekly"
)

func (p Period) IsValid() bool {
	return p == PeriodDaily || p == PeriodWeekly
}

type ChallengeDifficulty string

const (
	ChallengeEasy    ChallengeDifficulty = "easy"
	ChallengeMedium  ChallengeDifficulty = "medium"
	ChallengeHard    ChallengeDifficulty = "hard"
	ChallengeExtreme ChallengeDifficulty = "extreme"
)

func (d ChallengeDifficulty) IsValid() bool {
	switch d {
	case ChallengeEasy, ChallengeMedium, ChallengeHard, ChallengeExtreme:
		return true
	default:
		return false
	}
}

type JournalKind string

const (
	JournalGeneral   JournalKind = "general"
	JournalMood      JournalKind = "mood"
	JournalSavings   JournalKind = "savings"
	JournalGratitude JournalKind = "gratitude"
)

func (k JournalKind) IsValid() bool {
	switch k {
	case JournalGeneral, JournalMood, JournalSavings, JournalGratitude:
		return true
	default:
		return false
	}
}

type HealthActivityType string

const (
	HealthExercise   HealthActivityType = "exercise"
	HealthSleep      HealthActivityType = "sleep"
	HealthMeditation HealthActivityType = "meditation"
	HealthHydration  HealthActivityType = "hydration"
	HealthNutrition  HealthActivityType = "nutrition"
)

func (h HealthActivityType) IsValid() bool {
	switch h {
	case HealthExercise, HealthSleep, HealthMeditation, HealthHydration, HealthNutrition:
		return true
	default:
		return false
	}
}

// ParseQuestType accepts user input; an empty string yields DefaultQuestType.
func ParseQuestType(input string) (QuestType, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return DefaultQuestType, nil
	}
	t := QuestType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid quest type: %q", input)
	}
	return t, nil
}

func ParsePriority(input string) (Priority, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return DefaultPriority, nil
	}
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %q", input)
	}
	return p, nil
}

func ParsePeriod(input string) (Period, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	p := Period(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid period: %q", input)
	}
	return p, nil
}

func ParseHealthActivity(input string) (HealthActivityType, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	h := HealthActivityType(s)
	if !h.IsValid() {
		return "", fmt.Errorf("invalid health activity: %q", input)
	}
	return h, nil
}
