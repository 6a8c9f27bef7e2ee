package engine

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"lifequest/internal/domain"
)

type CriterionKind string

const (
	CriterionLevel            CriterionKind = "level"
	CriterionQuestsCompleted  CriterionKind = "quests_completed"
	CriterionGold             CriterionKind = "gold"
	CriterionPlayerStreak     CriterionKind = "player_streak"
	CriterionChallengeStreak  CriterionKind = "challenge_streak"
	CriterionSkillsUnlocked   CriterionKind = "skills_unlocked"
	CriterionHealthLogged     CriterionKind = "health_logged"
	CriterionJournalEntries   CriterionKind = "journal_entries"
	CriterionActionsCompleted CriterionKind = "actions_completed"
)

func (k CriterionKind) IsValid() bool {
	switch k {
	case CriterionLevel, CriterionQuestsCompleted, CriterionGold, CriterionPlayerStreak,
		CriterionChallengeStreak, CriterionSkillsUnlocked, CriterionHealthLogged,
		CriterionJournalEntries, CriterionActionsCompleted:
		return true
	default:
		return false
	}
}

// Criterion is a threshold predicate over the state, selected by Kind.
type Criterion struct {
	Kind      CriterionKind `yaml:"kind"`
	Threshold int           `yaml:"threshold"`
}

// Met evaluates the criterion. It reads the state and never modifies it.
func (c Criterion) Met(s *domain.State) bool {
	return c.measure(s) >= c.Threshold
}

func (c Criterion) measure(s *domain.State) int {
	switch c.Kind {
	case CriterionLevel:
		return s.Player.Level
	case CriterionQuestsCompleted:
		return s.Player.QuestsCompleted
	case CriterionGold:
		return s.Player.Gold
	case CriterionPlayerStreak:
		return s.Player.LongestStreak
	case CriterionChallengeStreak:
		best := 0
		for _, ch := range s.Challenges {
			if ch.LongestStreak > best {
				best = ch.LongestStreak
			}
		}
		return best
	case CriterionSkillsUnlocked:
		return len(s.UnlockedSkills)
	case CriterionHealthLogged:
		return len(s.HealthLog)
	case CriterionJournalEntries:
		n := 0
		for _, j := range s.Journals {
			n += len(j.Entries)
		}
		return n
	case CriterionActionsCompleted:
		n := 0
		for _, a := range s.Actions {
			n += a.TotalCompletions
		}
		return n
	default:
		return -1
	}
}

// AchievementDef is a badge the player can earn.
type AchievementDef struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Icon        string    `yaml:"icon"`
	Criterion   Criterion `yaml:",inline"`
}

func achievement(id, name, desc, icon string, kind CriterionKind, threshold int) AchievementDef {
	return AchievementDef{ID: id, Name: name, Description: desc, Icon: icon, Criterion: Criterion{Kind: kind, Threshold: threshold}}
}

// DefaultAchievements returns the shipped catalog.
func DefaultAchievements() []AchievementDef {
	return []AchievementDef{
		// Level milestones
		achievement("getting_started", "Getting Started", "Reach level 3", "🌿", CriterionLevel, 3),
		achievement("seasoned", "Seasoned Adventurer", "Reach level 10", "⭐", CriterionLevel, 10),
		achievement("master", "Master", "Reach level 20", "💫", CriterionLevel, 20),

		// Quest completion milestones
		achievement("first_quest", "First Quest", "Complete 1 quest", "✓", CriterionQuestsCompleted, 1),
		achievement("productive", "Productive", "Complete 10 quests", "📋", CriterionQuestsCompleted, 10),
		achievement("powerhouse", "Powerhouse", "Complete 100 quests", "🏆", CriterionQuestsCompleted, 100),

		// Economy
		achievement("coin_purse", "Coin Purse", "Hold 100 gold", "💰", CriterionGold, 100),
		achievement("treasury", "Treasury", "Hold 1000 gold", "👑", CriterionGold, 1000),

		// Streaks
		achievement("on_a_roll", "On a Roll", "Keep a 3-day quest streak", "🔥", CriterionPlayerStreak, 3),
		achievement("unstoppable", "Unstoppable", "Keep a 30-day quest streak", "☄️", CriterionPlayerStreak, 30),
		achievement("habit_breaker", "Habit Breaker", "Reach a 7-day challenge streak", "⛓️", CriterionChallengeStreak, 7),

		// Everything else
		achievement("apprentice", "Apprentice", "Unlock a skill", "📖", CriterionSkillsUnlocked, 1),
		achievement("self_care", "Self Care", "Log 10 health activities", "💚", CriterionHealthLogged, 10),
		achievement("chronicler", "Chronicler", "Write 10 journal entries", "🖋️", CriterionJournalEntries, 10),
		achievement("creature_of_habit", "Creature of Habit", "Complete repeatable actions 25 times", "🔁", CriterionActionsCompleted, 25),
	}
}

// Evaluate returns the ids of achievements whose criteria hold on s and that
// are not yet unlocked. Order follows defs.
func Evaluate(s *domain.State, defs []AchievementDef) []string {
	var out []string
	for _, def := range defs {
		if s.HasAchievement(def.ID) {
			continue
		}
		if def.Criterion.Met(s) {
			out = append(out, def.ID)
		}
	}
	return out
}

// mergeUnlocks adds ids to the unlocked set (set union) and returns the ids
// that were actually added.
func mergeUnlocks(s *domain.State, ids []string, now time.Time) []string {
	var added []string
	for _, id := range ids {
		if s.HasAchievement(id) {
			continue
		}
		s.UnlockedAchievements = append(s.UnlockedAchievements, domain.AchievementUnlock{ID: id, UnlockedAt: now})
		added = append(added, id)
	}
	return added
}

// AchievementView pairs a definition with the player's unlock status.
type AchievementView struct {
	AchievementDef
	Earned     bool
	UnlockedAt *time.Time
}

func Achievements(s *domain.State, defs []AchievementDef) []AchievementView {
	unlocked := map[string]time.Time{}
	for _, u := range s.UnlockedAchievements {
		unlocked[u.ID] = u.UnlockedAt
	}
	out := make([]AchievementView, 0, len(defs))
	for _, def := range defs {
		v := AchievementView{AchievementDef: def}
		if at, ok := unlocked[def.ID]; ok {
			t := at
			v.Earned = true
			v.UnlockedAt = &t
		}
		out = append(out, v)
	}
	return out
}

type achievementFile struct {
	Achievements []AchievementDef `yaml:"achievements"`
}

// LoadAchievements reads a YAML achievement catalog.
func LoadAchievements(path string) ([]AchievementDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read achievements: %w", err)
	}
	return ParseAchievements(data)
}

func ParseAchievements(data []byte) ([]AchievementDef, error) {
	var f achievementFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	if len(f.Achievements) == 0 {
		return nil, errors.New("achievement catalog is empty")
	}

	seen := map[string]bool{}
	for i := range f.Achievements {
		def := &f.Achievements[i]
		def.ID = strings.TrimSpace(def.ID)
		if def.ID == "" {
			return nil, fmt.Errorf("achievement #%d: id is required", i+1)
		}
		if seen[def.ID] {
			return nil, fmt.Errorf("achievement %q: duplicate id", def.ID)
		}
		seen[def.ID] = true
		if !def.Criterion.Kind.IsValid() {
			return nil, fmt.Errorf("achievement %q: unknown kind %q", def.ID, def.Criterion.Kind)
		}
		if def.Name == "" {
			def.Name = def.ID
		}
	}
	return f.Achievements, nil
}
