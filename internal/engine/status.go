package engine

import (
	"fmt"
	"strings"

	"lifequest/internal/domain"
)

// PlayerStatus is the read-only summary returned by get_player_status.
type PlayerStatus struct {
	Name          string
	Level         int
	XP            int
	XPToNextLevel int
	XPPercent     float64
	Gold          int
	SkillPoints   int
	Health        int
	MaxHealth     int
	HealthPercent float64
	Energy        int
	MaxEnergy     int
	EnergyPercent float64
	CurrentStreak int
	LongestStreak int
	StreakGoal    int

	ActiveQuests     int
	CompletedQuests  int
	ActiveChallenges int
	Skills           int
	Achievements     int
}

func BuildStatus(s *domain.State) PlayerStatus {
	p := s.Player
	st := PlayerStatus{
		Name:          p.Name,
		Level:         p.Level,
		XP:            p.XP,
		XPToNextLevel: p.XPToNextLevel,
		XPPercent:     XPProgressPercentage(p),
		Gold:          p.Gold,
		SkillPoints:   p.SkillPoints,
		Health:        p.Health,
		MaxHealth:     p.MaxHealth,
		HealthPercent: HealthPercentage(p),
		Energy:        p.Energy,
		MaxEnergy:     p.MaxEnergy,
		EnergyPercent: EnergyPercentage(p),
		CurrentStreak: p.CurrentStreak,
		LongestStreak: p.LongestStreak,
		StreakGoal:    p.StreakGoal,
		Skills:        len(s.UnlockedSkills),
		Achievements:  len(s.UnlockedAchievements),
	}
	for _, q := range s.Quests {
		if q.Status == domain.QuestCompleted {
			st.CompletedQuests++
		} else {
			st.ActiveQuests++
		}
	}
	for _, c := range s.Challenges {
		if c.IsActive {
			st.ActiveChallenges++
		}
	}
	return st
}

// StatusText renders the status as the confirmation text handed back to a
// conversational caller.
func StatusText(st PlayerStatus) string {
	var b strings.Builder
	name := st.Name
	if name == "" {
		name = "Adventurer"
	}
	fmt.Fprintf(&b, "%s is level %d (%d/%d XP, %.0f%%).", name, st.Level, st.XP, st.XPToNextLevel, st.XPPercent)
	fmt.Fprintf(&b, " Gold %d, skill points %d.", st.Gold, st.SkillPoints)
	fmt.Fprintf(&b, " Health %d/%d, energy %d/%d.", st.Health, st.MaxHealth, st.Energy, st.MaxEnergy)
	fmt.Fprintf(&b, " Streak %d days (best %d, goal %d).", st.CurrentStreak, st.LongestStreak, st.StreakGoal)
	fmt.Fprintf(&b, " %d active quests, %d completed.", st.ActiveQuests, st.CompletedQuests)
	return b.String()
}
