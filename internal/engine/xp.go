package engine

import (
	"math"

	"lifequest/internal/domain"
)

const (
	// XPCurveCoef and XPCurveExponent define XP_to_next = 100 * (Level^1.5).
	XPCurveCoef     = 100.0
	XPCurveExponent = 1.5

	// SkillPointsPerLevel is granted for every level gained.
	SkillPointsPerLevel = 1

	DefaultMaxHealth  = 100
	DefaultMaxEnergy  = 100
	DefaultStreakGoal = 7
)

// XPToNextLevel returns the XP needed to leave the given level.
// The curve is monotonically non-decreasing; levels below 1 are treated as 1.
func XPToNextLevel(level int) int {
	if level < 1 {
		level = 1
	}
	req := XPCurveCoef * math.Pow(float64(level), XPCurveExponent)
	// Use ceil to avoid making thresholds easier due to floating point rounding.
	return int(math.Ceil(req))
}

// NormalizePlayer consumes surplus XP into level-ups until 0 <= XP < XPToNextLevel
// and returns the number of levels gained.
func NormalizePlayer(p *domain.Player) int {
	if p.Level < 1 {
		p.Level = 1
	}
	if p.XP < 0 {
		p.XP = 0
	}
	if p.Gold < 0 {
		p.Gold = 0
	}
	p.XPToNextLevel = XPToNextLevel(p.Level)

	gained := 0
	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.SkillPoints += SkillPointsPerLevel
		p.XPToNextLevel = XPToNextLevel(p.Level)
		gained++
	}
	return gained
}

func NewPlayer(name string, streakGoal int) domain.Player {
	if streakGoal <= 0 {
		streakGoal = DefaultStreakGoal
	}
	return domain.Player{
		Name:          name,
		Level:         1,
		XPToNextLevel: XPToNextLevel(1),
		StreakGoal:    streakGoal,
		Health:        DefaultMaxHealth,
		MaxHealth:     DefaultMaxHealth,
		Energy:        DefaultMaxEnergy,
		MaxEnergy:     DefaultMaxEnergy,
	}
}

func NewState(name string, streakGoal int) domain.State {
	return domain.State{Player: NewPlayer(name, streakGoal)}
}

// XPProgressPercentage is a presentation derivation: share of the current level done.
func XPProgressPercentage(p domain.Player) float64 {
	return percentage(p.XP, p.XPToNextLevel)
}

func HealthPercentage(p domain.Player) float64 {
	return percentage(p.Health, p.MaxHealth)
}

func EnergyPercentage(p domain.Player) float64 {
	return percentage(p.Energy, p.MaxEnergy)
}

func percentage(v, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(v) / float64(total) * 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
