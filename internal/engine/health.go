package engine

import "lifequest/internal/domain"

// HealthEffect is the fixed effect of one logged activity.
type HealthEffect struct {
	Health int
	Energy int
	XP     int
	Gold   int
}

var healthEffects = map[domain.HealthActivityType]HealthEffect{
	domain.HealthExercise:   {Health: 10, Energy: -5, XP: 15, Gold: 2},
	domain.HealthSleep:      {Health: 5, Energy: 30, XP: 10, Gold: 1},
	domain.HealthMeditation: {Health: 0, Energy: 10, XP: 10, Gold: 1},
	domain.HealthHydration:  {Health: 5, Energy: 0, XP: 5, Gold: 0},
	domain.HealthNutrition:  {Health: 10, Energy: 10, XP: 10, Gold: 1},
}

func HealthEffectFor(t domain.HealthActivityType) (HealthEffect, bool) {
	e, ok := healthEffects[t]
	return e, ok
}

// applyHealth moves health and energy by the effect, clamped to [0, max], and
// returns the deltas actually applied.
func applyHealth(p *domain.Player, e HealthEffect) (healthDelta, energyDelta int) {
	h := clamp(p.Health+e.Health, 0, p.MaxHealth)
	en := clamp(p.Energy+e.Energy, 0, p.MaxEnergy)
	healthDelta, energyDelta = h-p.Health, en-p.Energy
	p.Health, p.Energy = h, en
	return healthDelta, energyDelta
}
