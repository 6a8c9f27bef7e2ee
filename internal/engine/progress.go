package engine

import (
	"fmt"
	"time"

	"lifequest/internal/domain"
)

const maxActivityMinutes = 24 * 60

func (e *Engine) logHealth(s *domain.State, a LogHealthActivity, now time.Time, out *Outcome) error {
	eff, ok := HealthEffectFor(a.Type)
	if !ok {
		return ValidationError{Field: "type", Reason: "unknown health activity " + string(a.Type)}
	}
	if a.Minutes < 0 || a.Minutes > maxActivityMinutes {
		return ValidationError{Field: "minutes", Reason: "must be between 0 and 1440"}
	}

	entry := domain.HealthLogEntry{ID: e.newID(), Type: a.Type, At: now, Minutes: a.Minutes}
	xp := roundReward(ApplyModifiers(float64(eff.XP), RewardContext{Health: &entry}, s, e.catalog.Skills))
	entry.XPAwarded = xp
	entry.HealthDelta, entry.EnergyDelta = applyHealth(&s.Player, eff)
	s.HealthLog = append(s.HealthLog, entry)

	out.EntityID = entry.ID
	out.grant(&s.Player, Grant{Source: "health", SourceID: entry.ID, XP: xp, Gold: eff.Gold, Note: string(a.Type)})
	out.Message = fmt.Sprintf("Logged %s: health %+d, energy %+d.", a.Type, entry.HealthDelta, entry.EnergyDelta)
	return nil
}

func (e *Engine) unlockSkill(s *domain.State, a UnlockSkill, out *Outcome) error {
	def := findSkill(e.catalog.Skills, a.ID)
	if def == nil {
		return NotFoundError{Kind: "skill", ID: a.ID}
	}
	out.EntityID = def.ID
	if s.HasSkill(def.ID) {
		out.conflict(ConflictSkillUnlocked, "Skill already unlocked: "+def.Name+".")
		return nil
	}
	if s.Player.SkillPoints < def.Cost {
		return InsufficientPointsError{Skill: def.ID, Need: def.Cost, Have: s.Player.SkillPoints}
	}
	s.Player.SkillPoints -= def.Cost
	s.UnlockedSkills = append(s.UnlockedSkills, def.ID)
	out.Message = "Skill unlocked: " + def.Name + "."
	return nil
}

func (e *Engine) incrementAction(s *domain.State, a IncrementAction, now time.Time, out *Outcome) error {
	i := s.ActionIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "action", ID: a.ID}
	}
	act := s.Actions[i]
	out.EntityID = act.ID
	if !ShouldReset(act, now) && IsCompleted(act) {
		out.conflict(ConflictActionAtTarget, "Already at target for this period: "+act.Title+".")
		return nil
	}

	next, _ := Increment(act, now)
	next.TotalCompletions++
	s.Actions[i] = next

	xp := roundReward(ApplyModifiers(float64(next.XPPerCompletion), RewardContext{Action: &next}, s, e.catalog.Skills))
	out.grant(&s.Player, Grant{Source: "action", SourceID: next.ID, XP: xp, Gold: next.GoldPerCompletion, Note: next.Title})
	out.Message = fmt.Sprintf("%s: %d/%d.", next.Title, next.CurrentCount, next.TargetCount)
	return nil
}

func (e *Engine) resetAction(s *domain.State, a ResetAction, now time.Time, out *Outcome) error {
	i := s.ActionIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "action", ID: a.ID}
	}
	s.Actions[i] = Reset(s.Actions[i], now)
	out.EntityID = a.ID
	out.Message = "Counter reset: " + s.Actions[i].Title + "."
	return nil
}

func (e *Engine) startChallenge(s *domain.State, a StartChallenge, now time.Time, out *Outcome) error {
	i := s.ChallengeIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "challenge", ID: a.ID}
	}
	out.EntityID = a.ID
	c, changed := ActivateChallenge(s.Challenges[i], now)
	if !changed {
		out.conflict(ConflictChallengeActive, "Challenge already active: "+c.Title+".")
		return nil
	}
	s.Challenges[i] = c
	out.Message = "Challenge started: " + c.Title + "."
	return nil
}

func (e *Engine) stopChallenge(s *domain.State, a StopChallenge, out *Outcome) error {
	i := s.ChallengeIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "challenge", ID: a.ID}
	}
	out.EntityID = a.ID
	c, changed := DeactivateChallenge(s.Challenges[i])
	if !changed {
		out.conflict(ConflictChallengeInactive, "Challenge is not active: "+c.Title+".")
		return nil
	}
	s.Challenges[i] = c
	out.Message = "Challenge stopped: " + c.Title + "."
	return nil
}

func (e *Engine) checkIn(s *domain.State, a CheckIn, now time.Time, out *Outcome) error {
	i := s.ChallengeIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "challenge", ID: a.ID}
	}
	out.EntityID = a.ID
	c, res := RecordCheckIn(s.Challenges[i], a.Success, a.Notes, now)
	if !res.Accepted {
		msg := "Already checked in today: " + c.Title + "."
		if res.Conflict == ConflictChallengeInactive {
			msg = "Challenge is not active: " + c.Title + "."
		}
		out.conflict(res.Conflict, msg)
		return nil
	}
	s.Challenges[i] = c

	// Milestone rewards are fixed amounts and bypass the modifier pipeline.
	for _, m := range res.Earned {
		out.grant(&s.Player, Grant{Source: "milestone", SourceID: c.ID, XP: m.XPReward, Gold: m.GoldReward, Note: m.Title})
	}
	out.Milestones = res.Earned

	if a.Success {
		out.Message = fmt.Sprintf("%s: day %d.", c.Title, c.CurrentStreak)
	} else {
		out.Message = fmt.Sprintf("%s: streak reset (best %d).", c.Title, c.LongestStreak)
	}
	return nil
}
