package engine

import (
	"sort"
	"time"

	"lifequest/internal/domain"
)

type CheckInResult struct {
	Accepted bool
	Conflict ConflictCode
	// Earned holds milestones reached exactly by this check-in.
	Earned []domain.MilestoneReward
}

// ActivateChallenge moves an inactive challenge to active, clearing the current
// streak and the check-in history. longestStreak is kept.
func ActivateChallenge(c domain.StreakChallenge, now time.Time) (domain.StreakChallenge, bool) {
	if c.IsActive {
		return c, false
	}
	c.IsActive = true
	c.CurrentStreak = 0
	c.CheckIns = nil
	t := now
	c.StartDate = &t
	return c, true
}

// DeactivateChallenge deactivates a challenge and preserves its history.
func DeactivateChallenge(c domain.StreakChallenge) (domain.StreakChallenge, bool) {
	if !c.IsActive {
		return c, false
	}
	c.IsActive = false
	return c, true
}

// HasCheckInOn reports whether a check-in exists for day's calendar date.
func HasCheckInOn(c domain.StreakChallenge, day time.Time) bool {
	loc := day.Location()
	for _, ci := range c.CheckIns {
		if sameDay(ci.Date, day, loc) {
			return true
		}
	}
	return false
}

// RecordCheckIn records today's outcome. At most one check-in per calendar date is
// accepted; a failure resets the current streak, a success extends it.
func RecordCheckIn(c domain.StreakChallenge, success bool, notes string, now time.Time) (domain.StreakChallenge, CheckInResult) {
	if !c.IsActive {
		return c, CheckInResult{Conflict: ConflictChallengeInactive}
	}
	if HasCheckInOn(c, now) {
		return c, CheckInResult{Conflict: ConflictAlreadyCheckedIn}
	}

	c = c.Clone()
	c.CheckIns = append(c.CheckIns, domain.CheckIn{Date: now, Success: success, Notes: notes})

	res := CheckInResult{Accepted: true}
	if !success {
		c.CurrentStreak = 0
		return c, res
	}

	c.CurrentStreak++
	if c.CurrentStreak > c.LongestStreak {
		c.LongestStreak = c.CurrentStreak
	}
	res.Earned = EarnedMilestones(c)
	return c, res
}

// EarnedMilestones returns rewards whose milestone equals the current streak,
// ascending by milestone. Equality (not >=) keeps a milestone from being
// granted again on the days after it was crossed.
func EarnedMilestones(c domain.StreakChallenge) []domain.MilestoneReward {
	rewards := append([]domain.MilestoneReward(nil), c.Rewards...)
	sort.SliceStable(rewards, func(i, j int) bool { return rewards[i].DaysMilestone < rewards[j].DaysMilestone })

	var out []domain.MilestoneReward
	for _, r := range rewards {
		if r.DaysMilestone == c.CurrentStreak {
			out = append(out, r)
		}
	}
	return out
}

// NextMilestone returns the smallest milestone above the current streak.
func NextMilestone(c domain.StreakChallenge) (domain.MilestoneReward, bool) {
	var best domain.MilestoneReward
	found := false
	for _, r := range c.Rewards {
		if r.DaysMilestone <= c.CurrentStreak {
			continue
		}
		if !found || r.DaysMilestone < best.DaysMilestone {
			best = r
			found = true
		}
	}
	return best, found
}

func challengeMultiplier(d domain.ChallengeDifficulty) int {
	switch d {
	case domain.ChallengeEasy:
		return 1
	case domain.ChallengeHard:
		return 3
	case domain.ChallengeExtreme:
		return 4
	default:
		return 2
	}
}

// DefaultMilestones seeds the 3/7/14/30-day ladder, scaled by difficulty.
func DefaultMilestones(d domain.ChallengeDifficulty) []domain.MilestoneReward {
	mult := challengeMultiplier(d)
	ladder := []struct {
		days  int
		title string
	}{
		{3, "Three-Day Spark"},
		{7, "One Week Strong"},
		{14, "Fortnight Fortitude"},
		{30, "Thirty-Day Legend"},
	}
	out := make([]domain.MilestoneReward, 0, len(ladder))
	for _, l := range ladder {
		out = append(out, domain.MilestoneReward{
			DaysMilestone: l.days,
			XPReward:      l.days * 10 * mult,
			GoldReward:    l.days * 2 * mult,
			Title:         l.title,
		})
	}
	return out
}

type ChallengeStats struct {
	TotalCheckIns      int
	SuccessfulCheckIns int
	FailedCheckIns     int
	SuccessRate        float64
	WeeklyCheckIns     int
	WeeklyRate         float64
	CurrentStreak      int
	LongestStreak      int
	DaysActive         int
}

// ChallengeStatsAt computes success rates over the full history and over the trailing
// seven calendar days ending at now.
func ChallengeStatsAt(c domain.StreakChallenge, now time.Time) ChallengeStats {
	loc := now.Location()
	st := ChallengeStats{
		TotalCheckIns: len(c.CheckIns),
		CurrentStreak: c.CurrentStreak,
		LongestStreak: c.LongestStreak,
	}

	weeklySuccess := 0
	for _, ci := range c.CheckIns {
		if ci.Success {
			st.SuccessfulCheckIns++
		} else {
			st.FailedCheckIns++
		}
		d := daysBetween(ci.Date, now, loc)
		if d >= 0 && d < 7 {
			st.WeeklyCheckIns++
			if ci.Success {
				weeklySuccess++
			}
		}
	}
	st.SuccessRate = percentage(st.SuccessfulCheckIns, st.TotalCheckIns)
	st.WeeklyRate = percentage(weeklySuccess, st.WeeklyCheckIns)

	if c.StartDate != nil {
		st.DaysActive = daysBetween(*c.StartDate, now, loc) + 1
		if st.DaysActive < 0 {
			st.DaysActive = 0
		}
	}
	return st
}
