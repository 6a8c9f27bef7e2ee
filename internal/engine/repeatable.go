package engine

import (
	"time"

	"lifequest/internal/domain"
)

// WeeklyResetDays is the number of elapsed calendar days after which a weekly
// counter starts a new period.
const WeeklyResetDays = 7

// ShouldReset reports whether now lies outside the action's current period.
// Daily: the calendar date differs from ResetDate. Weekly: at least
// WeeklyResetDays calendar days have elapsed since ResetDate.
func ShouldReset(a domain.RepeatableAction, now time.Time) bool {
	loc := now.Location()
	switch {
	case a.IsDaily():
		return !sameDay(a.ResetDate, now, loc)
	case a.IsWeekly():
		return daysBetween(a.ResetDate, now, loc) >= WeeklyResetDays
	default:
		return false
	}
}

// Reset zeroes the counter and anchors a new period at now.
func Reset(a domain.RepeatableAction, now time.Time) domain.RepeatableAction {
	a.CurrentCount = 0
	a.ResetDate = now
	return a
}

// Increment resets the counter first when the period expired, then adds one,
// saturating at TargetCount. The bool reports whether a reset happened.
func Increment(a domain.RepeatableAction, now time.Time) (domain.RepeatableAction, bool) {
	reset := ShouldReset(a, now)
	if reset {
		a = Reset(a, now)
	}
	if a.CurrentCount < a.TargetCount {
		a.CurrentCount++
	}
	t := now
	a.LastCompletedDate = &t
	return a, reset
}

// IsCompleted reports whether the target for the current period is reached.
func IsCompleted(a domain.RepeatableAction) bool {
	return a.CurrentCount >= a.TargetCount
}

// EffectiveCount is the count as seen at now: zero when the period expired.
func EffectiveCount(a domain.RepeatableAction, now time.Time) int {
	if ShouldReset(a, now) {
		return 0
	}
	return a.CurrentCount
}

// ActionProgressPercentage is a presentation derivation over the current period.
func ActionProgressPercentage(a domain.RepeatableAction, now time.Time) float64 {
	return percentage(EffectiveCount(a, now), a.TargetCount)
}
