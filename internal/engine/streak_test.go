package engine

import (
	"math"
	"testing"
	"time"

	"lifequest/internal/domain"
)

func activeChallenge(rewards ...domain.MilestoneReward) domain.StreakChallenge {
	c, _ := ActivateChallenge(domain.StreakChallenge{ID: "c", Title: "No sugar", Rewards: rewards}, day0)
	return c
}

func TestMilestoneEarnedExactlyOnce(t *testing.T) {
	c := activeChallenge(domain.MilestoneReward{DaysMilestone: 3, XPReward: 30, GoldReward: 6, Title: "Three"})

	for i, want := range []int{0, 0, 1, 0} {
		var res CheckInResult
		c, res = RecordCheckIn(c, true, "", dayN(i))
		if !res.Accepted {
			t.Fatalf("day %d: check-in rejected (%s)", i, res.Conflict)
		}
		if len(res.Earned) != want {
			t.Fatalf("day %d: earned=%d, want %d", i, len(res.Earned), want)
		}
	}
	if c.CurrentStreak != 4 || c.LongestStreak != 4 {
		t.Fatalf("streak=%d longest=%d, want 4/4", c.CurrentStreak, c.LongestStreak)
	}
}

func TestCheckInSameDateCollapses(t *testing.T) {
	c := activeChallenge()

	c, res := RecordCheckIn(c, true, "", day0)
	if !res.Accepted {
		t.Fatalf("first check-in rejected")
	}
	c2, res := RecordCheckIn(c, true, "again", day0.Add(5*time.Hour))
	if res.Accepted || res.Conflict != ConflictAlreadyCheckedIn {
		t.Fatalf("second check-in: %+v", res)
	}
	if len(c2.CheckIns) != 1 || c2.CurrentStreak != 1 {
		t.Fatalf("check-ins=%d streak=%d, want 1/1", len(c2.CheckIns), c2.CurrentStreak)
	}
}

func TestFailedCheckInResetsCurrentOnly(t *testing.T) {
	c := activeChallenge()
	for i := 0; i < 3; i++ {
		c, _ = RecordCheckIn(c, true, "", dayN(i))
	}

	c, res := RecordCheckIn(c, false, "slipped", dayN(3))
	if !res.Accepted || len(res.Earned) != 0 {
		t.Fatalf("failed check-in: %+v", res)
	}
	if c.CurrentStreak != 0 || c.LongestStreak != 3 {
		t.Fatalf("streak=%d longest=%d, want 0/3", c.CurrentStreak, c.LongestStreak)
	}
	if last := c.CheckIns[len(c.CheckIns)-1]; last.Success || last.Notes != "slipped" {
		t.Fatalf("failure not recorded: %+v", last)
	}
}

func TestCheckInInactive(t *testing.T) {
	c := domain.StreakChallenge{ID: "c"}
	_, res := RecordCheckIn(c, true, "", day0)
	if res.Accepted || res.Conflict != ConflictChallengeInactive {
		t.Fatalf("res=%+v", res)
	}
}

func TestActivateClearsHistoryKeepsLongest(t *testing.T) {
	c := activeChallenge()
	c, _ = RecordCheckIn(c, true, "", day0)
	c, _ = RecordCheckIn(c, true, "", dayN(1))
	c, _ = DeactivateChallenge(c)

	c, ok := ActivateChallenge(c, dayN(5))
	if !ok || !c.IsActive || c.CurrentStreak != 0 || len(c.CheckIns) != 0 || c.LongestStreak != 2 {
		t.Fatalf("after restart: %+v", c)
	}
	if c.StartDate == nil || !c.StartDate.Equal(dayN(5)) {
		t.Fatalf("StartDate=%v", c.StartDate)
	}
	if _, ok := ActivateChallenge(c, dayN(6)); ok {
		t.Fatalf("activating an active challenge reported a change")
	}
}

func TestChallengeStats(t *testing.T) {
	c := activeChallenge()
	c, _ = RecordCheckIn(c, true, "", dayN(0))
	c, _ = RecordCheckIn(c, false, "", dayN(1))
	c, _ = RecordCheckIn(c, true, "", dayN(9))

	st := ChallengeStatsAt(c, dayN(9))
	if st.TotalCheckIns != 3 || st.SuccessfulCheckIns != 2 || st.FailedCheckIns != 1 {
		t.Fatalf("stats=%+v", st)
	}
	if math.Abs(st.SuccessRate-200.0/3) > 1e-9 {
		t.Fatalf("SuccessRate=%v", st.SuccessRate)
	}
	if st.WeeklyCheckIns != 1 || st.WeeklyRate != 100 {
		t.Fatalf("weekly=%d rate=%v, want 1/100", st.WeeklyCheckIns, st.WeeklyRate)
	}
	if st.DaysActive != 10 {
		t.Fatalf("DaysActive=%d, want 10", st.DaysActive)
	}

	empty := ChallengeStatsAt(domain.StreakChallenge{}, day0)
	if empty.SuccessRate != 0 || empty.WeeklyRate != 0 {
		t.Fatalf("empty stats=%+v", empty)
	}
}

func TestMilestoneLadder(t *testing.T) {
	ms := DefaultMilestones(domain.ChallengeHard)
	if len(ms) != 4 || ms[0].DaysMilestone != 3 || ms[0].XPReward != 90 || ms[0].GoldReward != 18 {
		t.Fatalf("ladder=%+v", ms)
	}

	c := domain.StreakChallenge{CurrentStreak: 5, Rewards: ms}
	next, ok := NextMilestone(c)
	if !ok || next.DaysMilestone != 7 {
		t.Fatalf("NextMilestone=%+v ok=%v, want 7", next, ok)
	}
	c.CurrentStreak = 30
	if _, ok := NextMilestone(c); ok {
		t.Fatalf("NextMilestone past the ladder reported ok")
	}
}
