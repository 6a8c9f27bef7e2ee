package engine

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"lifequest/internal/domain"
)

var day0 = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

func dayN(n int) time.Time { return day0.AddDate(0, 0, n) }

func newTestEngine() *Engine {
	n := 0
	return NewEngine(DefaultCatalog(), WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}))
}

func mustDispatch(t *testing.T, e *Engine, s domain.State, a Action, now time.Time) (domain.State, *Outcome) {
	t.Helper()
	next, out, err := e.Dispatch(s, a, now)
	if err != nil {
		t.Fatalf("Dispatch(%s): %v", a.ActionName(), err)
	}
	return next, out
}

func reportQuest() AddQuest {
	return AddQuest{
		Title:         "Write report",
		Type:          domain.QuestMain,
		Priority:      domain.PriorityHigh,
		Difficulty:    domain.DifficultyMedium,
		XPReward:      50,
		EstimatedTime: 60,
	}
}

func TestXPBoundaries(t *testing.T) {
	if got := XPToNextLevel(1); got != 100 {
		t.Fatalf("XPToNextLevel(1)=%d, want 100", got)
	}
	if got := XPToNextLevel(0); got != 100 {
		t.Fatalf("XPToNextLevel(0)=%d, want 100", got)
	}
	if got := XPToNextLevel(2); got != 283 {
		t.Fatalf("XPToNextLevel(2)=%d, want 283", got)
	}
	if got := XPToNextLevel(4); got != 800 {
		t.Fatalf("XPToNextLevel(4)=%d, want 800", got)
	}
	for l := 1; l < 60; l++ {
		if XPToNextLevel(l+1) < XPToNextLevel(l) {
			t.Fatalf("curve decreases at level %d", l)
		}
	}
}

func TestNormalizePlayerConsumesSurplus(t *testing.T) {
	p := NewPlayer("Ada", 0)
	p.XP = 100 + 283 + 5

	gained := NormalizePlayer(&p)
	if gained != 2 {
		t.Fatalf("gained=%d, want 2", gained)
	}
	if p.Level != 3 || p.XP != 5 || p.SkillPoints != 2 {
		t.Fatalf("player=%+v, want level 3, xp 5, 2 skill points", p)
	}
	if p.XPToNextLevel != XPToNextLevel(3) {
		t.Fatalf("XPToNextLevel=%d, want %d", p.XPToNextLevel, XPToNextLevel(3))
	}
	if p.StreakGoal != DefaultStreakGoal {
		t.Fatalf("StreakGoal=%d, want %d", p.StreakGoal, DefaultStreakGoal)
	}
}

func TestCompleteQuestGrantsOnce(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), reportQuest(), day0)
	id := out.EntityID

	s1, out := mustDispatch(t, e, s, CompleteQuest{ID: id}, day0)
	if out.XP != 50 || out.Gold != 56 {
		t.Fatalf("reward=(%d xp, %d gold), want (50, 56)", out.XP, out.Gold)
	}
	if s1.Player.XP != 50 || s1.Player.Gold != 56 || s1.Player.QuestsCompleted != 1 {
		t.Fatalf("player=%+v", s1.Player)
	}
	if q := s1.Quests[0]; q.Status != domain.QuestCompleted || q.CompletedAt == nil {
		t.Fatalf("quest not completed: %+v", q)
	}
	if !reflect.DeepEqual(out.NewAchievements, []string{"first_quest"}) {
		t.Fatalf("NewAchievements=%v, want [first_quest]", out.NewAchievements)
	}
	if len(out.Grants) != 1 || out.Grants[0].Source != "quest" {
		t.Fatalf("Grants=%+v", out.Grants)
	}

	s2, out := mustDispatch(t, e, s1, CompleteQuest{ID: id}, day0.Add(time.Hour))
	if !out.NoOp || out.Conflict != ConflictAlreadyCompleted {
		t.Fatalf("second completion: NoOp=%v Conflict=%q", out.NoOp, out.Conflict)
	}
	if !reflect.DeepEqual(s1, s2) {
		t.Fatalf("state changed on second completion")
	}
}

func TestDispatchDoesNotMutateInput(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), reportQuest(), day0)

	snapshot := s.Clone()
	if _, _, err := e.Dispatch(s, CompleteQuest{ID: out.EntityID}, day0); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !reflect.DeepEqual(s, snapshot) {
		t.Fatalf("input state was modified")
	}
}

func TestCompleteQuestSpendsEnergyAndTracksStreak(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)

	var ids []string
	for i := 0; i < 3; i++ {
		q := reportQuest()
		q.EnergyRequired = 4
		var out *Outcome
		s, out = mustDispatch(t, e, s, q, day0)
		ids = append(ids, out.EntityID)
	}

	wantStreak := []int{1, 2, 1}
	days := []time.Time{dayN(0), dayN(1), dayN(3)}
	for i, id := range ids {
		s, _ = mustDispatch(t, e, s, CompleteQuest{ID: id}, days[i])
		if s.Player.CurrentStreak != wantStreak[i] {
			t.Fatalf("after completion %d: CurrentStreak=%d, want %d", i, s.Player.CurrentStreak, wantStreak[i])
		}
	}
	if s.Player.LongestStreak != 2 {
		t.Fatalf("LongestStreak=%d, want 2", s.Player.LongestStreak)
	}
	if s.Player.Energy != DefaultMaxEnergy-12 {
		t.Fatalf("Energy=%d, want %d", s.Player.Energy, DefaultMaxEnergy-12)
	}
}

func TestCompleteQuestLevelsUp(t *testing.T) {
	e := newTestEngine()
	q := reportQuest()
	q.XPReward = 250
	s, out := mustDispatch(t, e, NewState("Ada", 7), q, day0)

	s, out = mustDispatch(t, e, s, CompleteQuest{ID: out.EntityID}, day0)
	if out.LevelsGained != 1 {
		t.Fatalf("LevelsGained=%d, want 1", out.LevelsGained)
	}
	if s.Player.Level != 2 || s.Player.XP != 150 || s.Player.SkillPoints != 1 {
		t.Fatalf("player=%+v, want level 2, xp 150, 1 skill point", s.Player)
	}
	if !strings.Contains(out.Message, "Level up") {
		t.Fatalf("Message=%q, want level-up notice", out.Message)
	}
}

func TestDispatchValidation(t *testing.T) {
	e := newTestEngine()
	base := NewState("Ada", 7)

	cases := []struct {
		name   string
		mutate func(*AddQuest)
	}{
		{"empty title", func(q *AddQuest) { q.Title = "   " }},
		{"zero xp", func(q *AddQuest) { q.XPReward = 0 }},
		{"explicit gold below one", func(q *AddQuest) { q.GoldReward = domain.ExplicitReward(0) }},
		{"zero estimated time", func(q *AddQuest) { q.EstimatedTime = 0 }},
		{"difficulty too high", func(q *AddQuest) { q.Difficulty = 6 }},
		{"difficulty zero", func(q *AddQuest) { q.Difficulty = 0 }},
		{"bad type", func(q *AddQuest) { q.Type = "epic" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := reportQuest()
			tc.mutate(&q)
			next, out, err := e.Dispatch(base, q, day0)
			if !IsValidation(err) {
				t.Fatalf("err=%v, want ValidationError", err)
			}
			if out != nil {
				t.Fatalf("outcome=%+v, want nil", out)
			}
			if !reflect.DeepEqual(next, base) {
				t.Fatalf("state changed on validation error")
			}
		})
	}
}

func TestDispatchUnknownEntities(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)

	for _, a := range []Action{
		CompleteQuest{ID: "nope"},
		DeleteQuest{ID: "nope"},
		IncrementAction{ID: "nope"},
		ResetAction{ID: "nope"},
		StartChallenge{ID: "nope"},
		StopChallenge{ID: "nope"},
		CheckIn{ID: "nope", Success: true},
		AddJournalEntry{JournalID: "nope", Text: "hi"},
		UnlockSkill{ID: "nope"},
		AcceptTemplate{Code: "nope"},
	} {
		if _, _, err := e.Dispatch(s, a, day0); !IsNotFound(err) {
			t.Fatalf("%s: err=%v, want NotFoundError", a.ActionName(), err)
		}
	}
}

func TestDeleteQuest(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), reportQuest(), day0)
	s, _ = mustDispatch(t, e, s, DeleteQuest{ID: out.EntityID}, day0)
	if len(s.Quests) != 0 {
		t.Fatalf("len(Quests)=%d, want 0", len(s.Quests))
	}
}

func TestUnlockSkill(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)
	s.Player.SkillPoints = 1

	_, _, err := e.Dispatch(s, UnlockSkill{ID: SkillDeepWork}, day0)
	var ip InsufficientPointsError
	if !errors.As(err, &ip) {
		t.Fatalf("err=%v, want InsufficientPointsError", err)
	}
	if ip.Missing() != 1 {
		t.Fatalf("Missing()=%d, want 1", ip.Missing())
	}

	s, out := mustDispatch(t, e, s, UnlockSkill{ID: SkillAdaptiveFocus}, day0)
	if s.Player.SkillPoints != 0 || !s.HasSkill(SkillAdaptiveFocus) {
		t.Fatalf("skill not unlocked: points=%d skills=%v", s.Player.SkillPoints, s.UnlockedSkills)
	}
	if !reflect.DeepEqual(out.NewAchievements, []string{"apprentice"}) {
		t.Fatalf("NewAchievements=%v, want [apprentice]", out.NewAchievements)
	}

	s.Player.SkillPoints = 5
	_, out = mustDispatch(t, e, s, UnlockSkill{ID: SkillAdaptiveFocus}, day0)
	if out.Conflict != ConflictSkillUnlocked {
		t.Fatalf("Conflict=%q, want %q", out.Conflict, ConflictSkillUnlocked)
	}
}

func TestSkillBoostsQuestXP(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)
	s.UnlockedSkills = []string{SkillAdaptiveFocus}

	s, out := mustDispatch(t, e, s, AddQuest{Title: "Quick call", XPReward: 15, Difficulty: 1, EstimatedTime: 10}, day0)
	_, out = mustDispatch(t, e, s, CompleteQuest{ID: out.EntityID}, day0)
	// 15 * 1.5 = 22.5, rounded to nearest.
	if out.XP != 23 {
		t.Fatalf("XP=%d, want 23", out.XP)
	}
}

func TestAcceptTemplate(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)

	_, _, err := e.Dispatch(s, AcceptTemplate{Code: "weekly_review"}, day0)
	var gate GateError
	if !errors.As(err, &gate) || gate.RequiredLevel != LevelTemplatesIntermediate {
		t.Fatalf("err=%v, want GateError at level %d", err, LevelTemplatesIntermediate)
	}

	s, out := mustDispatch(t, e, s, AcceptTemplate{Code: " TIDY_DESK "}, day0)
	q := s.Quests[0]
	if q.ID != out.EntityID || q.TemplateCode != "tidy_desk" || q.XPReward != 10 {
		t.Fatalf("quest=%+v", q)
	}
	if q.GoldReward.IsExplicit() {
		t.Fatalf("template quest should compute its gold")
	}
}

func TestLogHealthActivity(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)

	s, out := mustDispatch(t, e, s, LogHealthActivity{Type: domain.HealthExercise, Minutes: 30}, day0)
	if out.XP != 15 || out.Gold != 2 {
		t.Fatalf("reward=(%d, %d), want (15, 2)", out.XP, out.Gold)
	}
	if s.Player.Health != DefaultMaxHealth || s.Player.Energy != DefaultMaxEnergy-5 {
		t.Fatalf("health=%d energy=%d", s.Player.Health, s.Player.Energy)
	}
	if len(s.HealthLog) != 1 || s.HealthLog[0].HealthDelta != 0 || s.HealthLog[0].EnergyDelta != -5 {
		t.Fatalf("HealthLog=%+v", s.HealthLog)
	}

	s.UnlockedSkills = []string{SkillVitality}
	_, out = mustDispatch(t, e, s, LogHealthActivity{Type: domain.HealthExercise}, day0)
	// 15 * 1.25 = 18.75
	if out.XP != 19 {
		t.Fatalf("XP with vitality=%d, want 19", out.XP)
	}

	if _, _, err := e.Dispatch(s, LogHealthActivity{Type: "juggling"}, day0); !IsValidation(err) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}

func TestIncrementActionAtTarget(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), AddAction{
		Title: "Stretch", TargetCount: 1, Period: domain.PeriodDaily, XPPerCompletion: 5, GoldPerCompletion: 1,
	}, day0)
	id := out.EntityID

	s, out = mustDispatch(t, e, s, IncrementAction{ID: id}, day0)
	if out.XP != 5 || out.Gold != 1 {
		t.Fatalf("reward=(%d, %d), want (5, 1)", out.XP, out.Gold)
	}

	s2, out := mustDispatch(t, e, s, IncrementAction{ID: id}, day0.Add(2*time.Hour))
	if out.Conflict != ConflictActionAtTarget {
		t.Fatalf("Conflict=%q, want %q", out.Conflict, ConflictActionAtTarget)
	}
	if !reflect.DeepEqual(s, s2) {
		t.Fatalf("state changed at target")
	}

	s, out = mustDispatch(t, e, s, IncrementAction{ID: id}, dayN(1))
	a := s.Actions[0]
	if out.NoOp || a.CurrentCount != 1 || a.TotalCompletions != 2 {
		t.Fatalf("next day: NoOp=%v action=%+v", out.NoOp, a)
	}
	if s.Player.XP != 10 {
		t.Fatalf("XP=%d, want 10", s.Player.XP)
	}
}

func TestChallengeLifecycle(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), AddChallenge{
		Title:   "No sugar",
		Rewards: []domain.MilestoneReward{{DaysMilestone: 3, XPReward: 30, GoldReward: 6, Title: "Three"}},
		Start:   true,
	}, day0)
	id := out.EntityID

	_, out = mustDispatch(t, e, s, StartChallenge{ID: id}, day0)
	if out.Conflict != ConflictChallengeActive {
		t.Fatalf("Conflict=%q, want %q", out.Conflict, ConflictChallengeActive)
	}

	for i := 0; i < 3; i++ {
		s, out = mustDispatch(t, e, s, CheckIn{ID: id, Success: true}, dayN(i))
		wantMilestones := 0
		if i == 2 {
			wantMilestones = 1
		}
		if len(out.Milestones) != wantMilestones {
			t.Fatalf("day %d: milestones=%d, want %d", i, len(out.Milestones), wantMilestones)
		}
	}
	if s.Player.XP != 30 || s.Player.Gold != 6 {
		t.Fatalf("milestone not granted: xp=%d gold=%d", s.Player.XP, s.Player.Gold)
	}

	_, out = mustDispatch(t, e, s, CheckIn{ID: id, Success: true}, dayN(2).Add(time.Hour))
	if out.Conflict != ConflictAlreadyCheckedIn {
		t.Fatalf("Conflict=%q, want %q", out.Conflict, ConflictAlreadyCheckedIn)
	}

	s, _ = mustDispatch(t, e, s, StopChallenge{ID: id}, dayN(3))
	_, out = mustDispatch(t, e, s, CheckIn{ID: id, Success: true}, dayN(3))
	if out.Conflict != ConflictChallengeInactive {
		t.Fatalf("Conflict=%q, want %q", out.Conflict, ConflictChallengeInactive)
	}
	if c := s.Challenges[0]; c.LongestStreak != 3 || len(c.CheckIns) != 3 {
		t.Fatalf("history lost on stop: %+v", c)
	}
}

func TestAddChallengeDefaultsMilestones(t *testing.T) {
	e := newTestEngine()
	s, _ := mustDispatch(t, e, NewState("Ada", 7), AddChallenge{Title: "Run", Difficulty: domain.ChallengeHard}, day0)
	c := s.Challenges[0]
	if c.IsActive {
		t.Fatalf("challenge should start inactive")
	}
	if !reflect.DeepEqual(c.Rewards, DefaultMilestones(domain.ChallengeHard)) {
		t.Fatalf("Rewards=%+v", c.Rewards)
	}
}

func TestJournalEntries(t *testing.T) {
	e := newTestEngine()
	s, out := mustDispatch(t, e, NewState("Ada", 7), AddJournal{Name: "Mood", Kind: domain.JournalMood}, day0)
	jid := out.EntityID

	bad := 11
	if _, _, err := e.Dispatch(s, AddJournalEntry{JournalID: jid, Text: "x", Mood: &bad}, day0); !IsValidation(err) {
		t.Fatalf("err=%v, want ValidationError", err)
	}

	mood := 7
	s, _ = mustDispatch(t, e, s, AddJournalEntry{JournalID: jid, Text: "fine day", Mood: &mood}, day0)
	mood = 1
	if got := *s.Journals[0].Entries[0].Mood; got != 7 {
		t.Fatalf("entry mood=%d, want 7 (entries must not alias input)", got)
	}
}

func TestGetPlayerStatusIsReadOnly(t *testing.T) {
	e := newTestEngine()
	s := NewState("Ada", 7)

	next, out := mustDispatch(t, e, s, GetPlayerStatus{}, day0)
	if !out.NoOp || out.Conflict != ConflictNone {
		t.Fatalf("NoOp=%v Conflict=%q", out.NoOp, out.Conflict)
	}
	if !reflect.DeepEqual(s, next) {
		t.Fatalf("status changed state")
	}
	if !strings.Contains(out.Message, "Ada is level 1") {
		t.Fatalf("Message=%q", out.Message)
	}
}

func TestDecodeAction(t *testing.T) {
	a, err := DecodeAction("add_quest", []byte(`{"title":"Walk","xp_reward":10,"difficulty":2,"estimated_time":20}`))
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	q := a.(AddQuest)
	if q.GoldReward.IsExplicit() || q.Type != domain.DefaultQuestType || q.Priority != domain.DefaultPriority {
		t.Fatalf("decoded=%+v", q)
	}

	a, err = DecodeAction("add_quest", []byte(`{"title":"Walk","gold_reward":7}`))
	if err != nil {
		t.Fatalf("DecodeAction: %v", err)
	}
	if v, ok := a.(AddQuest).GoldReward.Value(); !ok || v != 7 {
		t.Fatalf("gold=(%d, %v), want (7, true)", v, ok)
	}

	a, err = DecodeAction("complete_quest", []byte(`{"id":"q-1"}`))
	if err != nil || a.(CompleteQuest).ID != "q-1" {
		t.Fatalf("complete_quest decoded=%v err=%v", a, err)
	}

	if _, err := DecodeAction("get_player_status", nil); err != nil {
		t.Fatalf("get_player_status: %v", err)
	}
	if _, err := DecodeAction("log_health_activity", []byte(`{"type":"yoga"}`)); !IsValidation(err) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
	if _, err := DecodeAction("launch_rocket", nil); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("err=%v, want ErrUnknownAction", err)
	}
}

func TestDecodeActionVocabulary(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Action
	}{
		{"delete_quest", `{"id":"q"}`, DeleteQuest{ID: "q"}},
		{"unlock_skill", `{"id":"vitality"}`, UnlockSkill{ID: "vitality"}},
		{"increment_action", `{"id":"a"}`, IncrementAction{ID: "a"}},
		{"reset_action", `{"id":"a"}`, ResetAction{ID: "a"}},
		{"start_challenge", `{"id":"c"}`, StartChallenge{ID: "c"}},
		{"stop_challenge", `{"id":"c"}`, StopChallenge{ID: "c"}},
		{"accept_template", `{"code":"tidy_desk"}`, AcceptTemplate{Code: "tidy_desk"}},
		{"check_in", `{"id":"c"}`, CheckIn{ID: "c", Success: true}},
		{"check_in", `{"id":"c","success":false,"notes":"cake"}`, CheckIn{ID: "c", Notes: "cake"}},
		{"add_action", `{"title":"Water","target_count":8,"period":"Weekly","xp_per_completion":2}`,
			AddAction{Title: "Water", TargetCount: 8, Period: domain.PeriodWeekly, XPPerCompletion: 2}},
		{"add_challenge", `{"title":"No sugar","start":true}`,
			AddChallenge{Title: "No sugar", Difficulty: domain.ChallengeMedium, Start: true}},
		{"add_journal", `{"name":"Mood","kind":"mood"}`, AddJournal{Name: "Mood", Kind: domain.JournalMood}},
	}
	for _, c := range cases {
		got, err := DecodeAction(c.name, []byte(c.payload))
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !reflect.DeepEqual(got, c.want) {
			t.Fatalf("%s decoded=%+v, want %+v", c.name, got, c.want)
		}
		if got.ActionName() != ActionName(c.name) {
			t.Fatalf("%s name=%s", c.name, got.ActionName())
		}
	}

	a, err := DecodeAction("add_journal_entry", []byte(`{"journal_id":"j","text":"ok","mood":7}`))
	if err != nil {
		t.Fatalf("add_journal_entry: %v", err)
	}
	e := a.(AddJournalEntry)
	if e.Mood == nil || *e.Mood != 7 || e.Amount != nil {
		t.Fatalf("entry=%+v", e)
	}

	if _, err := DecodeAction("add_challenge", []byte(`{"title":"x","difficulty":"legendary"}`)); !IsValidation(err) {
		t.Fatalf("err=%v, want ValidationError", err)
	}
}
