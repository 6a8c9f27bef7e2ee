package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"lifequest/internal/domain"
)

// Catalog holds the read-only rule tables the engine is built from.
type Catalog struct {
	Skills       []SkillDef
	Achievements []AchievementDef
	Templates    []TemplateDef
}

func DefaultCatalog() Catalog {
	return Catalog{
		Skills:       DefaultSkills(),
		Achievements: DefaultAchievements(),
		Templates:    DefaultTemplates(),
	}
}

// Engine is the progression reducer. It holds no mutable state; Dispatch is
// a function of (state, action, now).
type Engine struct {
	catalog Catalog
	newID   func() string
}

type EngineOption func(*Engine)

// WithIDGenerator replaces uuid-based ids, mostly for tests.
func WithIDGenerator(fn func() string) EngineOption {
	return func(e *Engine) { e.newID = fn }
}

func NewEngine(catalog Catalog, opts ...EngineOption) *Engine {
	e := &Engine{catalog: catalog, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Catalog() Catalog { return e.catalog }

// Grant is one realized reward, recorded in the ledger.
type Grant struct {
	Source   string
	SourceID string
	XP       int
	Gold     int
	Note     string
}

// Outcome describes what a dispatched action did.
type Outcome struct {
	Action   ActionName
	Message  string
	EntityID string

	// NoOp is set when the state was left unchanged, either because the action
	// is read-only or because it hit a Conflict.
	NoOp     bool
	Conflict ConflictCode

	XP              int
	Gold            int
	LevelsGained    int
	Milestones      []domain.MilestoneReward
	NewAchievements []string
	Grants          []Grant
}

func (o *Outcome) conflict(code ConflictCode, msg string) {
	o.NoOp = true
	o.Conflict = code
	o.Message = msg
}

func (o *Outcome) grant(p *domain.Player, g Grant) {
	if g.XP == 0 && g.Gold == 0 {
		return
	}
	p.XP += g.XP
	p.Gold += g.Gold
	o.XP += g.XP
	o.Gold += g.Gold
	o.Grants = append(o.Grants, g)
}

// Dispatch applies a to s at now and returns the next state. s itself is never
// modified. On error or conflict the returned state equals s.
func (e *Engine) Dispatch(s domain.State, a Action, now time.Time) (domain.State, *Outcome, error) {
	if a == nil {
		return s, nil, ValidationError{Reason: "action is required"}
	}

	next := s.Clone()
	out := &Outcome{Action: a.ActionName()}

	var err error
	switch act := a.(type) {
	case AddQuest:
		err = e.addQuest(&next, act, now, out)
	case CompleteQuest:
		err = e.completeQuest(&next, act, now, out)
	case DeleteQuest:
		err = e.deleteQuest(&next, act, out)
	case AcceptTemplate:
		err = e.acceptTemplate(&next, act, now, out)
	case LogHealthActivity:
		err = e.logHealth(&next, act, now, out)
	case UnlockSkill:
		err = e.unlockSkill(&next, act, out)
	case AddAction:
		err = e.addAction(&next, act, now, out)
	case IncrementAction:
		err = e.incrementAction(&next, act, now, out)
	case ResetAction:
		err = e.resetAction(&next, act, now, out)
	case AddChallenge:
		err = e.addChallenge(&next, act, now, out)
	case StartChallenge:
		err = e.startChallenge(&next, act, now, out)
	case StopChallenge:
		err = e.stopChallenge(&next, act, out)
	case CheckIn:
		err = e.checkIn(&next, act, now, out)
	case AddJournal:
		err = e.addJournal(&next, act, now, out)
	case AddJournalEntry:
		err = e.addJournalEntry(&next, act, now, out)
	case GetPlayerStatus:
		out.NoOp = true
		out.Message = StatusText(BuildStatus(&s))
	default:
		return s, nil, fmt.Errorf("%w: %s", ErrUnknownAction, a.ActionName())
	}
	if err != nil {
		return s, nil, err
	}
	if out.NoOp {
		return s, out, nil
	}

	out.LevelsGained = NormalizePlayer(&next.Player)
	out.NewAchievements = mergeUnlocks(&next, Evaluate(&next, e.catalog.Achievements), now)
	out.Message = decorate(out, &next)
	return next, out, nil
}

func decorate(out *Outcome, s *domain.State) string {
	var b strings.Builder
	b.WriteString(out.Message)
	if out.XP > 0 || out.Gold > 0 {
		fmt.Fprintf(&b, " (+%d XP, +%d gold)", out.XP, out.Gold)
	}
	if out.LevelsGained > 0 {
		fmt.Fprintf(&b, " Level up! Now level %d.", s.Player.Level)
	}
	for _, m := range out.Milestones {
		fmt.Fprintf(&b, " Milestone reached: %s.", m.Title)
	}
	if len(out.NewAchievements) > 0 {
		fmt.Fprintf(&b, " Achievement unlocked: %s.", strings.Join(out.NewAchievements, ", "))
	}
	return strings.TrimSpace(b.String())
}
