package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"lifequest/internal/domain"
)

type ActionName string

const (
	ActAddQuest          ActionName = "add_quest"
	ActCompleteQuest     ActionName = "complete_quest"
	ActDeleteQuest       ActionName = "delete_quest"
	ActAcceptTemplate    ActionName = "accept_template"
	ActLogHealthActivity ActionName = "log_health_activity"
	ActUnlockSkill       ActionName = "unlock_skill"
	ActAddAction         ActionName = "add_action"
	ActIncrementAction   ActionName = "increment_action"
	ActResetAction       ActionName = "reset_action"
	ActAddChallenge      ActionName = "add_challenge"
	ActStartChallenge    ActionName = "start_challenge"
	ActStopChallenge     ActionName = "stop_challenge"
	ActCheckIn           ActionName = "check_in"
	ActAddJournal        ActionName = "add_journal"
	ActAddJournalEntry   ActionName = "add_journal_entry"
	ActGetPlayerStatus   ActionName = "get_player_status"
)

// Action is one entry of the dispatch vocabulary.
type Action interface {
	ActionName() ActionName
}

type AddQuest struct {
	Title          string
	Type           domain.QuestType
	Category       string
	Priority       domain.Priority
	XPReward       int
	GoldReward     domain.RewardOverride
	Difficulty     domain.Difficulty
	EstimatedTime  int
	EnergyRequired int
	AnxietyLevel   int
	Tags           []string
}

type CompleteQuest struct{ ID string }
type DeleteQuest struct{ ID string }
type AcceptTemplate struct{ Code string }

type LogHealthActivity struct {
	Type    domain.HealthActivityType
	Minutes int
}

type UnlockSkill struct{ ID string }

type AddAction struct {
	Title             string
	TargetCount       int
	Period            domain.Period
	XPPerCompletion   int
	GoldPerCompletion int
}

type IncrementAction struct{ ID string }
type ResetAction struct{ ID string }

type AddChallenge struct {
	Title       string
	Description string
	Difficulty  domain.ChallengeDifficulty
	// Rewards defaults to DefaultMilestones(Difficulty) when empty.
	Rewards []domain.MilestoneReward
	Start   bool
}

type StartChallenge struct{ ID string }
type StopChallenge struct{ ID string }

type CheckIn struct {
	ID      string
	Success bool
	Notes   string
}

type AddJournal struct {
	Name string
	Kind domain.JournalKind
}

type AddJournalEntry struct {
	JournalID string
	Text      string
	Mood      *int
	Amount    *float64
}

type GetPlayerStatus struct{}

func (AddQuest) ActionName() ActionName          { return ActAddQuest }
func (CompleteQuest) ActionName() ActionName     { return ActCompleteQuest }
func (DeleteQuest) ActionName() ActionName       { return ActDeleteQuest }
func (AcceptTemplate) ActionName() ActionName    { return ActAcceptTemplate }
func (LogHealthActivity) ActionName() ActionName { return ActLogHealthActivity }
func (UnlockSkill) ActionName() ActionName       { return ActUnlockSkill }
func (AddAction) ActionName() ActionName         { return ActAddAction }
func (IncrementAction) ActionName() ActionName   { return ActIncrementAction }
func (ResetAction) ActionName() ActionName       { return ActResetAction }
func (AddChallenge) ActionName() ActionName      { return ActAddChallenge }
func (StartChallenge) ActionName() ActionName    { return ActStartChallenge }
func (StopChallenge) ActionName() ActionName     { return ActStopChallenge }
func (CheckIn) ActionName() ActionName           { return ActCheckIn }
func (AddJournal) ActionName() ActionName        { return ActAddJournal }
func (AddJournalEntry) ActionName() ActionName   { return ActAddJournalEntry }
func (GetPlayerStatus) ActionName() ActionName   { return ActGetPlayerStatus }

// questPayload is the wire form of add_quest. A missing gold_reward means the
// reward is computed.
type questPayload struct {
	Title          string   `json:"title"`
	Type           string   `json:"type"`
	Category       string   `json:"category"`
	Priority       string   `json:"priority"`
	XPReward       int      `json:"xp_reward"`
	GoldReward     *int     `json:"gold_reward"`
	Difficulty     int      `json:"difficulty"`
	EstimatedTime  int      `json:"estimated_time"`
	EnergyRequired int      `json:"energy_required"`
	AnxietyLevel   int      `json:"anxiety_level"`
	Tags           []string `json:"tags"`
}

type idPayload struct {
	ID string `json:"id"`
}

type healthPayload struct {
	Type    string `json:"type"`
	Minutes int    `json:"minutes"`
}

type actionPayload struct {
	Title             string `json:"title"`
	TargetCount       int    `json:"target_count"`
	Period            string `json:"period"`
	XPPerCompletion   int    `json:"xp_per_completion"`
	GoldPerCompletion int    `json:"gold_per_completion"`
}

type challengePayload struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Difficulty  string                   `json:"difficulty"`
	Rewards     []domain.MilestoneReward `json:"rewards"`
	Start       bool                     `json:"start"`
}

type checkInPayload struct {
	ID      string `json:"id"`
	Success *bool  `json:"success"`
	Notes   string `json:"notes"`
}

type journalPayload struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type entryPayload struct {
	JournalID string   `json:"journal_id"`
	Text      string   `json:"text"`
	Mood      *int     `json:"mood"`
	Amount    *float64 `json:"amount"`
}

// DecodeAction maps a named JSON request (as produced by a conversational
// front-end) onto the typed action vocabulary.
func DecodeAction(name string, payload []byte) (Action, error) {
	if len(payload) == 0 {
		payload = []byte("{}")
	}
	decode := func(v any) error {
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		return nil
	}

	switch ActionName(name) {
	case ActAddQuest:
		var p questPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		qt, err := domain.ParseQuestType(p.Type)
		if err != nil {
			return nil, ValidationError{Field: "type", Reason: err.Error()}
		}
		pr, err := domain.ParsePriority(p.Priority)
		if err != nil {
			return nil, ValidationError{Field: "priority", Reason: err.Error()}
		}
		gold := domain.ComputedReward()
		if p.GoldReward != nil {
			gold = domain.ExplicitReward(*p.GoldReward)
		}
		return AddQuest{
			Title:          p.Title,
			Type:           qt,
			Category:       p.Category,
			Priority:       pr,
			XPReward:       p.XPReward,
			GoldReward:     gold,
			Difficulty:     domain.Difficulty(p.Difficulty),
			EstimatedTime:  p.EstimatedTime,
			EnergyRequired: p.EnergyRequired,
			AnxietyLevel:   p.AnxietyLevel,
			Tags:           p.Tags,
		}, nil
	case ActCompleteQuest, ActDeleteQuest, ActUnlockSkill, ActIncrementAction,
		ActResetAction, ActStartChallenge, ActStopChallenge:
		var p idPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return idAction(ActionName(name), p.ID), nil
	case ActAcceptTemplate:
		var p struct {
			Code string `json:"code"`
		}
		if err := decode(&p); err != nil {
			return nil, err
		}
		return AcceptTemplate{Code: p.Code}, nil
	case ActLogHealthActivity:
		var p healthPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		t, err := domain.ParseHealthActivity(p.Type)
		if err != nil {
			return nil, ValidationError{Field: "type", Reason: err.Error()}
		}
		return LogHealthActivity{Type: t, Minutes: p.Minutes}, nil
	case ActAddAction:
		var p actionPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return AddAction{
			Title:             p.Title,
			TargetCount:       p.TargetCount,
			Period:            domain.Period(strings.ToLower(strings.TrimSpace(p.Period))),
			XPPerCompletion:   p.XPPerCompletion,
			GoldPerCompletion: p.GoldPerCompletion,
		}, nil
	case ActAddChallenge:
		var p challengePayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		d, err := ParseChallengeDifficulty(p.Difficulty)
		if err != nil {
			return nil, err
		}
		return AddChallenge{Title: p.Title, Description: p.Description, Difficulty: d, Rewards: p.Rewards, Start: p.Start}, nil
	case ActCheckIn:
		var p checkInPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		success := true
		if p.Success != nil {
			success = *p.Success
		}
		return CheckIn{ID: p.ID, Success: success, Notes: p.Notes}, nil
	case ActAddJournal:
		var p journalPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		k, err := ParseJournalKind(p.Kind)
		if err != nil {
			return nil, err
		}
		return AddJournal{Name: p.Name, Kind: k}, nil
	case ActAddJournalEntry:
		var p entryPayload
		if err := decode(&p); err != nil {
			return nil, err
		}
		return AddJournalEntry{JournalID: p.JournalID, Text: p.Text, Mood: p.Mood, Amount: p.Amount}, nil
	case ActGetPlayerStatus:
		return GetPlayerStatus{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

func idAction(name ActionName, id string) Action {
	switch name {
	case ActCompleteQuest:
		return CompleteQuest{ID: id}
	case ActDeleteQuest:
		return DeleteQuest{ID: id}
	case ActUnlockSkill:
		return UnlockSkill{ID: id}
	case ActIncrementAction:
		return IncrementAction{ID: id}
	case ActResetAction:
		return ResetAction{ID: id}
	case ActStartChallenge:
		return StartChallenge{ID: id}
	default:
		return StopChallenge{ID: id}
	}
}
