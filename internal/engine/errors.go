package engine

import (
	"errors"
	"fmt"
)

// ConflictCode names a benign double-dispatch. Conflicts are reported on the
// Outcome with the state unchanged; they are not errors.
type ConflictCode string

const (
	ConflictNone              ConflictCode = ""
	ConflictAlreadyCompleted  ConflictCode = "already_completed"
	ConflictAlreadyCheckedIn  ConflictCode = "already_checked_in"
	ConflictChallengeInactive ConflictCode = "challenge_inactive"
	ConflictChallengeActive   ConflictCode = "challenge_active"
	ConflictActionAtTarget    ConflictCode = "action_at_target"
	ConflictSkillUnlocked     ConflictCode = "skill_unlocked"
)

// ValidationError rejects an action before any mutation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Field == "" {
		return "invalid input: " + e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a reference to an entity that does not exist.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// InsufficientPointsError is returned when a skill costs more than the player has.
type InsufficientPointsError struct {
	Skill string
	Need  int
	Have  int
}

func (e InsufficientPointsError) Error() string {
	return fmt.Sprintf("insufficient points: skill %q costs %d, you have %d (%d more needed)", e.Skill, e.Need, e.Have, e.Missing())
}

func (e InsufficientPointsError) Missing() int {
	if e.Need <= e.Have {
		return 0
	}
	return e.Need - e.Have
}

// GateError indicates a feature is locked behind a required player level.
type GateError struct {
	Feature       string
	RequiredLevel int
}

func (e GateError) Error() string {
	if e.RequiredLevel <= 0 {
		return fmt.Sprintf("feature '%s' is locked", e.Feature)
	}
	return fmt.Sprintf("feature '%s' unlocks at level %d", e.Feature, e.RequiredLevel)
}

// ErrUnknownAction is returned by DecodeAction for names outside the vocabulary.
var ErrUnknownAction = errors.New("unknown action")

func IsValidation(err error) bool {
	var v ValidationError
	return errors.As(err, &v)
}

func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
