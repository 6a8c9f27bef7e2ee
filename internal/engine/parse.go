package engine

import (
	"fmt"
	"strconv"
	"strings"

	"lifequest/internal/domain"
)

// ParseDifficulty accepts 1-5 or a name (trivial, easy, medium, hard, epic).
// Empty input means medium.
func ParseDifficulty(input string) (domain.Difficulty, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "":
		return domain.DifficultyMedium, nil
	case "trivial":
		return domain.DifficultyTrivial, nil
	case "easy":
		return domain.DifficultyEasy, nil
	case "medium":
		return domain.DifficultyMedium, nil
	case "hard":
		return domain.DifficultyHard, nil
	case "epic":
		return domain.DifficultyEpic, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || !domain.Difficulty(n).IsValid() {
		return 0, ValidationError{Field: "difficulty", Reason: fmt.Sprintf("%q is not 1-5 or a difficulty name", input)}
	}
	return domain.Difficulty(n), nil
}

func ParseChallengeDifficulty(input string) (domain.ChallengeDifficulty, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return domain.ChallengeMedium, nil
	}
	d := domain.ChallengeDifficulty(s)
	if !d.IsValid() {
		return "", ValidationError{Field: "difficulty", Reason: fmt.Sprintf("unknown challenge difficulty %q", input)}
	}
	return d, nil
}

func ParseJournalKind(input string) (domain.JournalKind, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	if s == "" {
		return domain.JournalGeneral, nil
	}
	k := domain.JournalKind(s)
	if !k.IsValid() {
		return "", ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown journal kind %q", input)}
	}
	return k, nil
}
