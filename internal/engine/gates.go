package engine

import "sort"

// Levels at which more of the game opens up. Quest templates carry their own
// MinLevel; these name the thresholds shown to the player.
const (
	LevelTemplatesIntermediate = 3
	LevelTemplatesAdvanced     = 5
	LevelTemplatesEpic         = 7
)

// CanAcceptTemplate returns a GateError when level is below the template's requirement.
func CanAcceptTemplate(level int, def TemplateDef) error {
	if level < def.MinLevel {
		return GateError{Feature: "template " + def.Code, RequiredLevel: def.MinLevel}
	}
	return nil
}

// Unlock is a gated feature the player has not reached yet.
type Unlock struct {
	Feature string
	Level   int
}

// UpcomingUnlocks lists locked templates ordered by the level that opens them.
func UpcomingUnlocks(level int, defs []TemplateDef) []Unlock {
	var out []Unlock
	for _, def := range defs {
		if CanAcceptTemplate(level, def) != nil {
			out = append(out, Unlock{Feature: def.Title, Level: def.MinLevel})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// NextUnlock returns the closest locked feature, if any.
func NextUnlock(level int, defs []TemplateDef) (Unlock, bool) {
	up := UpcomingUnlocks(level, defs)
	if len(up) == 0 {
		return Unlock{}, false
	}
	return up[0], true
}
