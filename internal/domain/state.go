package domain

import "time"

// State is the full progression snapshot. The engine never mutates a State it
// was handed; it works on a Clone.
type State struct {
	Player               Player              `json:"player"`
	Quests               []Quest             `json:"quests"`
	UnlockedSkills       []string            `json:"unlocked_skills"`
	UnlockedAchievements []AchievementUnlock `json:"unlocked_achievements"`
	Actions              []RepeatableAction  `json:"actions"`
	Challenges           []StreakChallenge   `json:"challenges"`
	Journals             []Journal           `json:"journals"`
	HealthLog            []HealthLogEntry    `json:"health_log"`
}

func (s State) Clone() State {
	out := s
	out.Player.LastActiveDate = cloneTime(s.Player.LastActiveDate)

	out.Quests = make([]Quest, len(s.Quests))
	for i, q := range s.Quests {
		q.Tags = append([]string(nil), q.Tags...)
		q.CompletedAt = cloneTime(q.CompletedAt)
		out.Quests[i] = q
	}

	out.UnlockedSkills = append([]string(nil), s.UnlockedSkills...)
	out.UnlockedAchievements = append([]AchievementUnlock(nil), s.UnlockedAchievements...)

	out.Actions = make([]RepeatableAction, len(s.Actions))
	for i, a := range s.Actions {
		a.LastCompletedDate = cloneTime(a.LastCompletedDate)
		out.Actions[i] = a
	}

	out.Challenges = make([]StreakChallenge, len(s.Challenges))
	for i, c := range s.Challenges {
		out.Challenges[i] = c.Clone()
	}

	out.Journals = make([]Journal, len(s.Journals))
	for i, j := range s.Journals {
		j.Entries = append([]JournalEntry(nil), j.Entries...)
		out.Journals[i] = j
	}

	out.HealthLog = append([]HealthLogEntry(nil), s.HealthLog...)
	return out
}

func (c StreakChallenge) Clone() StreakChallenge {
	out := c
	out.StartDate = cloneTime(c.StartDate)
	out.CheckIns = append([]CheckIn(nil), c.CheckIns...)
	out.Rewards = append([]MilestoneReward(nil), c.Rewards...)
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (s *State) QuestIndex(id string) int {
	for i := range s.Quests {
		if s.Quests[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) ActionIndex(id string) int {
	for i := range s.Actions {
		if s.Actions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) ChallengeIndex(id string) int {
	for i := range s.Challenges {
		if s.Challenges[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) JournalIndex(id string) int {
	for i := range s.Journals {
		if s.Journals[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *State) HasSkill(id string) bool {
	for _, sk := range s.UnlockedSkills {
		if sk == id {
			return true
		}
	}
	return false
}

func (s *State) HasAchievement(id string) bool {
	for _, a := range s.UnlockedAchievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// CompletedQuests counts quests currently in the completed state.
func (s *State) CompletedQuests() int {
	n := 0
	for _, q := range s.Quests {
		if q.Status == QuestCompleted {
			n++
		}
	}
	return n
}
