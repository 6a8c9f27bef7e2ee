package engine

import (
	"strings"
	"time"

	"lifequest/internal/domain"
)

const (
	maxTitleLen  = 200
	maxAttribute = 10
)

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ValidationError{Field: "title", Reason: "title is required"}
	}
	if len([]rune(t)) > maxTitleLen {
		return "", ValidationError{Field: "title", Reason: "title is too long"}
	}
	return t, nil
}

func normalizeTags(tags []string) []string {
	var out []string
	seen := map[string]bool{}
	for _, t := range tags {
		t = strings.TrimSpace(strings.ToLower(t))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func validateQuest(q *domain.Quest) error {
	if q.XPReward < 1 {
		return ValidationError{Field: "xp_reward", Reason: "must be at least 1"}
	}
	if v, ok := q.GoldReward.Value(); ok && v < 1 {
		return ValidationError{Field: "gold_reward", Reason: "must be at least 1"}
	}
	if q.EstimatedTime < 1 {
		return ValidationError{Field: "estimated_time", Reason: "must be at least 1 minute"}
	}
	if !q.Difficulty.IsValid() {
		return ValidationError{Field: "difficulty", Reason: "must be between 1 and 5"}
	}
	if q.EnergyRequired < 0 || q.EnergyRequired > maxAttribute {
		return ValidationError{Field: "energy_required", Reason: "must be between 0 and 10"}
	}
	if q.AnxietyLevel < 0 || q.AnxietyLevel > maxAttribute {
		return ValidationError{Field: "anxiety_level", Reason: "must be between 0 and 10"}
	}
	return nil
}

func (e *Engine) addQuest(s *domain.State, a AddQuest, now time.Time, out *Outcome) error {
	title, err := normalizeTitle(a.Title)
	if err != nil {
		return err
	}
	qt := a.Type
	if qt == "" {
		qt = domain.DefaultQuestType
	}
	if !qt.IsValid() {
		return ValidationError{Field: "type", Reason: "unknown quest type " + string(qt)}
	}
	pr := a.Priority
	if pr == "" {
		pr = domain.DefaultPriority
	}
	if !pr.IsValid() {
		return ValidationError{Field: "priority", Reason: "unknown priority " + string(pr)}
	}

	q := domain.Quest{
		ID:             e.newID(),
		Title:          title,
		Type:           qt,
		Category:       strings.TrimSpace(a.Category),
		Priority:       pr,
		Status:         domain.QuestActive,
		XPReward:       a.XPReward,
		GoldReward:     a.GoldReward,
		Difficulty:     a.Difficulty,
		EstimatedTime:  a.EstimatedTime,
		EnergyRequired: a.EnergyRequired,
		AnxietyLevel:   a.AnxietyLevel,
		Tags:           normalizeTags(a.Tags),
		CreatedAt:      now,
	}
	if err := validateQuest(&q); err != nil {
		return err
	}

	s.Quests = append(s.Quests, q)
	out.EntityID = q.ID
	out.Message = "Quest added: " + q.Title + "."
	return nil
}

func (e *Engine) acceptTemplate(s *domain.State, a AcceptTemplate, now time.Time, out *Outcome) error {
	code, err := normalizeTemplateCode(a.Code)
	if err != nil {
		return err
	}
	def := findTemplate(e.catalog.Templates, code)
	if def == nil {
		return NotFoundError{Kind: "template", ID: code}
	}
	if err := CanAcceptTemplate(s.Player.Level, *def); err != nil {
		return err
	}

	q := domain.Quest{
		ID:             e.newID(),
		Title:          def.Title,
		Type:           def.Type,
		Category:       def.Category,
		Priority:       def.Priority,
		Status:         domain.QuestActive,
		XPReward:       def.XPReward,
		GoldReward:     domain.ComputedReward(),
		Difficulty:     def.Difficulty,
		EstimatedTime:  def.EstimatedTime,
		EnergyRequired: def.EnergyRequired,
		AnxietyLevel:   def.AnxietyLevel,
		Tags:           normalizeTags(def.Tags),
		TemplateCode:   def.Code,
		CreatedAt:      now,
	}
	if err := validateQuest(&q); err != nil {
		return err
	}

	s.Quests = append(s.Quests, q)
	out.EntityID = q.ID
	out.Message = "Quest accepted: " + q.Title + "."
	return nil
}

func (e *Engine) addAction(s *domain.State, a AddAction, now time.Time, out *Outcome) error {
	title, err := normalizeTitle(a.Title)
	if err != nil {
		return err
	}
	if a.TargetCount < 1 {
		return ValidationError{Field: "target_count", Reason: "must be at least 1"}
	}
	period := a.Period
	if period == "" {
		period = domain.PeriodDaily
	}
	if !period.IsValid() {
		return ValidationError{Field: "period", Reason: "must be daily or weekly"}
	}
	if a.XPPerCompletion < 0 || a.GoldPerCompletion < 0 {
		return ValidationError{Field: "reward", Reason: "must not be negative"}
	}

	act := domain.RepeatableAction{
		ID:                e.newID(),
		Title:             title,
		TargetCount:       a.TargetCount,
		Period:            period,
		ResetDate:         now,
		XPPerCompletion:   a.XPPerCompletion,
		GoldPerCompletion: a.GoldPerCompletion,
		CreatedAt:         now,
	}
	s.Actions = append(s.Actions, act)
	out.EntityID = act.ID
	out.Message = "Repeatable action added: " + act.Title + "."
	return nil
}

func (e *Engine) addChallenge(s *domain.State, a AddChallenge, now time.Time, out *Outcome) error {
	title, err := normalizeTitle(a.Title)
	if err != nil {
		return err
	}
	diff := a.Difficulty
	if diff == "" {
		diff = domain.ChallengeMedium
	}
	if !diff.IsValid() {
		return ValidationError{Field: "difficulty", Reason: "unknown challenge difficulty " + string(diff)}
	}

	rewards := append([]domain.MilestoneReward(nil), a.Rewards...)
	if len(rewards) == 0 {
		rewards = DefaultMilestones(diff)
	}
	seen := map[int]bool{}
	for _, r := range rewards {
		if r.DaysMilestone < 1 {
			return ValidationError{Field: "rewards", Reason: "milestone must be at least 1 day"}
		}
		if seen[r.DaysMilestone] {
			return ValidationError{Field: "rewards", Reason: "duplicate milestone"}
		}
		if r.XPReward < 0 || r.GoldReward < 0 {
			return ValidationError{Field: "rewards", Reason: "must not be negative"}
		}
		seen[r.DaysMilestone] = true
	}

	c := domain.StreakChallenge{
		ID:          e.newID(),
		Title:       title,
		Description: strings.TrimSpace(a.Description),
		Difficulty:  diff,
		Rewards:     rewards,
		CreatedAt:   now,
	}
	if a.Start {
		c, _ = ActivateChallenge(c, now)
	}
	s.Challenges = append(s.Challenges, c)
	out.EntityID = c.ID
	out.Message = "Challenge added: " + c.Title + "."
	return nil
}

func (e *Engine) addJournal(s *domain.State, a AddJournal, now time.Time, out *Outcome) error {
	name, err := normalizeTitle(a.Name)
	if err != nil {
		return err
	}
	kind := a.Kind
	if kind == "" {
		kind = domain.JournalGeneral
	}
	if !kind.IsValid() {
		return ValidationError{Field: "kind", Reason: "unknown journal kind " + string(kind)}
	}
	j := domain.Journal{ID: e.newID(), Name: name, Kind: kind, CreatedAt: now}
	s.Journals = append(s.Journals, j)
	out.EntityID = j.ID
	out.Message = "Journal added: " + j.Name + "."
	return nil
}

func (e *Engine) addJournalEntry(s *domain.State, a AddJournalEntry, now time.Time, out *Outcome) error {
	i := s.JournalIndex(a.JournalID)
	if i < 0 {
		return NotFoundError{Kind: "journal", ID: a.JournalID}
	}
	text := strings.TrimSpace(a.Text)
	if text == "" {
		return ValidationError{Field: "text", Reason: "entry text is required"}
	}
	if a.Mood != nil && (*a.Mood < 1 || *a.Mood > 10) {
		return ValidationError{Field: "mood", Reason: "must be between 1 and 10"}
	}

	entry := domain.JournalEntry{ID: e.newID(), At: now, Text: text}
	if a.Mood != nil {
		m := *a.Mood
		entry.Mood = &m
	}
	if a.Amount != nil {
		v := *a.Amount
		entry.Amount = &v
	}
	s.Journals[i].Entries = append(s.Journals[i].Entries, entry)
	out.EntityID = entry.ID
	out.Message = "Entry added to " + s.Journals[i].Name + "."
	return nil
}
