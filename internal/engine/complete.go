package engine

import (
	"time"

	"lifequest/internal/domain"
)

func (e *Engine) completeQuest(s *domain.State, a CompleteQuest, now time.Time, out *Outcome) error {
	i := s.QuestIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "quest", ID: a.ID}
	}
	q := s.Quests[i]
	out.EntityID = q.ID
	if q.Status == domain.QuestCompleted {
		out.conflict(ConflictAlreadyCompleted, "Quest already completed: "+q.Title+".")
		return nil
	}

	// Modifiers see the state as it was before this completion.
	xp := QuestXP(s, q, e.catalog.Skills)
	gold := GoldReward(q)

	t := now
	s.Quests[i].Status = domain.QuestCompleted
	s.Quests[i].CompletedAt = &t

	p := &s.Player
	p.QuestsCompleted++
	p.Energy = clamp(p.Energy-q.EnergyRequired, 0, p.MaxEnergy)
	touchPlayerStreak(p, now)

	out.grant(p, Grant{Source: "quest", SourceID: q.ID, XP: xp, Gold: gold, Note: q.Title})
	out.Message = "Quest complete: " + q.Title + "."
	return nil
}

func (e *Engine) deleteQuest(s *domain.State, a DeleteQuest, out *Outcome) error {
	i := s.QuestIndex(a.ID)
	if i < 0 {
		return NotFoundError{Kind: "quest", ID: a.ID}
	}
	title := s.Quests[i].Title
	s.Quests = append(s.Quests[:i], s.Quests[i+1:]...)
	out.EntityID = a.ID
	out.Message = "Quest deleted: " + title + "."
	return nil
}

// touchPlayerStreak extends the daily streak on the first completion of a
// calendar day. A gap of more than one day restarts it at 1.
func touchPlayerStreak(p *domain.Player, now time.Time) {
	loc := now.Location()
	if p.LastActiveDate != nil {
		switch daysBetween(*p.LastActiveDate, now, loc) {
		case 0:
			return
		case 1:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	} else {
		p.CurrentStreak = 1
	}
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	t := now
	p.LastActiveDate = &t
}
