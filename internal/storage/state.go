package storage

import (
	"context"

	"lifequest/internal/domain"
)

// LoadState reads the full state graph. found is false when no player has
// been saved yet.
func LoadState(ctx context.Context, db DBTX) (s domain.State, found bool, err error) {
	p, err := NewPlayerRepo(db).Get(ctx)
	if err != nil || p == nil {
		return s, false, err
	}
	s.Player = *p

	if s.Quests, err = NewQuestRepo(db).ListAll(ctx); err != nil {
		return s, false, err
	}
	unlocks := NewUnlockRepo(db)
	if s.UnlockedSkills, err = unlocks.ListSkills(ctx); err != nil {
		return s, false, err
	}
	if s.UnlockedAchievements, err = unlocks.ListAchievements(ctx); err != nil {
		return s, false, err
	}
	if s.Actions, err = NewActionRepo(db).ListAll(ctx); err != nil {
		return s, false, err
	}
	if s.Challenges, err = NewChallengeRepo(db).ListAll(ctx); err != nil {
		return s, false, err
	}
	if s.Journals, err = NewJournalRepo(db).ListAll(ctx); err != nil {
		return s, false, err
	}
	if s.HealthLog, err = NewHealthRepo(db).ListAll(ctx); err != nil {
		return s, false, err
	}
	return s, true, nil
}

// SaveState writes s. Quests, actions and challenges are replaced wholesale;
// unlocks, journal entries and the health log only ever gain rows. Call it
// inside WithTx.
func SaveState(ctx context.Context, db DBTX, s domain.State) error {
	if err := NewPlayerRepo(db).Save(ctx, s.Player); err != nil {
		return err
	}
	if err := NewQuestRepo(db).ReplaceAll(ctx, s.Quests); err != nil {
		return err
	}
	unlocks := NewUnlockRepo(db)
	if err := unlocks.SaveSkills(ctx, s.UnlockedSkills); err != nil {
		return err
	}
	if err := unlocks.SaveAchievements(ctx, s.UnlockedAchievements); err != nil {
		return err
	}
	if err := NewActionRepo(db).ReplaceAll(ctx, s.Actions); err != nil {
		return err
	}
	if err := NewChallengeRepo(db).ReplaceAll(ctx, s.Challenges); err != nil {
		return err
	}
	if err := NewJournalRepo(db).SaveAll(ctx, s.Journals); err != nil {
		return err
	}
	return NewHealthRepo(db).AppendNew(ctx, s.HealthLog)
}
