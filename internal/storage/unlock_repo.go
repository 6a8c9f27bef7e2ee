package storage

import (
	"context"
	"fmt"

	"lifequest/internal/domain"
)

// UnlockRepo stores unlocked skills and achievements. Both sets only grow.
type UnlockRepo struct {
	db DBTX
}

func NewUnlockRepo(db DBTX) *UnlockRepo {
	return &UnlockRepo{db: db}
}

func (r *UnlockRepo) SaveSkills(ctx context.Context, ids []string) error {
	for i, id := range ids {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO unlocked_skills (id, seq) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING
		`, id, i)
		if err != nil {
			return fmt.Errorf("skill unlock upsert: %w", err)
		}
	}
	return nil
}

func (r *UnlockRepo) ListSkills(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM unlocked_skills ORDER BY seq ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("skill unlock list: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("skill unlock scan: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("skill unlock rows: %w", err)
	}
	return out, nil
}

func (r *UnlockRepo) SaveAchievements(ctx context.Context, unlocks []domain.AchievementUnlock) error {
	for _, u := range unlocks {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO unlocked_achievements (id, unlocked_at) VALUES (?, ?)
			ON CONFLICT(id) DO NOTHING
		`, u.ID, formatTime(u.UnlockedAt))
		if err != nil {
			return fmt.Errorf("achievement unlock upsert: %w", err)
		}
	}
	return nil
}

func (r *UnlockRepo) ListAchievements(ctx context.Context) ([]domain.AchievementUnlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, unlocked_at FROM unlocked_achievements ORDER BY unlocked_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("achievement unlock list: %w", err)
	}
	defer rows.Close()

	var out []domain.AchievementUnlock
	for rows.Next() {
		var (
			u  domain.AchievementUnlock
			at string
		)
		if err := rows.Scan(&u.ID, &at); err != nil {
			return nil, fmt.Errorf("achievement unlock scan: %w", err)
		}
		if u.UnlockedAt, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("achievement unlock rows: %w", err)
	}
	return out, nil
}
