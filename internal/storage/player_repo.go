package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"lifequest/internal/domain"
)

type PlayerRepo struct {
	db DBTX
}

func NewPlayerRepo(db DBTX) *PlayerRepo {
	return &PlayerRepo{db: db}
}

// Get returns the main player, or nil when none has been saved yet.
func (r *PlayerRepo) Get(ctx context.Context) (*domain.Player, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, level, xp, xp_to_next, gold, skill_points,
			current_streak, longest_streak, streak_goal, last_active,
			health, max_health, energy, max_energy, quests_completed
		FROM player WHERE key = ?
	`, MainPlayerKey)

	var (
		p          domain.Player
		lastActive sql.NullString
	)
	if err := row.Scan(
		&p.Name, &p.Level, &p.XP, &p.XPToNextLevel, &p.Gold, &p.SkillPoints,
		&p.CurrentStreak, &p.LongestStreak, &p.StreakGoal, &lastActive,
		&p.Health, &p.MaxHealth, &p.Energy, &p.MaxEnergy, &p.QuestsCompleted,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("player get: %w", err)
	}
	t, err := parseNullTime(lastActive)
	if err != nil {
		return nil, fmt.Errorf("player get: %w", err)
	}
	p.LastActiveDate = t
	return &p, nil
}

func (r *PlayerRepo) Save(ctx context.Context, p domain.Player) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO player (
			key, name, level, xp, xp_to_next, gold, skill_points,
			current_streak, longest_streak, streak_goal, last_active,
			health, max_health, energy, max_energy, quests_completed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			name = excluded.name,
			level = excluded.level,
			xp = excluded.xp,
			xp_to_next = excluded.xp_to_next,
			gold = excluded.gold,
			skill_points = excluded.skill_points,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			streak_goal = excluded.streak_goal,
			last_active = excluded.last_active,
			health = excluded.health,
			max_health = excluded.max_health,
			energy = excluded.energy,
			max_energy = excluded.max_energy,
			quests_completed = excluded.quests_completed
	`, MainPlayerKey, p.Name, p.Level, p.XP, p.XPToNextLevel, p.Gold, p.SkillPoints,
		p.CurrentStreak, p.LongestStreak, p.StreakGoal, formatTimePtr(p.LastActiveDate),
		p.Health, p.MaxHealth, p.Energy, p.MaxEnergy, p.QuestsCompleted)
	if err != nil {
		return fmt.Errorf("player save: %w", err)
	}
	return nil
}
