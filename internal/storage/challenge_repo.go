package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifequest/internal/domain"
)

// ChallengeRepo persists streak challenges with their check-in history and
// milestone rewards.
type ChallengeRepo struct {
	db DBTX
}

func NewChallengeRepo(db DBTX) *ChallengeRepo {
	return &ChallengeRepo{db: db}
}

func (r *ChallengeRepo) ReplaceAll(ctx context.Context, challenges []domain.StreakChallenge) error {
	for _, stmt := range []string{
		`DELETE FROM challenge_checkins`,
		`DELETE FROM challenge_rewards`,
		`DELETE FROM challenges`,
	} {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("challenge clear: %w", err)
		}
	}

	for i, c := range challenges {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO challenges (
				id, seq, title, description, difficulty,
				current_streak, longest_streak, is_active, start_date, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, c.ID, i, c.Title, c.Description, string(c.Difficulty),
			c.CurrentStreak, c.LongestStreak, boolToInt(c.IsActive), formatTimePtr(c.StartDate), formatTime(c.CreatedAt))
		if err != nil {
			return fmt.Errorf("challenge insert: %w", err)
		}
		for j, ci := range c.CheckIns {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO challenge_checkins (challenge_id, seq, date, success, notes)
				VALUES (?, ?, ?, ?, ?)
			`, c.ID, j, formatTime(ci.Date), boolToInt(ci.Success), ci.Notes)
			if err != nil {
				return fmt.Errorf("checkin insert: %w", err)
			}
		}
		for _, rw := range c.Rewards {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO challenge_rewards (challenge_id, days_milestone, xp_reward, gold_reward, title)
				VALUES (?, ?, ?, ?, ?)
			`, c.ID, rw.DaysMilestone, rw.XPReward, rw.GoldReward, rw.Title)
			if err != nil {
				return fmt.Errorf("challenge reward insert: %w", err)
			}
		}
	}
	return nil
}

func (r *ChallengeRepo) ListAll(ctx context.Context) ([]domain.StreakChallenge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, difficulty, current_streak, longest_streak,
			is_active, start_date, created_at
		FROM challenges
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("challenge list: %w", err)
	}

	var out []domain.StreakChallenge
	for rows.Next() {
		var (
			c          domain.StreakChallenge
			difficulty string
			active     int
			start      sql.NullString
			createdAt  string
		)
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &difficulty, &c.CurrentStreak, &c.LongestStreak,
			&active, &start, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("challenge scan: %w", err)
		}
		c.Difficulty = domain.ChallengeDifficulty(difficulty)
		c.IsActive = active != 0
		if c.StartDate, err = parseNullTime(start); err != nil {
			rows.Close()
			return nil, err
		}
		if c.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("challenge list rows: %w", err)
	}
	// Close before issuing the child queries; the pool holds one connection.
	rows.Close()

	for i := range out {
		if out[i].CheckIns, err = r.listCheckIns(ctx, out[i].ID); err != nil {
			return nil, err
		}
		if out[i].Rewards, err = r.listRewards(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *ChallengeRepo) listCheckIns(ctx context.Context, challengeID string) ([]domain.CheckIn, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT date, success, notes FROM challenge_checkins
		WHERE challenge_id = ?
		ORDER BY seq ASC
	`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("checkin list: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckIn
	for rows.Next() {
		var (
			ci      domain.CheckIn
			date    string
			success int
		)
		if err := rows.Scan(&date, &success, &ci.Notes); err != nil {
			return nil, fmt.Errorf("checkin scan: %w", err)
		}
		if ci.Date, err = parseTime(date); err != nil {
			return nil, err
		}
		ci.Success = success != 0
		out = append(out, ci)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("checkin rows: %w", err)
	}
	return out, nil
}

func (r *ChallengeRepo) listRewards(ctx context.Context, challengeID string) ([]domain.MilestoneReward, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT days_milestone, xp_reward, gold_reward, title FROM challenge_rewards
		WHERE challenge_id = ?
		ORDER BY days_milestone ASC
	`, challengeID)
	if err != nil {
		return nil, fmt.Errorf("challenge reward list: %w", err)
	}
	defer rows.Close()

	var out []domain.MilestoneReward
	for rows.Next() {
		var m domain.MilestoneReward
		if err := rows.Scan(&m.DaysMilestone, &m.XPReward, &m.GoldReward, &m.Title); err != nil {
			return nil, fmt.Errorf("challenge reward scan: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("challenge reward rows: %w", err)
	}
	return out, nil
}
