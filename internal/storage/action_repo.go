package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifequest/internal/domain"
)

type ActionRepo struct {
	db DBTX
}

func NewActionRepo(db DBTX) *ActionRepo {
	return &ActionRepo{db: db}
}

func (r *ActionRepo) ReplaceAll(ctx context.Context, actions []domain.RepeatableAction) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM repeatable_actions`); err != nil {
		return fmt.Errorf("action clear: %w", err)
	}
	for i, a := range actions {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO repeatable_actions (
				id, seq, title, target_count, current_count, period,
				reset_date, last_completed, xp_per_completion, gold_per_completion,
				total_completions, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, a.ID, i, a.Title, a.TargetCount, a.CurrentCount, string(a.Period),
			formatTime(a.ResetDate), formatTimePtr(a.LastCompletedDate), a.XPPerCompletion, a.GoldPerCompletion,
			a.TotalCompletions, formatTime(a.CreatedAt))
		if err != nil {
			return fmt.Errorf("action insert: %w", err)
		}
	}
	return nil
}

func (r *ActionRepo) ListAll(ctx context.Context) ([]domain.RepeatableAction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, target_count, current_count, period,
			reset_date, last_completed, xp_per_completion, gold_per_completion,
			total_completions, created_at
		FROM repeatable_actions
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("action list: %w", err)
	}
	defer rows.Close()

	var out []domain.RepeatableAction
	for rows.Next() {
		var (
			a         domain.RepeatableAction
			period    string
			resetDate string
			last      sql.NullString
			createdAt string
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.TargetCount, &a.CurrentCount, &period,
			&resetDate, &last, &a.XPPerCompletion, &a.GoldPerCompletion,
			&a.TotalCompletions, &createdAt); err != nil {
			return nil, fmt.Errorf("action scan: %w", err)
		}
		a.Period = domain.Period(period)
		if a.ResetDate, err = parseTime(resetDate); err != nil {
			return nil, err
		}
		if a.LastCompletedDate, err = parseNullTime(last); err != nil {
			return nil, err
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("action list rows: %w", err)
	}
	return out, nil
}
