package storage

import (
	"context"
	"fmt"

	"lifequest/internal/domain"
)

// HealthRepo stores the append-only health activity log.
type HealthRepo struct {
	db DBTX
}

func NewHealthRepo(db DBTX) *HealthRepo {
	return &HealthRepo{db: db}
}

func (r *HealthRepo) AppendNew(ctx context.Context, log []domain.HealthLogEntry) error {
	for i, h := range log {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO health_log (id, seq, type, at, minutes, xp_awarded, health_delta, energy_delta)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`, h.ID, i, string(h.Type), formatTime(h.At), h.Minutes, h.XPAwarded, h.HealthDelta, h.EnergyDelta)
		if err != nil {
			return fmt.Errorf("health log insert: %w", err)
		}
	}
	return nil
}

func (r *HealthRepo) ListAll(ctx context.Context) ([]domain.HealthLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, type, at, minutes, xp_awarded, health_delta, energy_delta
		FROM health_log
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("health log list: %w", err)
	}
	defer rows.Close()

	var out []domain.HealthLogEntry
	for rows.Next() {
		var (
			h  domain.HealthLogEntry
			t  string
			at string
		)
		if err := rows.Scan(&h.ID, &t, &at, &h.Minutes, &h.XPAwarded, &h.HealthDelta, &h.EnergyDelta); err != nil {
			return nil, fmt.Errorf("health log scan: %w", err)
		}
		h.Type = domain.HealthActivityType(t)
		if h.At, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("health log rows: %w", err)
	}
	return out, nil
}
