package storage

import (
	"context"
	"fmt"
	"time"
)

// LedgerRepo is the append-only reward ledger.
type LedgerRepo struct {
	db DBTX
}

func NewLedgerRepo(db DBTX) *LedgerRepo {
	return &LedgerRepo{db: db}
}

func (r *LedgerRepo) Insert(ctx context.Context, e LedgerEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO reward_ledger (at, action, source, source_id, xp, gold, note)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, formatTime(e.At), e.Action, e.Source, e.SourceID, e.XP, e.Gold, e.Note)
	if err != nil {
		return 0, fmt.Errorf("ledger insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("ledger last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first.
func (r *LedgerRepo) Recent(ctx context.Context, limit int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at, action, source, source_id, xp, gold, note
		FROM reward_ledger
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("ledger recent: %w", err)
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var (
			e  LedgerEntry
			at string
		)
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Source, &e.SourceID, &e.XP, &e.Gold, &e.Note); err != nil {
			return nil, fmt.Errorf("ledger scan: %w", err)
		}
		if e.At, err = parseTime(at); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger rows: %w", err)
	}
	return out, nil
}

// TotalsSince sums XP and gold granted at or after since. Timestamps are
// compared after parsing since stored offsets may differ.
func (r *LedgerRepo) TotalsSince(ctx context.Context, since time.Time) (xp, gold int, err error) {
	rows, err := r.db.QueryContext(ctx, `SELECT at, xp, gold FROM reward_ledger`)
	if err != nil {
		return 0, 0, fmt.Errorf("ledger totals: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			at   string
			x, g int
		)
		if err := rows.Scan(&at, &x, &g); err != nil {
			return 0, 0, fmt.Errorf("ledger totals scan: %w", err)
		}
		t, err := parseTime(at)
		if err != nil {
			return 0, 0, err
		}
		if !t.Before(since) {
			xp += x
			gold += g
		}
	}
	if err := rows.Err(); err != nil {
		return 0, 0, fmt.Errorf("ledger totals rows: %w", err)
	}
	return xp, gold, nil
}
