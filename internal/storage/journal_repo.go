package storage

import (
	"context"
	"database/sql"
	"fmt"

	"lifequest/internal/domain"
)

type JournalRepo struct {
	db DBTX
}

func NewJournalRepo(db DBTX) *JournalRepo {
	return &JournalRepo{db: db}
}

// SaveAll upserts journals and appends entries not stored yet. Existing entry
// rows are never rewritten.
func (r *JournalRepo) SaveAll(ctx context.Context, journals []domain.Journal) error {
	for i, j := range journals {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO journals (id, seq, name, kind, created_at) VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET seq = excluded.seq, name = excluded.name, kind = excluded.kind
		`, j.ID, i, j.Name, string(j.Kind), formatTime(j.CreatedAt))
		if err != nil {
			return fmt.Errorf("journal upsert: %w", err)
		}
		for k, e := range j.Entries {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO journal_entries (id, journal_id, seq, at, text, mood, amount)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO NOTHING
			`, e.ID, j.ID, k, formatTime(e.At), e.Text, e.Mood, e.Amount)
			if err != nil {
				return fmt.Errorf("journal entry insert: %w", err)
			}
		}
	}
	return nil
}

func (r *JournalRepo) ListAll(ctx context.Context) ([]domain.Journal, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, kind, created_at FROM journals ORDER BY seq ASC`)
	if err != nil {
		return nil, fmt.Errorf("journal list: %w", err)
	}

	var out []domain.Journal
	for rows.Next() {
		var (
			j         domain.Journal
			kind      string
			createdAt string
		)
		if err := rows.Scan(&j.ID, &j.Name, &kind, &createdAt); err != nil {
			rows.Close()
			return nil, fmt.Errorf("journal scan: %w", err)
		}
		j.Kind = domain.JournalKind(kind)
		if j.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("journal list rows: %w", err)
	}
	rows.Close()

	for i := range out {
		if out[i].Entries, err = r.listEntries(ctx, out[i].ID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *JournalRepo) listEntries(ctx context.Context, journalID string) ([]domain.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, at, text, mood, amount FROM journal_entries
		WHERE journal_id = ?
		ORDER BY seq ASC
	`, journalID)
	if err != nil {
		return nil, fmt.Errorf("journal entry list: %w", err)
	}
	defer rows.Close()

	var out []domain.JournalEntry
	for rows.Next() {
		var (
			e      domain.JournalEntry
			at     string
			mood   sql.NullInt64
			amount sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &at, &e.Text, &mood, &amount); err != nil {
			return nil, fmt.Errorf("journal entry scan: %w", err)
		}
		if e.At, err = parseTime(at); err != nil {
			return nil, err
		}
		if mood.Valid {
			v := int(mood.Int64)
			e.Mood = &v
		}
		if amount.Valid {
			v := amount.Float64
			e.Amount = &v
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal entry rows: %w", err)
	}
	return out, nil
}
