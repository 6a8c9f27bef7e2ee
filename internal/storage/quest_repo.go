package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"lifequest/internal/domain"
)

type QuestRepo struct {
	db DBTX
}

func NewQuestRepo(db DBTX) *QuestRepo {
	return &QuestRepo{db: db}
}

// ReplaceAll rewrites the quest table so it matches quests, keeping their order.
func (r *QuestRepo) ReplaceAll(ctx context.Context, quests []domain.Quest) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM quests`); err != nil {
		return fmt.Errorf("quest clear: %w", err)
	}
	for i, q := range quests {
		if err := r.insert(ctx, i, q); err != nil {
			return err
		}
	}
	return nil
}

func (r *QuestRepo) insert(ctx context.Context, seq int, q domain.Quest) error {
	var tagsJSON *string
	if len(q.Tags) > 0 {
		data, err := json.Marshal(q.Tags)
		if err != nil {
			return fmt.Errorf("marshal tags: %w", err)
		}
		s := string(data)
		tagsJSON = &s
	}
	var gold *int
	if v, ok := q.GoldReward.Value(); ok {
		gold = &v
	}
	var template *string
	if q.TemplateCode != "" {
		template = &q.TemplateCode
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO quests (
			id, seq, title, type, category, priority, status,
			xp_reward, gold_reward, difficulty, estimated_time,
			energy_required, anxiety_level, tags, template_code,
			created_at, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, q.ID, seq, q.Title, string(q.Type), q.Category, string(q.Priority), string(q.Status),
		q.XPReward, gold, int(q.Difficulty), q.EstimatedTime,
		q.EnergyRequired, q.AnxietyLevel, tagsJSON, template,
		formatTime(q.CreatedAt), formatTimePtr(q.CompletedAt))
	if err != nil {
		return fmt.Errorf("quest insert: %w", err)
	}
	return nil
}

func (r *QuestRepo) ListAll(ctx context.Context) ([]domain.Quest, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, type, category, priority, status,
			xp_reward, gold_reward, difficulty, estimated_time,
			energy_required, anxiety_level, tags, template_code,
			created_at, completed_at
		FROM quests
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("quest list: %w", err)
	}
	defer rows.Close()

	var out []domain.Quest
	for rows.Next() {
		q, err := scanQuest(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("quest list rows: %w", err)
	}
	return out, nil
}

func scanQuest(row scanner) (domain.Quest, error) {
	var (
		q          domain.Quest
		qType      string
		priority   string
		status     string
		gold       sql.NullInt64
		difficulty int
		tagsRaw    sql.NullString
		template   sql.NullString
		createdAt  string
		completed  sql.NullString
	)
	if err := row.Scan(
		&q.ID, &q.Title, &qType, &q.Category, &priority, &status,
		&q.XPReward, &gold, &difficulty, &q.EstimatedTime,
		&q.EnergyRequired, &q.AnxietyLevel, &tagsRaw, &template,
		&createdAt, &completed,
	); err != nil {
		return q, fmt.Errorf("quest scan: %w", err)
	}

	q.Type = domain.QuestType(qType)
	q.Priority = domain.Priority(priority)
	q.Status = domain.QuestStatus(status)
	q.Difficulty = domain.Difficulty(difficulty)
	q.GoldReward = domain.ComputedReward()
	if gold.Valid {
		q.GoldReward = domain.ExplicitReward(int(gold.Int64))
	}
	if template.Valid {
		q.TemplateCode = template.String
	}
	if tagsRaw.Valid && tagsRaw.String != "" {
		if err := json.Unmarshal([]byte(tagsRaw.String), &q.Tags); err != nil {
			return q, fmt.Errorf("unmarshal tags: %w", err)
		}
	}

	var err error
	if q.CreatedAt, err = parseTime(createdAt); err != nil {
		return q, fmt.Errorf("quest scan: %w", err)
	}
	if q.CompletedAt, err = parseNullTime(completed); err != nil {
		return q, fmt.Errorf("quest scan: %w", err)
	}
	return q, nil
}
