package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS player (
			key TEXT PRIMARY KEY,
			name TEXT NOT NULL DEFAULT '',
			level INTEGER NOT NULL DEFAULT 1,
			xp INTEGER NOT NULL DEFAULT 0,
			xp_to_next INTEGER NOT NULL DEFAULT 100,
			gold INTEGER NOT NULL DEFAULT 0,
			skill_points INTEGER NOT NULL DEFAULT 0,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			streak_goal INTEGER NOT NULL DEFAULT 7,
			last_active TEXT,
			health INTEGER NOT NULL DEFAULT 100,
			max_health INTEGER NOT NULL DEFAULT 100,
			energy INTEGER NOT NULL DEFAULT 100,
			max_energy INTEGER NOT NULL DEFAULT 100,
			quests_completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS quests (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			type TEXT NOT NULL,
			category TEXT NOT NULL DEFAULT '',
			priority TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			xp_reward INTEGER NOT NULL,
			gold_reward INTEGER,
			difficulty INTEGER NOT NULL,
			estimated_time INTEGER NOT NULL,
			energy_required INTEGER NOT NULL DEFAULT 0,
			anxiety_level INTEGER NOT NULL DEFAULT 0,
			tags TEXT,
			template_code TEXT,
			created_at TEXT NOT NULL,
			completed_at TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS unlocked_skills (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS unlocked_achievements (
			id TEXT PRIMARY KEY,
			unlocked_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS repeatable_actions (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			target_count INTEGER NOT NULL,
			current_count INTEGER NOT NULL DEFAULT 0,
			period TEXT NOT NULL,
			reset_date TEXT NOT NULL,
			last_completed TEXT,
			xp_per_completion INTEGER NOT NULL DEFAULT 0,
			gold_per_completion INTEGER NOT NULL DEFAULT 0,
			total_completions INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			difficulty TEXT NOT NULL,
			current_streak INTEGER NOT NULL DEFAULT 0,
			longest_streak INTEGER NOT NULL DEFAULT 0,
			is_active INTEGER NOT NULL DEFAULT 0,
			start_date TEXT,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS challenge_checkins (
			challenge_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			date TEXT NOT NULL,
			success INTEGER NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (challenge_id, seq),
			FOREIGN KEY(challenge_id) REFERENCES challenges(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS challenge_rewards (
			challenge_id TEXT NOT NULL,
			days_milestone INTEGER NOT NULL,
			xp_reward INTEGER NOT NULL,
			gold_reward INTEGER NOT NULL,
			title TEXT NOT NULL,
			PRIMARY KEY (challenge_id, days_milestone),
			FOREIGN KEY(challenge_id) REFERENCES challenges(id) ON DELETE CASCADE
		);`,
		`CREATE TABLE IF NOT EXISTS journals (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			created_at TEXT NOT NULL
		);`,
		// Entries are append-only: rows are inserted once and never updated.
		`CREATE TABLE IF NOT EXISTS journal_entries (
			id TEXT PRIMARY KEY,
			journal_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			at TEXT NOT NULL,
			text TEXT NOT NULL,
			mood INTEGER,
			amount REAL,
			FOREIGN KEY(journal_id) REFERENCES journals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS health_log (
			id TEXT PRIMARY KEY,
			seq INTEGER NOT NULL,
			type TEXT NOT NULL,
			at TEXT NOT NULL,
			minutes INTEGER NOT NULL DEFAULT 0,
			xp_awarded INTEGER NOT NULL DEFAULT 0,
			health_delta INTEGER NOT NULL DEFAULT 0,
			energy_delta INTEGER NOT NULL DEFAULT 0
		);`,
		// Auditing every XP and gold grant.
		`CREATE TABLE IF NOT EXISTS reward_ledger (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			at TEXT NOT NULL,
			action TEXT NOT NULL,
			source TEXT NOT NULL,
			source_id TEXT NOT NULL DEFAULT '',
			xp INTEGER NOT NULL DEFAULT 0,
			gold INTEGER NOT NULL DEFAULT 0,
			note TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_quests_status ON quests(status);`,
		`CREATE INDEX IF NOT EXISTS idx_journal_entries_journal_id ON journal_entries(journal_id, seq);`,
		`CREATE INDEX IF NOT EXISTS idx_reward_ledger_at ON reward_ledger(at);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	// Columns added after the first release (ignore if already exists).
	alterStmts := []string{
		`ALTER TABLE health_log ADD COLUMN minutes INTEGER NOT NULL DEFAULT 0;`,
	}
	for _, stmt := range alterStmts {
		_, err := db.ExecContext(ctx, stmt)
		if err != nil && !strings.Contains(err.Error(), "duplicate column") {
			return fmt.Errorf("migrate alter: %w", err)
		}
	}

	return nil
}
