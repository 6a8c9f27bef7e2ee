package storage

import (
	"database/sql"
	"fmt"
	"time"
)

// MainPlayerKey identifies the single local player row.
const MainPlayerKey = "main_user"

// LedgerEntry is one realized XP/gold grant.
type LedgerEntry struct {
	ID       int64
	At       time.Time
	Action   string
	Source   string
	SourceID string
	XP       int
	Gold     int
	Note     string
}

type scanner interface {
	Scan(dest ...any) error
}

// Times are stored as RFC3339Nano text so the round trip keeps the offset and
// nanoseconds.

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := formatTime(*t)
	return &s
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func parseNullTime(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseTime(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
