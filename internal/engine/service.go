package engine

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"lifequest/internal/domain"
	"lifequest/internal/storage"
)

// Service runs the engine against the SQLite store. It is the single writer:
// each Dispatch loads, reduces and saves inside one transaction under a mutex.
type Service struct {
	mu sync.Mutex

	db     *sql.DB
	engine *Engine
	log    logrus.FieldLogger

	clock      func() time.Time
	loc        *time.Location
	playerName string
	streakGoal int
}

type ServiceOption func(*Service)

func WithClock(fn func() time.Time) ServiceOption {
	return func(s *Service) { s.clock = fn }
}

// WithLocation sets where calendar days begin and end.
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l logrus.FieldLogger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPlayerDefaults configures the player created on first use.
func WithPlayerDefaults(name string, streakGoal int) ServiceOption {
	return func(s *Service) {
		s.playerName = name
		s.streakGoal = streakGoal
	}
}

func NewService(db *sql.DB, eng *Engine, opts ...ServiceOption) *Service {
	s := &Service{
		db:         db,
		engine:     eng,
		log:        logrus.StandardLogger(),
		clock:      time.Now,
		loc:        time.Local,
		playerName: "Adventurer",
		streakGoal: DefaultStreakGoal,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Engine() *Engine { return s.engine }

// Now is the service clock in the configured location.
func (s *Service) Now() time.Time {
	return s.clock().In(s.loc)
}

func (s *Service) load(ctx context.Context, db storage.DBTX) (domain.State, error) {
	st, found, err := storage.LoadState(ctx, db)
	if err != nil {
		return domain.State{}, err
	}
	if !found {
		return NewState(s.playerName, s.streakGoal), nil
	}
	return st, nil
}

// State returns a snapshot for read paths.
func (s *Service) State(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx, s.db)
}

// Dispatch applies a and persists the result together with its ledger rows.
// Conflicts and read-only actions leave the database untouched.
func (s *Service) Dispatch(ctx context.Context, a Action) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.Now()
	var out *Outcome
	err := storage.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		st, err := s.load(ctx, tx)
		if err != nil {
			return err
		}
		next, o, err := s.engine.Dispatch(st, a, now)
		if err != nil {
			return err
		}
		out = o
		if o.NoOp {
			return nil
		}

		if err := storage.SaveState(ctx, tx, next); err != nil {
			return err
		}
		ledger := storage.NewLedgerRepo(tx)
		for _, g := range o.Grants {
			if _, err := ledger.Insert(ctx, storage.LedgerEntry{
				At:       now,
				Action:   string(o.Action),
				Source:   g.Source,
				SourceID: g.SourceID,
				XP:       g.XP,
				Gold:     g.Gold,
				Note:     g.Note,
			}); err != nil {
				return err
			}
		}
		return nil
	})

	name := "<nil>"
	if a != nil {
		name = string(a.ActionName())
	}
	if err != nil {
		s.log.WithError(err).WithField("action", name).Warn("dispatch rejected")
		return nil, err
	}

	entry := s.log.WithFields(logrus.Fields{
		"action":   name,
		"entity":   out.EntityID,
		"xp":       out.XP,
		"gold":     out.Gold,
		"levels":   out.LevelsGained,
		"conflict": string(out.Conflict),
	})
	if out.Conflict != ConflictNone {
		entry.Info("dispatch no-op")
	} else {
		entry.Debug("dispatch applied")
	}
	for _, id := range out.NewAchievements {
		s.log.WithField("achievement", id).Info("achievement unlocked")
	}
	return out, nil
}

// RecentRewards lists the latest ledger rows, newest first.
func (s *Service) RecentRewards(ctx context.Context, limit int) ([]storage.LedgerEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return storage.NewLedgerRepo(s.db).Recent(ctx, limit)
}
