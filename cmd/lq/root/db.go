package root

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifequest/internal/config"
	"lifequest/internal/engine"
	"lifequest/internal/logging"
	"lifequest/internal/storage"
	"lifequest/internal/ui"
)

var (
	flagConfig string
	flagDB     string
)

func resolveDBPath(cfg config.Config) (string, error) {
	if flagDB != "" {
		return flagDB, nil
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, nil
	}
	return storage.DefaultDBPath()
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		return nil, nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	catalog := engine.DefaultCatalog()
	if cfg.AchievementsFile != "" {
		defs, err := engine.LoadAchievements(cfg.AchievementsFile)
		if err != nil {
			return nil, nil, err
		}
		catalog.Achievements = defs
	}

	path, err := resolveDBPath(cfg)
	if err != nil {
		return nil, nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, nil, err
	}
	logger.WithField("db", path).Debug("database opened")

	svc := engine.NewService(db, engine.NewEngine(catalog),
		engine.WithLocation(loc),
		engine.WithLogger(logger),
		engine.WithPlayerDefaults(cfg.PlayerName, cfg.StreakGoal),
	)
	cleanup := func() {
		_ = db.Close()
	}
	return svc, cleanup, nil
}

// dispatch opens the service, applies a and prints the outcome.
func dispatch(cmd *cobra.Command, a engine.Action) (*engine.Outcome, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	out, err := svc.Dispatch(ctx, a)
	if err != nil {
		return nil, err
	}
	printOutcome(cmd, out)
	return out, nil
}

func printOutcome(cmd *cobra.Command, out *engine.Outcome) {
	w := cmd.OutOrStdout()
	if out.Conflict != engine.ConflictNone {
		fmt.Fprintln(w, ui.Warn.Render(ui.IconWarn+" "+out.Message))
		return
	}
	fmt.Fprintln(w, ui.Good.Render(ui.IconSparkle+" "+out.Message))
	if out.LevelsGained > 0 {
		fmt.Fprintln(w, ui.BadgeLevelUp)
	}
	if out.EntityID != "" && createdBy[out.Action] {
		fmt.Fprintln(w, ui.Muted.Render("id "+out.EntityID))
	}
}

var createdBy = map[engine.ActionName]bool{
	engine.ActAddQuest:        true,
	engine.ActAcceptTemplate:  true,
	engine.ActAddAction:       true,
	engine.ActAddChallenge:    true,
	engine.ActAddJournal:      true,
	engine.ActAddJournalEntry: true,
}
