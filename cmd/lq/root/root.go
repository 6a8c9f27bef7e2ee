package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lifequest/internal/ui"
)

const Version = "0.1.0"

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lq",
		Short:         "LifeQuest: level up by getting things done",
		Long:          "LifeQuest is a local-first CLI/TUI that turns quests, habits, health and streaks into RPG progression.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Version = Version
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: <user config dir>/lifequest/config.yaml)")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path (overrides config)")

	cmd.AddCommand(
		newAddCmd(),
		newDoCmd(),
		newRmCmd(),
		newListCmd(),
		newStatusCmd(),
		newAcceptCmd(),
		newTemplatesCmd(),
		newHealthCmd(),
		newSkillCmd(),
		newActionCmd(),
		newChallengeCmd(),
		newJournalCmd(),
		newDispatchCmd(),
		newBoardCmd(),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
