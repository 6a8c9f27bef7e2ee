package root

import (
	"errors"

	"github.com/spf13/cobra"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
)

func newHealthCmd() *cobra.Command {
	var minutes int

	cmd := &cobra.Command{
		Use:   "health <exercise|sleep|meditation|hydration|nutrition>",
		Short: "Log a health activity",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("activity type is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := domain.ParseHealthActivity(args[0])
			if err != nil {
				return err
			}
			_, err = dispatch(cmd, engine.LogHealthActivity{Type: t, Minutes: minutes})
			return err
		},
	}

	cmd.Flags().IntVarP(&minutes, "minutes", "m", 30, "Duration in minutes")
	return cmd
}
