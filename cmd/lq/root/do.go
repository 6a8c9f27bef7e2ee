package root

import (
	"errors"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
)

func newDoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "do <quest_id>",
		Short: "Complete a quest and claim its rewards",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.CompleteQuest{ID: args[0]})
			return err
		},
	}

	return cmd
}

func newRmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rm <quest_id>",
		Short: "Delete a quest (rewards already earned are kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("quest_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.DeleteQuest{ID: args[0]})
			return err
		},
	}

	return cmd
}
