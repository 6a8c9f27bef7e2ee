package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newSkillCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skill",
		Short: "Browse and unlock skills",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the skill tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.State(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconStar, fmt.Sprintf("Skills (%d points)", s.Player.SkillPoints)))
			for _, def := range svc.Engine().Catalog().Skills {
				mark := ui.Muted.Render(fmt.Sprintf("cost %d", def.Cost))
				if s.HasSkill(def.ID) {
					mark = ui.Good.Render("unlocked")
				}
				fmt.Fprintf(w, "- %s %s %s\n  %s\n", ui.Key.Render(def.ID), def.Name, mark, ui.Muted.Render(def.Description))
			}
			return nil
		},
	}

	unlock := &cobra.Command{
		Use:   "unlock <skill_id>",
		Short: "Spend skill points on a skill",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("skill_id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.UnlockSkill{ID: args[0]})
			return err
		},
	}

	cmd.AddCommand(list, unlock)
	return cmd
}
