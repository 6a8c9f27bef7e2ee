package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newListCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
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
			skills := svc.Engine().Catalog().Skills

			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "Quest Log"))
			shown := 0
			for _, q := range s.Quests {
				if q.Status == domain.QuestCompleted && !all {
					continue
				}
				shown++
				fmt.Fprintf(w, "%s %s %s %s %s\n",
					ui.KindIcon(q.Type),
					ui.Muted.Render(q.ID),
					q.Title,
					ui.StatusText(string(q.Status)),
					ui.Gold.Render(fmt.Sprintf("+%d XP +%d gold", engine.QuestXP(&s, q, skills), engine.GoldReward(q))),
				)
			}
			if shown == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no quests)"))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include completed quests")
	return cmd
}
