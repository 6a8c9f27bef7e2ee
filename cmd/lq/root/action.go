package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func exactlyOneID(name string) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return errors.New(name + " is required")
		}
		return nil
	}
}

func newActionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "action",
		Short: "Repeatable actions with daily or weekly targets",
	}

	var (
		target int
		period string
		xp     int
		gold   int
	)
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a repeatable action",
		Args:  exactlyOneID("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.PeriodDaily
			if period != "" {
				parsed, err := domain.ParsePeriod(period)
				if err != nil {
					return err
				}
				p = parsed
			}
			_, err := dispatch(cmd, engine.AddAction{
				Title:             args[0],
				TargetCount:       target,
				Period:            p,
				XPPerCompletion:   xp,
				GoldPerCompletion: gold,
			})
			return err
		},
	}
	add.Flags().IntVarP(&target, "target", "n", 1, "Completions per period")
	add.Flags().StringVar(&period, "period", "daily", "Reset period (daily|weekly)")
	add.Flags().IntVarP(&xp, "xp", "x", 5, "XP per completion")
	add.Flags().IntVarP(&gold, "gold", "g", 1, "Gold per completion")

	list := &cobra.Command{
		Use:   "list",
		Short: "List repeatable actions and today's progress",
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
			now := svc.Now()
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconLoop, "Actions"))
			if len(s.Actions) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no actions)"))
			}
			for _, a := range s.Actions {
				n := engine.EffectiveCount(a, now)
				fmt.Fprintf(w, "- %s %s %s %d/%d %s\n",
					ui.Muted.Render(a.ID), a.Title, ui.Bar(n, a.TargetCount, 10), n, a.TargetCount,
					ui.Muted.Render(fmt.Sprintf("%s, %d total", a.Period, a.TotalCompletions)))
			}
			return nil
		},
	}

	inc := &cobra.Command{
		Use:   "inc <action_id>",
		Short: "Record one completion",
		Args:  exactlyOneID("action_id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.IncrementAction{ID: args[0]})
			return err
		},
	}

	reset := &cobra.Command{
		Use:   "reset <action_id>",
		Short: "Reset the current period's counter",
		Args:  exactlyOneID("action_id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.ResetAction{ID: args[0]})
			return err
		},
	}

	cmd.AddCommand(add, list, inc, reset)
	return cmd
}
