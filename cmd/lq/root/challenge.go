package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newChallengeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenge",
		Short: "Streak challenges with milestone rewards",
	}

	var (
		difficulty  string
		description string
		start       bool
	)
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a streak challenge",
		Args:  exactlyOneID("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := engine.ParseChallengeDifficulty(difficulty)
			if err != nil {
				return err
			}
			_, err = dispatch(cmd, engine.AddChallenge{
				Title:       args[0],
				Description: description,
				Difficulty:  d,
				Start:       start,
			})
			return err
		},
	}
	add.Flags().StringVarP(&difficulty, "diff", "d", "", "Difficulty (easy|medium|hard|extreme)")
	add.Flags().StringVar(&description, "desc", "", "Description")
	add.Flags().BoolVarP(&start, "start", "s", false, "Start the challenge immediately")

	list := &cobra.Command{
		Use:   "list",
		Short: "List challenges",
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
			fmt.Fprintln(w, ui.Heading(ui.IconFire, "Challenges"))
			if len(s.Challenges) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no challenges)"))
			}
			for _, c := range s.Challenges {
				status := "inactive"
				if c.IsActive {
					status = "active"
				}
				next := ""
				if ms, ok := engine.NextMilestone(c); ok {
					next = ui.Muted.Render(fmt.Sprintf("next: %s at %d days", ms.Title, ms.DaysMilestone))
				}
				fmt.Fprintf(w, "- %s %s %s %s %s\n",
					ui.Muted.Render(c.ID), c.Title, ui.StatusText(status),
					ui.Gold.Render(fmt.Sprintf("%d days (best %d)", c.CurrentStreak, c.LongestStreak)), next)
			}
			return nil
		},
	}

	startCmd := &cobra.Command{
		Use:   "start <challenge_id>",
		Short: "Start (or restart) a challenge",
		Args:  exactlyOneID("challenge_id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.StartChallenge{ID: args[0]})
			return err
		},
	}

	stop := &cobra.Command{
		Use:   "stop <challenge_id>",
		Short: "Stop a challenge, keeping its history",
		Args:  exactlyOneID("challenge_id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.StopChallenge{ID: args[0]})
			return err
		},
	}

	var (
		failed bool
		notes  string
	)
	checkin := &cobra.Command{
		Use:   "checkin <challenge_id>",
		Short: "Record today's check-in",
		Args:  exactlyOneID("challenge_id"),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := dispatch(cmd, engine.CheckIn{ID: args[0], Success: !failed, Notes: notes})
			return err
		},
	}
	checkin.Flags().BoolVar(&failed, "fail", false, "Record a failed day (resets the streak)")
	checkin.Flags().StringVar(&notes, "notes", "", "Notes for the day")

	stats := &cobra.Command{
		Use:   "stats <challenge_id>",
		Short: "Show challenge statistics",
		Args:  exactlyOneID("challenge_id"),
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
			i := s.ChallengeIndex(args[0])
			if i < 0 {
				return engine.NotFoundError{Kind: "challenge", ID: args[0]}
			}
			c := s.Challenges[i]
			st := engine.ChallengeStatsAt(c, svc.Now())
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconFire, c.Title))
			fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%d (best %d)", st.CurrentStreak, st.LongestStreak)))
			fmt.Fprintln(w, ui.LabelValue("Check-ins", fmt.Sprintf("%d (%d ok, %d failed)", st.TotalCheckIns, st.SuccessfulCheckIns, st.FailedCheckIns)))
			fmt.Fprintln(w, ui.LabelValue("Success rate", fmt.Sprintf("%.0f%%", st.SuccessRate)))
			fmt.Fprintln(w, ui.LabelValue("Last 7 days", fmt.Sprintf("%d check-ins, %.0f%%", st.WeeklyCheckIns, st.WeeklyRate)))
			fmt.Fprintln(w, ui.LabelValue("Days active", st.DaysActive))
			fmt.Fprintln(w, ui.H2.Render(ui.IconTrophy+" Milestones"))
			for _, m := range c.Rewards {
				mark := ui.IconLock
				if c.LongestStreak >= m.DaysMilestone {
					mark = ui.IconDone
				}
				fmt.Fprintf(w, "- %s %d days: %s %s\n", mark, m.DaysMilestone, m.Title,
					ui.Gold.Render(fmt.Sprintf("+%d XP +%d gold", m.XPReward, m.GoldReward)))
			}
			return nil
		},
	}

	cmd.AddCommand(add, list, startCmd, stop, checkin, stats)
	return cmd
}
