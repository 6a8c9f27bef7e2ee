package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Journals for mood, savings, gratitude and notes",
	}

	var kind string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a journal",
		Args:  exactlyOneID("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := engine.ParseJournalKind(kind)
			if err != nil {
				return err
			}
			_, err = dispatch(cmd, engine.AddJournal{Name: args[0], Kind: k})
			return err
		},
	}
	add.Flags().StringVarP(&kind, "kind", "k", "", "Journal kind (general|mood|savings|gratitude)")

	list := &cobra.Command{
		Use:   "list",
		Short: "List journals",
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
			fmt.Fprintln(w, ui.Heading(ui.IconBook, "Journals"))
			if len(s.Journals) == 0 {
				fmt.Fprintln(w, ui.Muted.Render("(no journals)"))
			}
			for _, j := range s.Journals {
				fmt.Fprintf(w, "- %s %s %s %s\n", ui.Muted.Render(j.ID), j.Name,
					ui.Muted.Render(string(j.Kind)), ui.Muted.Render(fmt.Sprintf("%d entries", len(j.Entries))))
			}
			return nil
		},
	}

	var (
		mood   int
		amount float64
	)
	entry := &cobra.Command{
		Use:   "entry <journal_id> <text>",
		Short: "Append an entry to a journal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := engine.AddJournalEntry{JournalID: args[0], Text: args[1]}
			if cmd.Flags().Changed("mood") {
				m := mood
				a.Mood = &m
			}
			if cmd.Flags().Changed("amount") {
				v := amount
				a.Amount = &v
			}
			_, err := dispatch(cmd, a)
			return err
		},
	}
	entry.Flags().IntVar(&mood, "mood", 0, "Mood rating (1-10)")
	entry.Flags().Float64Var(&amount, "amount", 0, "Amount saved")

	stats := &cobra.Command{
		Use:   "stats <journal_id>",
		Short: "Show journal statistics and an insight",
		Args:  exactlyOneID("journal_id"),
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
			i := s.JournalIndex(args[0])
			if i < 0 {
				return engine.NotFoundError{Kind: "journal", ID: args[0]}
			}
			j := s.Journals[i]
			st := engine.ComputeJournalStats(j, svc.Now())
			w := cmd.OutOrStdout()
			fmt.Fprintln(w, ui.Heading(ui.IconBook, j.Name))
			fmt.Fprintln(w, ui.LabelValue("Entries", fmt.Sprintf("%d total, %d today, %d this week, %d this month",
				st.TotalEntries, st.TodayEntries, st.WeekEntries, st.MonthEntries)))
			fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d days (best %d)", st.CurrentStreak, st.LongestStreak)))
			switch j.Kind {
			case domain.JournalMood:
				fmt.Fprintln(w, ui.LabelValue("Average mood", fmt.Sprintf("%.1f", st.AvgMood)))
			case domain.JournalSavings:
				fmt.Fprintln(w, ui.LabelValue(ui.IconGold+" Saved", fmt.Sprintf("%.2f", st.TotalSaved)))
			}
			fmt.Fprintln(w, engine.Insight(j.Kind, st))
			return nil
		},
	}

	cmd.AddCommand(add, list, entry, stats)
	return cmd
}
