package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	var rewards int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show player stats, unlocks and achievements",
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
			st := engine.BuildStatus(&s)
			catalog := svc.Engine().Catalog()
			w := cmd.OutOrStdout()

			fmt.Fprintln(w, ui.Heading(ui.IconSparkle, st.Name))
			fmt.Fprintln(w, ui.LabelValue("Level", st.Level))
			fmt.Fprintln(w, ui.LabelValue("XP", fmt.Sprintf("%d/%d %s", st.XP, st.XPToNextLevel, ui.Percent(st.XPPercent, 20))))
			fmt.Fprintln(w, ui.LabelValue(ui.IconHeart+" Health", fmt.Sprintf("%d/%d %s", st.Health, st.MaxHealth, ui.Percent(st.HealthPercent, 20))))
			fmt.Fprintln(w, ui.LabelValue(ui.IconBolt+" Energy", fmt.Sprintf("%d/%d %s", st.Energy, st.MaxEnergy, ui.Percent(st.EnergyPercent, 20))))
			fmt.Fprintln(w, ui.LabelValue(ui.IconGold+" Gold", st.Gold))
			fmt.Fprintln(w, ui.LabelValue(ui.IconStar+" Skill points", st.SkillPoints))
			fmt.Fprintln(w, ui.LabelValue(ui.IconFire+" Streak", fmt.Sprintf("%d days (best %d, goal %d)", st.CurrentStreak, st.LongestStreak, st.StreakGoal)))
			fmt.Fprintln(w, ui.LabelValue("Quests", fmt.Sprintf("%d active, %d completed", st.ActiveQuests, st.CompletedQuests)))
			fmt.Fprintln(w, ui.LabelValue("Challenges", fmt.Sprintf("%d active", st.ActiveChallenges)))
			fmt.Fprintln(w, "")

			if next, ok := engine.NextUnlock(st.Level, catalog.Templates); ok {
				fmt.Fprintln(w, ui.H2.Render(ui.IconLock+" Next unlock"))
				fmt.Fprintf(w, "- %s %s\n", next.Feature, ui.Muted.Render(fmt.Sprintf("(level %d)", next.Level)))
				fmt.Fprintln(w, "")
			}

			fmt.Fprintln(w, ui.H2.Render(fmt.Sprintf("%s Achievements (%d/%d)", ui.IconTrophy, st.Achievements, len(catalog.Achievements))))
			for _, a := range engine.Achievements(&s, catalog.Achievements) {
				if a.Earned {
					fmt.Fprintf(w, "- %s %s %s\n", a.Icon, ui.Good.Render(a.Name), ui.Muted.Render(a.UnlockedAt.Format("2006-01-02")))
				} else {
					fmt.Fprintf(w, "- %s %s %s\n", ui.IconLock, ui.Muted.Render(a.Name), ui.Muted.Render(a.Description))
				}
			}

			if rewards > 0 {
				recent, err := svc.RecentRewards(ctx, rewards)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "")
				fmt.Fprintln(w, ui.H2.Render(ui.IconGold+" Recent rewards"))
				for _, r := range recent {
					fmt.Fprintf(w, "- %s %s %s %s\n",
						ui.Muted.Render(r.At.Format("2006-01-02 15:04")),
						r.Source,
						ui.Gold.Render(fmt.Sprintf("+%d XP +%d gold", r.XP, r.Gold)),
						ui.Muted.Render(r.Note))
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&rewards, "rewards", "r", 5, "Number of recent rewards to show")
	return cmd
}
