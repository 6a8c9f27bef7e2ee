package root

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"lifequest/internal/domain"
	"lifequest/internal/engine"
)

func newAddCmd() *cobra.Command {
	var (
		questType  string
		priority   string
		difficulty string
		category   string
		tags       string
		xp         int
		gold       int
		minutes    int
		energy     int
		anxiety    int
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a quest",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			qt, err := domain.ParseQuestType(questType)
			if err != nil {
				return err
			}
			pr, err := domain.ParsePriority(priority)
			if err != nil {
				return err
			}
			diff, err := engine.ParseDifficulty(difficulty)
			if err != nil {
				return err
			}
			reward := domain.ComputedReward()
			if cmd.Flags().Changed("gold") {
				reward = domain.ExplicitReward(gold)
			}
			var tagList []string
			if tags != "" {
				tagList = strings.Split(tags, ",")
			}

			_, err = dispatch(cmd, engine.AddQuest{
				Title:          args[0],
				Type:           qt,
				Category:       category,
				Priority:       pr,
				XPReward:       xp,
				GoldReward:     reward,
				Difficulty:     diff,
				EstimatedTime:  minutes,
				EnergyRequired: energy,
				AnxietyLevel:   anxiety,
				Tags:           tagList,
			})
			return err
		},
	}

	cmd.Flags().StringVarP(&questType, "type", "t", "", "Quest type (main|side|daily|weekly)")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "Priority (low|medium|high|urgent)")
	cmd.Flags().StringVarP(&difficulty, "diff", "d", "", "Difficulty (1-5 or trivial|easy|medium|hard|epic)")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Free-form category")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma-separated tags")
	cmd.Flags().IntVarP(&xp, "xp", "x", 25, "Base XP reward")
	cmd.Flags().IntVarP(&gold, "gold", "g", 0, "Fixed gold reward (computed when omitted)")
	cmd.Flags().IntVarP(&minutes, "time", "m", 30, "Estimated time in minutes")
	cmd.Flags().IntVar(&energy, "energy", 0, "Energy required (0-10)")
	cmd.Flags().IntVar(&anxiety, "anxiety", 0, "Anxiety level (0-10)")

	return cmd
}
