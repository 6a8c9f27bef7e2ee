package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"lifequest/internal/engine"
	"lifequest/internal/ui"
)

func newAcceptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accept <template_code>",
		Short: "Accept a quest template",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("template_code is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := dispatch(cmd, engine.AcceptTemplate{Code: args[0]})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n",
				ui.Muted.Render("💡 Complete it with:"),
				ui.Key.Render("lq do "+out.EntityID))
			return nil
		},
	}

	return cmd
}

func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "List quest templates and the levels that unlock them",
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
			fmt.Fprintln(w, ui.Heading(ui.IconScroll, "Quest Templates"))
			for _, v := range engine.Templates(s.Player.Level, svc.Engine().Catalog().Templates) {
				if v.Unlocked {
					fmt.Fprintf(w, "- %s %s %s\n", ui.Key.Render(v.Code), v.Title, ui.Gold.Render(fmt.Sprintf("+%d XP", v.XPReward)))
				} else {
					fmt.Fprintf(w, "- %s %s %s\n", ui.Muted.Render(v.Code), ui.Muted.Render(v.Title), ui.Muted.Render(fmt.Sprintf("%s level %d", ui.IconLock, v.MinLevel)))
				}
			}
			return nil
		},
	}

	return cmd
}
