package root

import (
	"github.com/spf13/cobra"

	"lifequest/internal/engine"
)

// newDispatchCmd exposes the JSON action vocabulary used by conversational
// front-ends, e.g. lq dispatch complete_quest '{"id":"..."}'.
func newDispatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dispatch <action> [json]",
		Short: "Apply a named action with a JSON payload",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			if len(args) == 2 {
				payload = []byte(args[1])
			}
			a, err := engine.DecodeAction(args[0], payload)
			if err != nil {
				return err
			}
			_, err = dispatch(cmd, a)
			return err
		},
	}

	return cmd
}
