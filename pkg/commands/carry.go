package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	"tableflip.dev/daytree/pkg/runner/carry"
	"tableflip.dev/daytree/pkg/store"
)

func addCarry(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}
	co := &options.CarryOptions{}

	cmd := &cobra.Command{
		Use:   "carry",
		Short: "carry unfinished tasks into another day",
		Long: options.Wrap80("Copies every unfinished task, along with the " +
			"parents above it, from one day into another. Finished tasks stay " +
			"behind. Running it twice is safe."),
		Example: `
daytree carry --from 2026-08-25
daytree carry --from 2026-08-25 --to 2026-08-27
`,
		Args: func(_ *cobra.Command, _ []string) error {
			if co.From == "" {
				return errors.New("requires --from")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := carry.Carry{
				Project:     po.Project,
				From:        co.From,
				To:          co.To,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddCarryArgs(cmd, co)

	topLevel.AddCommand(cmd)
}
