package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	"tableflip.dev/daytree/pkg/runner/complete"
	"tableflip.dev/daytree/pkg/store"
)

func addComplete(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}
	io := &options.IDOptions{}
	undo := false

	cmd := &cobra.Command{
		Use:     "complete",
		Aliases: []string{"done", "check"},
		Short:   "check a task off",
		Example: `
daytree complete <task id>
daytree complete --id <task id>
daytree complete --undo <task id>
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 && io.ID == "" {
				return errors.New("requires a task id")
			}
			return nil
		},
		RunE: func(_ *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			id := io.ID
			if id == "" {
				id = strings.Join(args, " ")
			}
			s := complete.Complete{
				Project:     po.Project,
				Day:         po.Day,
				ID:          id,
				Undo:        undo,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddIDArgs(cmd, io)
	cmd.Flags().BoolVar(&undo, "undo", false, "Uncheck instead.")

	topLevel.AddCommand(cmd)
}
