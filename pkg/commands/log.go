package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	runnerlog "tableflip.dev/daytree/pkg/runner/log"
	"tableflip.dev/daytree/pkg/store"
)

func addLog(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:     "log",
		Aliases: []string{"outline"},
		Short:   "print a day as a markdown checklist",
		Example: `
daytree log
daytree log --project work --day 2026-08-25 >> notes.md
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := runnerlog.Log{
				Project:     po.Project,
				Day:         po.Day,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddProjectArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
