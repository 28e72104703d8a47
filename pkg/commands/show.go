package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	"tableflip.dev/daytree/pkg/runner/show"
	"tableflip.dev/daytree/pkg/store"
)

func addShow(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"get", "ls"},
		Short:   "show a day's task tree",
		Example: `
daytree show
daytree show --project work --day 2026-08-25
daytree show --all
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := show.Show{
				Project:     po.Project,
				Day:         po.Day,
				AllDays:     po.AllDays,
				ShowID:      io.ShowID,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddAllDaysArg(cmd, po)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
