package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	"tableflip.dev/daytree/pkg/runner/ui"
	"tableflip.dev/daytree/pkg/store"
)

func addUI(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the interactive outline editor",
		Example: `
daytree ui
daytree ui --project work --day 2026-08-25
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			i := ui.UI{
				Project:     po.Project,
				Day:         po.Day,
				Persistence: p,
			}
			return i.Do(context.Background())
		},
	}

	options.AddProjectArgs(cmd, po)

	topLevel.AddCommand(cmd)
}
