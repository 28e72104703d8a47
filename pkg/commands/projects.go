package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/runner/projects"
	"tableflip.dev/daytree/pkg/store"
)

func addProjects(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "list projects and their stored days",
		Example: `
daytree projects
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := projects.Projects{Persistence: p}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}
