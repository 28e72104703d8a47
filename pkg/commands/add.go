package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
	"tableflip.dev/daytree/pkg/runner/add"
	"tableflip.dev/daytree/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}
	no := &options.InsertOptions{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "add a task to a day",
		Example: `
daytree add write the release notes
daytree add --project work --under 171dff69 review the fix
`,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires the task text")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := store.Load(nil)
			if err != nil {
				return err
			}
			s := add.Add{
				Project:     po.Project,
				Day:         po.Day,
				Text:        strings.Join(args, " "),
				ParentID:    no.ParentID,
				AfterID:     no.AfterID,
				Persistence: p,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddInsertArgs(cmd, no)

	topLevel.AddCommand(cmd)
}
