package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/daytree/pkg/commands/options"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "daytree",
		Short: options.Wrap80("Daily task trees on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addShow(topLevel)
	addAdd(topLevel)
	addComplete(topLevel)
	addCarry(topLevel)
	addLog(topLevel)
	addProjects(topLevel)
	addVersion(topLevel)
}
