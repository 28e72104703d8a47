// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// ProjectOptions captures the project/day addressing flags shared by most
// commands.
type ProjectOptions struct {
	Project string
	Day     string
	AllDays bool
}

// AddProjectArgs wires the project and day flags on the provided command.
func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().StringVarP(&o.Project, "project", "p", "inbox",
		"Specify the project.")
	cmd.Flags().StringVar(&o.Day, "day", "",
		`Specify the day, example: --day="2026-08-26". Defaults to today.`)
}

// AddAllDaysArg registers the flag that widens a command to every stored day.
func AddAllDaysArg(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().BoolVar(&o.AllDays, "all", false,
		"Operate on every stored day of the project.")
}
