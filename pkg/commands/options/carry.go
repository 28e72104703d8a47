package options

import (
	"github.com/spf13/cobra"
)

// CarryOptions
type CarryOptions struct {
	From string
	To   string
}

func AddCarryArgs(cmd *cobra.Command, o *CarryOptions) {
	cmd.Flags().StringVar(&o.From, "from", "",
		`Source day to carry from, example: --from="2026-08-25".`)
	cmd.Flags().StringVar(&o.To, "to", "",
		"Target day to carry into. Defaults to today.")
}
