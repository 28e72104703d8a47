package options

import (
	"github.com/spf13/cobra"
)

// InsertOptions
type InsertOptions struct {
	ParentID string
	AfterID  string
}

func AddInsertArgs(cmd *cobra.Command, o *InsertOptions) {
	cmd.Flags().StringVar(&o.ParentID, "under", "",
		"Nest the new task under the task with this id.")
	cmd.Flags().StringVar(&o.AfterID, "after", "",
		"Place the new task after the sibling with this id.")
}
