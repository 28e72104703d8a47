// Package log provides the runner logic for the end-of-day outline log.
package log

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/outline"
	"tableflip.dev/daytree/pkg/store"
)

// Log renders a day's tree as a markdown-style checklist on stdout, suited
// for pasting into standup notes or a journal.
type Log struct {
	Project string
	Day     string

	Persistence store.Persistence
}

func (n *Log) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not log, no persistence")
	}
	if n.Day == "" {
		n.Day = app.Today()
	}

	forest, err := n.Persistence.Load(ctx, n.Project, n.Day)
	if err != nil {
		return err
	}
	fmt.Print(outline.Serialize(forest))
	return nil
}
