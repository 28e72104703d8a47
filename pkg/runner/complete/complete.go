// Package complete provides the runner logic for checking tasks off.
package complete

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/node"
	"tableflip.dev/daytree/pkg/printers"
	"tableflip.dev/daytree/pkg/store"
	"tableflip.dev/daytree/pkg/tree"
)

// Complete toggles a task's completed state by id.
type Complete struct {
	Project string
	Day     string
	ID      string
	Undo    bool

	Persistence store.Persistence
}

// Do executes the completion for the configured task id.
func (n *Complete) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not complete, no persistence")
	}
	if n.Day == "" {
		n.Day = app.Today()
	}

	forest, err := n.Persistence.Load(ctx, n.Project, n.Day)
	if err != nil {
		return err
	}
	if node.Find(forest, n.ID) == nil {
		return fmt.Errorf("no task %q on %s", n.ID, n.Day)
	}

	completed := !n.Undo
	next := tree.Update(forest, n.ID, tree.Patch{Completed: &completed})
	if err := n.Persistence.Save(n.Project, n.Day, next); err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: true}
	fmt.Println("")
	pp.Title(fmt.Sprintf("%s / %s", n.Project, n.Day))
	pp.Tree(next)
	return nil
}
