// Package add provides the runner logic for inserting a task from the CLI.
package add

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/printers"
	"tableflip.dev/daytree/pkg/store"
	"tableflip.dev/daytree/pkg/tree"
)

// Add appends a task to a day's tree, optionally nested under a parent.
type Add struct {
	Project  string
	Day      string
	Text     string
	ParentID string
	AfterID  string

	Persistence store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}
	if n.Text == "" {
		return errors.New("nothing to add")
	}
	if n.Day == "" {
		n.Day = app.Today()
	}

	forest, err := n.Persistence.Load(ctx, n.Project, n.Day)
	if err != nil {
		return err
	}

	next, id := tree.Insert(forest, n.Text, n.ParentID, n.AfterID)
	if id == "" {
		return fmt.Errorf("no such parent %q", n.ParentID)
	}
	if err := n.Persistence.Save(n.Project, n.Day, next); err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.Title(fmt.Sprintf("%s / %s", n.Project, n.Day))
	pp.Tree(next)
	return nil
}
