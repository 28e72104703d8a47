// Package carry provides the runner logic for day-to-day carry-over.
package carry

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/printers"
	"tableflip.dev/daytree/pkg/store"
)

// Carry copies the incomplete portion of one day's tree into another day.
type Carry struct {
	Project string
	From    string
	To      string

	Persistence store.Persistence
}

func (n *Carry) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not carry over, no persistence")
	}
	if n.To == "" {
		n.To = app.Today()
	}
	if n.From == "" {
		return errors.New("carry over needs a source day")
	}

	added, err := n.Persistence.CarryOver(ctx, n.Project, n.From, n.To)
	if err != nil {
		return err
	}
	if added == 0 {
		fmt.Printf("nothing to carry from %s\n", n.From)
		return nil
	}

	forest, err := n.Persistence.Load(ctx, n.Project, n.To)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	fmt.Println("")
	pp.TitleWithCount(fmt.Sprintf("%s / %s", n.Project, n.To), added)
	pp.Tree(forest)
	return nil
}
