// Package projects provides the runner logic for listing known projects.
package projects

import (
	"context"
	"errors"
	"fmt"

	"github.com/gosuri/uitable"

	"tableflip.dev/daytree/pkg/store"
)

// Projects lists every stored project with its day span.
type Projects struct {
	Persistence store.Persistence
}

func (n *Projects) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not list projects, no persistence")
	}

	table := uitable.New()
	table.MaxColWidth = 50
	table.AddRow("PROJECT", "DAYS", "FIRST", "LAST")

	for _, project := range n.Persistence.Projects(ctx) {
		days := n.Persistence.Days(ctx, project)
		first, last := "", ""
		if len(days) > 0 {
			first, last = days[0], days[len(days)-1]
		}
		table.AddRow(project, len(days), first, last)
	}

	fmt.Println(table)
	return nil
}
