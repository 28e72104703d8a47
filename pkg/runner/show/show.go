// Package show provides the runner logic for printing a day's task tree.
package show

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/node"
	"tableflip.dev/daytree/pkg/printers"
	"tableflip.dev/daytree/pkg/store"
)

// Show prints the task tree for one day, or every stored day of a project.
type Show struct {
	Project     string
	Day         string
	AllDays     bool
	ShowID      bool
	Persistence store.Persistence
}

func (n *Show) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not show, no persistence")
	}
	if n.Day == "" {
		n.Day = app.Today()
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	fmt.Println("")

	if !n.AllDays {
		return n.printDay(ctx, &pp, n.Day)
	}

	days := n.Persistence.Days(ctx, n.Project)
	if len(days) == 0 {
		pp.Title(n.Project)
		pp.Tree(nil)
		return nil
	}
	for _, day := range days {
		if err := n.printDay(ctx, &pp, day); err != nil {
			return err
		}
	}
	return nil
}

func (n *Show) printDay(ctx context.Context, pp *printers.PrettyPrint, day string) error {
	forest, err := n.Persistence.Load(ctx, n.Project, day)
	if err != nil {
		return err
	}
	pp.TitleWithCount(fmt.Sprintf("%s / %s%s", n.Project, day, todayMark(day)), node.Count(forest))
	pp.Tree(forest)
	pp.NewLine()
	return nil
}

func todayMark(day string) string {
	d, err := time.ParseInLocation(store.DayLayout, day, time.Local)
	if err != nil {
		return ""
	}
	if (node.Timestamp{Time: d}).SameDay(time.Now()) {
		return " (today)"
	}
	return ""
}
