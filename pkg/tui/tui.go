// Package tui is the interactive outline editor: a full-screen Bubble Tea
// program over one project/day tree, with keyboard editing, mouse
// selection (click, shift-click, marquee), and drag reparenting.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/daytree/pkg/app"
)

// Run opens the outline editor on the given project and day and blocks
// until the user quits. Pending edits are flushed on exit.
func Run(ctx context.Context, svc *app.Service, project, day string) error {
	if day == "" {
		day = app.Today()
	}
	forest, err := svc.Tree(ctx, project, day)
	if err != nil {
		return fmt.Errorf("tui: load %s/%s: %w", project, day, err)
	}

	m := newModel(svc, project, day, forest)
	defer m.ed.Flush()

	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}
