// Package ui provides the runner that launches the interactive outline
// editor.
package ui

import (
	"context"

	"tableflip.dev/daytree/pkg/app"
	"tableflip.dev/daytree/pkg/store"
	"tableflip.dev/daytree/pkg/tui"
)

// UI opens the full-screen editor on a project and day.
type UI struct {
	Project string
	Day     string

	Persistence store.Persistence
}

func (n *UI) Do(ctx context.Context) error {
	svc := &app.Service{Persistence: n.Persistence}
	return tui.Run(ctx, svc, n.Project, n.Day)
}
