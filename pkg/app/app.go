// Package app provides the high-level service shared by the CLI and the
// interactive UI. It wraps persistence and tree rendering so frontends do
// not talk to the store directly.
package app

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/daytree/pkg/node"
	"tableflip.dev/daytree/pkg/outline"
	"tableflip.dev/daytree/pkg/store"
)

// Service provides high-level operations for daily task trees.
type Service struct {
	Persistence store.Persistence
}

// Today returns the current day key.
func Today() string {
	return time.Now().Format(store.DayLayout)
}

// Tree loads the stored tree for a project and day. A missing day yields an
// empty forest.
func (s *Service) Tree(ctx context.Context, project, day string) ([]*node.Node, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Load(ctx, project, day)
}

// Save persists a snapshot of the tree for a project and day.
func (s *Service) Save(project, day string, forest []*node.Node) error {
	if s.Persistence == nil {
		return errors.New("app: no persistence configured")
	}
	return s.Persistence.Save(project, day, forest)
}

// Projects returns the sorted list of known projects.
func (s *Service) Projects(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Projects(ctx), nil
}

// Days returns the sorted day keys stored for a project.
func (s *Service) Days(ctx context.Context, project string) ([]string, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Days(ctx, project), nil
}

// CarryOver moves the incomplete portion of a day's tree into another day.
func (s *Service) CarryOver(ctx context.Context, project, fromDay, toDay string) (int, error) {
	if s.Persistence == nil {
		return 0, errors.New("app: no persistence configured")
	}
	return s.Persistence.CarryOver(ctx, project, fromDay, toDay)
}

// Outline renders the stored tree for a project/day as an indented
// checklist, for end-of-day logs.
func (s *Service) Outline(ctx context.Context, project, day string) (string, error) {
	forest, err := s.Tree(ctx, project, day)
	if err != nil {
		return "", err
	}
	return outline.Serialize(forest), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errors.New("app: no persistence configured")
	}
	return s.Persistence.Watch(ctx)
}
