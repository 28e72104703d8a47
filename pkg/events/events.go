// Package events defines the typed change notifications emitted by editing
// contexts so UIs and other observers can react without reaching into
// engine state.
package events

import (
	"fmt"
	"strings"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// ChangeType enumerates the coarse operations an editing context applies.
type ChangeType string

const (
	ChangeInsert   ChangeType = "insert"
	ChangeUpdate   ChangeType = "update"
	ChangeDelete   ChangeType = "delete"
	ChangeMove     ChangeType = "move"
	ChangeIndent   ChangeType = "indent"
	ChangeUnindent ChangeType = "unindent"
	ChangeUndo     ChangeType = "undo"
	ChangeRedo     ChangeType = "redo"
	ChangeSync     ChangeType = "sync"
)

// TreeChangeMsg announces a structural change to a project/day tree,
// whatever its origin (keyboard, drag, undo, inbound sync).
type TreeChangeMsg struct {
	Component ComponentID
	Action    ChangeType
	Project   string
	Day       string
	NodeIDs   []string
}

// Describe renders the change in a human-friendly format for logs.
func (m TreeChangeMsg) Describe() string {
	return fmt.Sprintf(`action:%q project:%q day:%q nodes:%q`,
		m.Action, m.Project, m.Day, strings.Join(m.NodeIDs, ","))
}

// SelectionMsg announces focus or multi-selection changes.
type SelectionMsg struct {
	Component ComponentID
	Focus     string
	IDs       []string
}

// Describe renders the selection in a human-friendly format for logs.
func (m SelectionMsg) Describe() string {
	return fmt.Sprintf(`focus:%q selected:%d`, m.Focus, len(m.IDs))
}
