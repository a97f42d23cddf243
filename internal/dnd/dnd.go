// Package dnd adapts drag-completion events to board moves.
//
// The event shape is the one drag-and-drop front-ends report when a drag
// ends: a source slot and an optional destination slot, each named by the
// droppable (column) id and an index. A null destination means the drag
// was cancelled or dropped outside any column.
package dnd

import (
	"encoding/json"
	"fmt"

	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/model"
)

// Location is one end of a drag.
type Location struct {
	DroppableID string `json:"droppableId"`
	Index       int    `json:"index"`
}

// DropResult is a completed drag.
type DropResult struct {
	Source      Location  `json:"source"`
	Destination *Location `json:"destination"`
}

// Cancel builds the event for a drag that ended nowhere.
func Cancel(src Location) DropResult {
	return DropResult{Source: src}
}

// Drop builds the event for a drag that ended on dst.
func Drop(src, dst Location) DropResult {
	return DropResult{Source: src, Destination: &dst}
}

// Parse decodes a drag-completion event.
func Parse(data []byte) (DropResult, error) {
	var r DropResult
	if err := json.Unmarshal(data, &r); err != nil {
		return DropResult{}, fmt.Errorf("parse drop event: %w", err)
	}
	if r.Source.DroppableID == "" {
		return DropResult{}, fmt.Errorf("parse drop event: missing source.droppableId")
	}
	return r, nil
}

// Move normalizes r into the board's move request.
func (r DropResult) Move() board.Move {
	m := board.Move{
		Source: board.Location{Column: model.ColumnKey(r.Source.DroppableID), Index: r.Source.Index},
	}
	if r.Destination != nil {
		m.Dest = &board.Location{
			Column: model.ColumnKey(r.Destination.DroppableID),
			Index:  r.Destination.Index,
		}
	}
	return m
}
