package board

import (
	"errors"
	"fmt"
	"slices"

	"github.com/idilsaglam/kanban/internal/model"
)

var (
	ErrUnknownColumn   = errors.New("unknown column")
	ErrIndexOutOfRange = errors.New("index out of range")
)

// Location is a slot in a column.
type Location struct {
	Column model.ColumnKey
	Index  int
}

// Move relocates one task. A nil Dest means the gesture was cancelled.
// Dest.Index is read against the destination after the task has been
// taken out of its source column.
type Move struct {
	Source Location
	Dest   *Location
}

// Cancelled reports whether the move has no destination.
func (m Move) Cancelled() bool { return m.Dest == nil }

// ValidateMove checks m against b. MoveTask assumes a move that passes.
// A cancelled move is always valid; its source is never read.
func ValidateMove(b model.Board, m Move) error {
	if m.Cancelled() {
		return nil
	}
	src, ok := b.Column(m.Source.Column)
	if !ok {
		return fmt.Errorf("source %q: %w", m.Source.Column, ErrUnknownColumn)
	}
	if m.Source.Index < 0 || m.Source.Index >= len(src.Tasks) {
		return fmt.Errorf("source %s[%d] (have %d): %w",
			m.Source.Column, m.Source.Index, len(src.Tasks), ErrIndexOutOfRange)
	}
	dst, ok := b.Column(m.Dest.Column)
	if !ok {
		return fmt.Errorf("destination %q: %w", m.Dest.Column, ErrUnknownColumn)
	}
	limit := len(dst.Tasks)
	if m.Dest.Column == m.Source.Column {
		limit--
	}
	if m.Dest.Index < 0 || m.Dest.Index > limit {
		return fmt.Errorf("destination %s[%d] (max %d): %w",
			m.Dest.Column, m.Dest.Index, limit, ErrIndexOutOfRange)
	}
	return nil
}

// MoveTask takes the task at m.Source out of its column, re-labels its
// priority for m.Dest.Column and inserts it at m.Dest.Index. Columns not
// involved in the move are returned as they were.
// It panics on a move ValidateMove would reject.
func (s *Store) MoveTask(b model.Board, m Move) model.Board {
	if m.Cancelled() {
		return b
	}
	src := b.MustColumn(m.Source.Column)
	task := src.Tasks[m.Source.Index]
	task.Priority = model.PriorityFor(m.Dest.Column)

	src.Tasks = slices.Delete(slices.Clone(src.Tasks), m.Source.Index, m.Source.Index+1)
	if m.Dest.Column == m.Source.Column {
		src.Tasks = slices.Insert(src.Tasks, m.Dest.Index, task)
		return b.WithColumn(m.Source.Column, src)
	}

	dst := b.MustColumn(m.Dest.Column)
	dst.Tasks = slices.Insert(slices.Clone(dst.Tasks), m.Dest.Index, task)
	return b.WithColumn(m.Source.Column, src).WithColumn(m.Dest.Column, dst)
}
