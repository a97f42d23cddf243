package model

import (
	"fmt"
	"slices"
)

// ColumnKey identifies one of the board's fixed columns.
type ColumnKey string

const (
	Todo       ColumnKey = "todo"
	InProgress ColumnKey = "inProgress"
	Done       ColumnKey = "done"
)

// Keys returns the column keys in display order.
func Keys() []ColumnKey {
	return []ColumnKey{Todo, InProgress, Done}
}

// Valid reports whether k names one of the fixed columns.
func (k ColumnKey) Valid() bool {
	switch k {
	case Todo, InProgress, Done:
		return true
	}
	return false
}

// DefaultName is the display label a fresh board gives the column.
func (k ColumnKey) DefaultName() string {
	switch k {
	case Todo:
		return "To Do"
	case InProgress:
		return "In Progress"
	case Done:
		return "Done"
	}
	return string(k)
}

// PriorityFor maps a column to the priority its tasks carry.
// Unknown keys map to Low, same as the todo column.
func PriorityFor(k ColumnKey) Priority {
	switch k {
	case InProgress:
		return Medium
	case Done:
		return High
	}
	return Low
}

// Column is a named, ordered list of tasks. Index 0 is the top.
type Column struct {
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Board holds the three fixed columns. It is a value: copying a Board
// copies the column headers, and transitions never write into a task
// slice they did not allocate.
type Board struct {
	Todo       Column `json:"todo"`
	InProgress Column `json:"inProgress"`
	Done       Column `json:"done"`
}

// DefaultBoard returns the empty three-column board.
func DefaultBoard() Board {
	return Board{
		Todo:       Column{Name: Todo.DefaultName(), Tasks: []Task{}},
		InProgress: Column{Name: InProgress.DefaultName(), Tasks: []Task{}},
		Done:       Column{Name: Done.DefaultName(), Tasks: []Task{}},
	}
}

// Column returns the column stored under k.
func (b Board) Column(k ColumnKey) (Column, bool) {
	switch k {
	case Todo:
		return b.Todo, true
	case InProgress:
		return b.InProgress, true
	case Done:
		return b.Done, true
	}
	return Column{}, false
}

// MustColumn is Column for keys the caller already validated.
func (b Board) MustColumn(k ColumnKey) Column {
	c, ok := b.Column(k)
	if !ok {
		panic(fmt.Sprintf("model: unknown column %q", k))
	}
	return c
}

// WithColumn returns a copy of b with the column under k replaced.
func (b Board) WithColumn(k ColumnKey, c Column) Board {
	switch k {
	case Todo:
		b.Todo = c
	case InProgress:
		b.InProgress = c
	case Done:
		b.Done = c
	default:
		panic(fmt.Sprintf("model: unknown column %q", k))
	}
	return b
}

// Len is the number of tasks across all columns.
func (b Board) Len() int {
	return len(b.Todo.Tasks) + len(b.InProgress.Tasks) + len(b.Done.Tasks)
}

// Clone returns a deep copy of b.
func (b Board) Clone() Board {
	for _, k := range Keys() {
		c := b.MustColumn(k)
		c.Tasks = slices.Clone(c.Tasks)
		b = b.WithColumn(k, c)
	}
	return b
}

// Equal compares names and task sequences. A nil and an empty task list
// are equal.
func (b Board) Equal(o Board) bool {
	for _, k := range Keys() {
		x, y := b.MustColumn(k), o.MustColumn(k)
		if x.Name != y.Name || !slices.Equal(x.Tasks, y.Tasks) {
			return false
		}
	}
	return true
}
