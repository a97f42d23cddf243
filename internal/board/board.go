// Package board holds the board transitions: creating tasks and moving
// them between columns. Every transition takes a Board and returns a new
// one; persistence is left to the caller.
package board

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/idilsaglam/kanban/internal/model"
)

// DefaultDateFormat mirrors a browser's en-US locale string.
const DefaultDateFormat = "1/2/2006, 3:04:05 PM"

// Loader yields a previously persisted board, if any.
type Loader interface {
	Load(ctx context.Context) (model.Board, bool)
}

// Store computes board transitions. The zero value is not usable; call New.
type Store struct {
	newID      func() string
	now        func() time.Time
	dateFormat string
}

// Option tweaks a Store.
type Option func(*Store)

// WithIDSource replaces the task id generator.
func WithIDSource(f func() string) Option {
	return func(s *Store) { s.newID = f }
}

// WithClock replaces the creation-time source.
func WithClock(f func() time.Time) Option {
	return func(s *Store) { s.now = f }
}

// WithDateFormat sets the time layout used for Task.CreatedAt.
func WithDateFormat(layout string) Option {
	return func(s *Store) {
		if layout != "" {
			s.dateFormat = layout
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		newID:      newTaskID,
		now:        time.Now,
		dateFormat: DefaultDateFormat,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// newTaskID returns a time-ordered UUID (v7), falling back to a random one.
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Initialize returns the persisted board when l has one, else the default
// board. A nil loader yields the default board.
func (s *Store) Initialize(ctx context.Context, l Loader) model.Board {
	if l == nil {
		return model.DefaultBoard()
	}
	if b, ok := l.Load(ctx); ok {
		return b
	}
	return model.DefaultBoard()
}

// AddTask appends a new Low priority task to the todo column.
// Blank text leaves the board unchanged. Invalid UTF-8 in text is
// replaced with U+FFFD so the task survives a save/load unchanged.
func (s *Store) AddTask(b model.Board, text string) model.Board {
	if strings.TrimSpace(text) == "" {
		return b
	}
	t := model.Task{
		ID:        s.newID(),
		Text:      strings.ToValidUTF8(text, "\uFFFD"),
		Priority:  model.PriorityFor(model.Todo),
		CreatedAt: s.now().Local().Format(s.dateFormat),
	}
	todo := b.Todo
	tasks := make([]model.Task, 0, len(todo.Tasks)+1)
	tasks = append(tasks, todo.Tasks...)
	todo.Tasks = append(tasks, t)
	return b.WithColumn(model.Todo, todo)
}
