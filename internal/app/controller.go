// Package app owns the running board: it applies actions through the
// board reducer and persists every change.
package app

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/store"
)

// Controller holds the current board. Dispatch calls are serialized; each
// one finishes its save before the next starts.
type Controller struct {
	mu      sync.Mutex
	reducer *board.Store
	adapter store.Adapter
	logger  log.FieldLogger
	current model.Board
}

// New returns a controller showing the default board until Start runs.
func New(adapter store.Adapter, reducer *board.Store, logger log.FieldLogger) *Controller {
	if reducer == nil {
		reducer = board.New()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Controller{
		reducer: reducer,
		adapter: adapter,
		logger:  logger,
		current: model.DefaultBoard(),
	}
}

// Start loads the persisted board, falling back to the default one.
func (c *Controller) Start(ctx context.Context) model.Board {
	c.mu.Lock()
	defer c.mu.Unlock()

	var l board.Loader
	if c.adapter != nil {
		l = c.adapter
	}
	c.current = c.reducer.Initialize(ctx, l)
	c.logger.WithField("tasks", c.current.Len()).Debug("board loaded")
	return c.current
}

// Board returns the current board.
func (c *Controller) Board() model.Board {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Dispatch applies a and saves the result when it differs from the
// current board. The new board is kept even if the save fails; the save
// error is returned alongside it.
func (c *Controller) Dispatch(ctx context.Context, a board.Action) (model.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.apply(ctx, a)
}

// Move checks m against the current board and dispatches it. Moves from
// untrusted input go through here; an invalid move changes nothing.
func (c *Controller) Move(ctx context.Context, m board.Move) (model.Board, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := board.ValidateMove(c.current, m); err != nil {
		return c.current, err
	}
	return c.apply(ctx, board.MoveAction{Move: m})
}

func (c *Controller) apply(ctx context.Context, a board.Action) (model.Board, error) {
	prev := c.current
	next := c.reducer.Reduce(prev, a)
	if next.Equal(prev) {
		c.logger.WithField("action", actionName(a)).Debug("no change")
		return prev, nil
	}
	c.current = next
	c.logChange(a, prev, next)

	if c.adapter == nil {
		return next, nil
	}
	if err := c.adapter.Save(ctx, next); err != nil {
		c.logger.WithError(err).Error("save board")
		return next, fmt.Errorf("save board: %w", err)
	}
	return next, nil
}

func (c *Controller) logChange(a board.Action, prev, next model.Board) {
	entry := c.logger.WithField("action", actionName(a))
	switch a := a.(type) {
	case board.AddAction:
		if n := len(next.Todo.Tasks); n > 0 {
			entry = entry.WithField("task_id", next.Todo.Tasks[n-1].ID)
		}
	case board.MoveAction:
		m := a.Move
		moved := prev.MustColumn(m.Source.Column).Tasks[m.Source.Index]
		entry = entry.WithFields(log.Fields{
			"task_id": moved.ID,
			"from":    fmt.Sprintf("%s[%d]", m.Source.Column, m.Source.Index),
			"to":      fmt.Sprintf("%s[%d]", m.Dest.Column, m.Dest.Index),
		})
	}
	entry.Info("board changed")
}

func actionName(a board.Action) string {
	switch a.(type) {
	case board.AddAction:
		return "add"
	case board.MoveAction:
		return "move"
	}
	return fmt.Sprintf("%T", a)
}
