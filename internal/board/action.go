package board

import "github.com/idilsaglam/kanban/internal/model"

// Action is a request to change the board.
type Action interface {
	isAction()
}

// AddAction submits the text of a new task.
type AddAction struct {
	Text string
}

// MoveAction carries a completed (or cancelled) drag.
type MoveAction struct {
	Move Move
}

func (AddAction) isAction()  {}
func (MoveAction) isAction() {}

// Reduce applies a to b and returns the resulting board.
func (s *Store) Reduce(b model.Board, a Action) model.Board {
	switch a := a.(type) {
	case AddAction:
		return s.AddTask(b, a.Text)
	case MoveAction:
		return s.MoveTask(b, a.Move)
	}
	return b
}
