// Package store persists a board in a single key-value slot.
//
// Backends live in subpackages: jsonstore keeps the slot in a file,
// redisstore keeps it in a Redis string. Both share the codec in this
// package so a slot written by one can be read by the other.
package store

import (
	"context"

	"github.com/idilsaglam/kanban/internal/model"
)

// DefaultKey names the slot the board is stored under.
const DefaultKey = "kanbanColumns"

// Adapter loads and saves the board.
//
// Load reports false when the slot is missing or its content is not a
// well-formed board; it never returns an error. Save overwrites the slot.
type Adapter interface {
	Load(ctx context.Context) (model.Board, bool)
	Save(ctx context.Context, b model.Board) error
}
