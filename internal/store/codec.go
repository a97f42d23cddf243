package store

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/kanban/internal/model"
)

// ErrMalformed marks slot content that is not a board.
var ErrMalformed = errors.New("malformed board")

//go:embed board.schema.json
var boardSchema []byte

const boardSchemaURL = "board.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(boardSchemaURL, bytes.NewReader(boardSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(boardSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return schema, nil
})

// Encode serializes b in the persisted layout. Strings that are not valid
// UTF-8 are rejected, since Decode could not give them back.
func Encode(b model.Board) ([]byte, error) {
	for _, k := range model.Keys() {
		c := b.MustColumn(k)
		if err := checkUTF8(k, c); err != nil {
			return nil, err
		}
		if c.Tasks == nil {
			c.Tasks = []model.Task{}
			b = b.WithColumn(k, c)
		}
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return data, nil
}

func checkUTF8(k model.ColumnKey, c model.Column) error {
	if !utf8.ValidString(c.Name) {
		return fmt.Errorf("%w: column %s: name is not valid UTF-8", ErrMalformed, k)
	}
	for i, t := range c.Tasks {
		for _, v := range []string{t.ID, t.Text, string(t.Priority), t.CreatedAt} {
			if !utf8.ValidString(v) {
				return fmt.Errorf("%w: %s[%d]: not valid UTF-8", ErrMalformed, k, i)
			}
		}
	}
	return nil
}

// Decode parses and validates slot content. Every failure wraps
// ErrMalformed.
func Decode(data []byte) (model.Board, error) {
	schema, err := compileSchema()
	if err != nil {
		return model.Board{}, err
	}

	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.Board{}, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}
	if err := schema.Validate(doc); err != nil {
		return model.Board{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var b model.Board
	if err := json.Unmarshal(data, &b); err != nil {
		return model.Board{}, fmt.Errorf("%w: json unmarshal: %v", ErrMalformed, err)
	}

	seen := make(map[string]bool, b.Len())
	for _, k := range model.Keys() {
		c := b.MustColumn(k)
		for i := range c.Tasks {
			id := c.Tasks[i].ID
			if seen[id] {
				return model.Board{}, fmt.Errorf("%w: duplicate task id %q", ErrMalformed, id)
			}
			seen[id] = true
			// Priority follows the column; stale labels are corrected here.
			c.Tasks[i].Priority = model.PriorityFor(k)
		}
	}
	return b, nil
}
