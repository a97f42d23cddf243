package jsonstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/store"
)

// JSON-backed slot. Single file, human-readable, portable.
// No locking; the board has one writer.

// Store keeps the board in <dir>/<key>.json.
type Store struct {
	path   string
	logger log.FieldLogger
}

// New returns a file slot for key under dir. An empty dir means the
// working directory.
func New(dir, key string, logger log.FieldLogger) (*Store, error) {
	if key == "" {
		key = store.DefaultKey
	}
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	p := filepath.Join(dir, key+".json")
	return &Store{
		path:   p,
		logger: logger.WithField("path", p),
	}, nil
}

// Path is the file backing the slot.
func (s *Store) Path() string { return s.path }

func (s *Store) Load(ctx context.Context) (model.Board, bool) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.WithError(err).Warn("read board file")
		} else {
			s.logger.Debug("no board file")
		}
		return model.Board{}, false
	}
	board, err := store.Decode(b)
	if err != nil {
		s.logger.WithError(err).Warn("discarding stored board")
		return model.Board{}, false
	}
	return board, true
}

func (s *Store) Save(ctx context.Context, b model.Board) error {
	data, err := store.Encode(b)
	if err != nil {
		return err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return fmt.Errorf("json indent: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	// Write next to the target and rename so a crash never leaves half a board.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(out.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	s.logger.WithField("tasks", b.Len()).Debug("board saved")
	return nil
}
