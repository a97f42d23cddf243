// Package redisstore keeps the board slot in a Redis string.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/store"
)

const DefaultTimeout = 2 * time.Second

// Store reads and writes one Redis key.
type Store struct {
	client  *redis.Client
	key     string
	timeout time.Duration
	logger  log.FieldLogger
}

// New wraps an existing client. prefix is prepended to key as "prefix:key".
func New(client *redis.Client, prefix, key string, timeout time.Duration, logger log.FieldLogger) *Store {
	if client == nil {
		panic("redisstore.New: client is nil")
	}
	if key == "" {
		key = store.DefaultKey
	}
	if prefix != "" {
		key = prefix + ":" + key
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Store{
		client:  client,
		key:     key,
		timeout: timeout,
		logger:  logger.WithField("key", key),
	}
}

// Options describes how to reach the server.
type Options struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

// Dial builds a client from opts. A URL (redis://...) wins over Addr.
func Dial(opts Options) (*redis.Client, error) {
	if opts.URL != "" {
		o, err := redis.ParseURL(opts.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		return redis.NewClient(o), nil
	}
	if opts.Addr == "" {
		return nil, errors.New("missing redis address")
	}
	return redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	}), nil
}

// Key is the Redis key backing the slot.
func (s *Store) Key() string { return s.key }

func (s *Store) Load(ctx context.Context) (model.Board, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			s.logger.Debug("no stored board")
		} else {
			s.logger.WithError(err).Warn("redis get")
		}
		return model.Board{}, false
	}
	b, err := store.Decode(data)
	if err != nil {
		s.logger.WithError(err).Warn("discarding stored board")
		return model.Board{}, false
	}
	return b, true
}

func (s *Store) Save(ctx context.Context, b model.Board) error {
	data, err := store.Encode(b)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", s.key, err)
	}
	s.logger.WithField("tasks", b.Len()).Debug("board saved")
	return nil
}

// Close releases the client.
func (s *Store) Close() error {
	return s.client.Close()
}
