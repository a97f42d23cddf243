package redisstore

import (
	"context"
	"io"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/store"
)

var _ store.Adapter = (*Store)(nil)

func newTestStore(t *testing.T, prefix string) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := log.New()
	logger.SetOutput(io.Discard)
	return New(client, prefix, "", time.Second, logger), mr
}

func TestLoadMissingKey(t *testing.T) {
	s, _ := newTestStore(t, "")
	if _, ok := s.Load(context.Background()); ok {
		t.Fatal("expected absent board")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, "")
	bs := board.New()

	b := bs.AddTask(model.DefaultBoard(), "Write spec")
	b = bs.MoveTask(b, board.Move{
		Source: board.Location{Column: model.Todo, Index: 0},
		Dest:   &board.Location{Column: model.InProgress, Index: 0},
	})
	if err := s.Save(ctx, b); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists(store.DefaultKey) {
		t.Fatalf("expected key %q in redis", store.DefaultKey)
	}
	if ttl := mr.TTL(store.DefaultKey); ttl != 0 {
		t.Fatalf("board key should not expire, got TTL %v", ttl)
	}

	got, ok := s.Load(ctx)
	if !ok {
		t.Fatal("expected stored board")
	}
	if !got.Equal(b) {
		t.Fatalf("round trip mismatch:\n got %#v\nwant %#v", got, b)
	}
}

func TestPrefixedKey(t *testing.T) {
	s, mr := newTestStore(t, "kanban")
	if s.Key() != "kanban:kanbanColumns" {
		t.Fatalf("key: got %q", s.Key())
	}
	if err := s.Save(context.Background(), model.DefaultBoard()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if !mr.Exists("kanban:kanbanColumns") {
		t.Fatal("expected prefixed key in redis")
	}
}

func TestLoadMalformedValue(t *testing.T) {
	s, mr := newTestStore(t, "")
	if err := mr.Set(store.DefaultKey, `{"todo":`); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := s.Load(context.Background()); ok {
		t.Fatal("malformed value should read as absent")
	}
}

func TestLoadServerDown(t *testing.T) {
	s, mr := newTestStore(t, "")
	if err := s.Save(context.Background(), model.DefaultBoard()); err != nil {
		t.Fatalf("save: %v", err)
	}
	mr.Close()

	if _, ok := s.Load(context.Background()); ok {
		t.Fatal("unreachable server should read as absent")
	}
	if err := s.Save(context.Background(), model.DefaultBoard()); err == nil {
		t.Fatal("expected save error with server down")
	}
}

func TestDial(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	for name, opts := range map[string]Options{
		"addr": {Addr: mr.Addr()},
		"url":  {URL: "redis://" + mr.Addr() + "/0"},
	} {
		t.Run(name, func(t *testing.T) {
			client, err := Dial(opts)
			if err != nil {
				t.Fatalf("dial: %v", err)
			}
			defer client.Close()
			if err := client.Ping(context.Background()).Err(); err != nil {
				t.Fatalf("ping: %v", err)
			}
		})
	}

	if _, err := Dial(Options{}); err == nil {
		t.Fatal("expected error without address")
	}
	if _, err := Dial(Options{URL: "http://nope"}); err == nil {
		t.Fatal("expected error for bad url")
	}
}
