package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/idilsaglam/kanban/internal/app"
	"github.com/idilsaglam/kanban/internal/board"
	"github.com/idilsaglam/kanban/internal/config"
	"github.com/idilsaglam/kanban/internal/logging"
	"github.com/idilsaglam/kanban/internal/store"
	"github.com/idilsaglam/kanban/internal/store/jsonstore"
	"github.com/idilsaglam/kanban/internal/store/redisstore"
	"github.com/idilsaglam/kanban/internal/tui"
	"github.com/idilsaglam/kanban/internal/ui"
)

var _ tui.Controller = (*app.Controller)(nil)

// session is a loaded board plus the resources behind it.
type session struct {
	ctx    context.Context
	cfg    *config.Config
	logger *log.Logger
	ctrl   *app.Controller
}

// withBoard loads config, opens storage, loads the board and runs fn.
// interactive keeps log output off the terminal unless a log file is set.
func withBoard(opt Options, interactive bool, fn func(*session) int) int {
	cfg, err := config.Load(opt.ConfigPath)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	theme := cfg.Theme
	if opt.Theme != "" {
		theme = opt.Theme
	}
	ui.SetTheme(theme)

	var fallback io.Writer = os.Stderr
	if interactive {
		fallback = io.Discard
	}
	logger, logCloser, err := logging.Open(cfg.LogLevel, cfg.LogFile, fallback)
	if err != nil {
		ui.Fail(err.Error())
		return 1
	}
	defer logCloser.Close()

	adapter, closeStore, err := openStore(cfg, logger)
	if err != nil {
		ui.Fail("storage: " + err.Error())
		return 1
	}
	defer closeStore()

	reducer := board.New(board.WithDateFormat(cfg.DateFormat))
	s := &session{
		ctx:    context.Background(),
		cfg:    cfg,
		logger: logger,
		ctrl:   app.New(adapter, reducer, logger),
	}
	s.ctrl.Start(s.ctx)
	return fn(s)
}

func openStore(cfg *config.Config, logger *log.Logger) (store.Adapter, func(), error) {
	switch cfg.Storage {
	case config.StorageRedis:
		client, err := redisstore.Dial(redisstore.Options{
			URL:      cfg.Redis.URL,
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		s := redisstore.New(client, cfg.Redis.Prefix, cfg.Key, cfg.Redis.Timeout, logger)
		return s, func() {
			if err := s.Close(); err != nil {
				logger.WithError(err).Warn("close redis client")
			}
		}, nil
	case config.StorageFile:
		s, err := jsonstore.New(cfg.DataDir, cfg.Key, logger)
		if err != nil {
			return nil, nil, err
		}
		return s, func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
}
