package main

import (
	"io"
	"log/slog"

	"github.com/fentz26/stimer/internal/clock"
	"github.com/fentz26/stimer/internal/config"
	"github.com/fentz26/stimer/internal/logging"
	"github.com/fentz26/stimer/internal/store"
	"github.com/fentz26/stimer/internal/tracker"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// systemClock is swapped out by tests.
var systemClock clock.Clock = clock.System{}

// session holds everything one command invocation needs.
type session struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	store     *store.Store
	lifecycle *tracker.Lifecycle
	reports   *tracker.Aggregator
}

func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := config.Load(configPath, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, closer := logging.New(cfg.Log)
	logger = logger.With("invocation", uuid.NewString(), "command", cmd.Name())

	s, err := store.New(cfg.DB)
	if err != nil {
		logger.Error("open store failed", "db", cfg.DB, "error", err)
		closer.Close()
		return nil, &tracker.StorageError{Op: "open", Err: err}
	}
	if err := s.Ping(cmd.Context()); err != nil {
		logger.Error("ping store failed", "db", cfg.DB, "error", err)
		s.Close()
		closer.Close()
		return nil, &tracker.StorageError{Op: "open", Err: err}
	}
	logger.Debug("store opened", "db", cfg.DB)

	return &session{
		cfg:       cfg,
		logger:    logger,
		logCloser: closer,
		store:     s,
		lifecycle: tracker.NewLifecycle(s, systemClock, logger),
		reports:   tracker.NewAggregator(s, systemClock, logger),
	}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.logger.Error("close store failed", "error", err)
	}
	s.logCloser.Close()
}
