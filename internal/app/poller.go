package app

import (
	"context"

	"go.uber.org/zap"

	"github.com/five82/marquee/internal/config"
	"github.com/five82/marquee/internal/systheme"
)

// StartWatcher probes the system colour scheme and, when it is readable,
// starts polling it until ctx is cancelled. It returns nil when system
// following is disabled or the host has no colour scheme signal.
func StartWatcher(ctx context.Context, cfg config.Config, detector systheme.Detector, logger *zap.Logger) *systheme.Watcher {
	w := newWatcher(cfg, detector, logger)
	if w == nil {
		return nil
	}
	w.Start(ctx)
	return w
}

// newWatcher builds and probes a watcher without starting it.
func newWatcher(cfg config.Config, detector systheme.Detector, logger *zap.Logger) *systheme.Watcher {
	if !cfg.FollowSystem {
		logger.Debug("system colour scheme disabled by config")
		return nil
	}
	if detector == nil {
		detector = systheme.Default()
	}

	w := systheme.NewWatcher(detector, cfg.PollInterval, logger)
	if !w.Probe() {
		logger.Info("no system colour scheme signal, using saved preference")
		return nil
	}
	logger.Debug("following system colour scheme",
		zap.String("detector", detector.Name()),
		zap.Duration("interval", cfg.PollInterval),
	)
	return w
}
