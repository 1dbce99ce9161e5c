// Package watch re-renders the timeline on a fixed interval, for feeding
// a dashboard file or a tmux pane without re-running the CLI by hand.
package watch

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// RenderFunc produces one rendered timeline pass
type RenderFunc func() error

// Watcher runs a render function periodically until interrupted
type Watcher struct {
	interval time.Duration
	render   RenderFunc
	logger   *zap.Logger
}

// NewWatcher creates a new watcher
func NewWatcher(interval time.Duration, render RenderFunc, logger *zap.Logger) *Watcher {
	return &Watcher{
		interval: interval,
		render:   render,
		logger:   logger,
	}
}

// Run renders immediately, then on every tick, until the context is
// cancelled or SIGINT/SIGTERM arrives
func (w *Watcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	w.logger.Info("Watch mode started",
		zap.Duration("interval", w.interval))

	if err := w.render(); err != nil {
		w.logger.Error("Initial render failed", zap.Error(err))
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Watch mode stopped", zap.Error(ctx.Err()))
			return nil
		case sig := <-sigCh:
			w.logger.Info("Received signal, shutting down",
				zap.String("signal", sig.String()))
			return nil
		case <-ticker.C:
			if err := w.render(); err != nil {
				w.logger.Error("Render failed", zap.Error(err))
				continue
			}
			w.logger.Debug("Timeline re-rendered")
		}
	}
}
