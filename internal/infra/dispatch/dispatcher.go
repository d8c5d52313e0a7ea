package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/yanqian/smart-wardrobe/pkg/metrics"
)

// Action is one controller operation triggered from the console.
type Action func(ctx context.Context)

// Dispatcher runs actions independently of the request that triggered them.
type Dispatcher interface {
	Dispatch(name string, action Action)
}

// AsyncDispatcher runs every action on its own goroutine with a context detached
// from the caller. Actions are neither cancelled nor deduplicated.
type AsyncDispatcher struct {
	base   context.Context
	stats  *metrics.ActionStats
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewAsyncDispatcher constructs the dispatcher.
func NewAsyncDispatcher(stats *metrics.ActionStats, logger *slog.Logger) *AsyncDispatcher {
	if stats == nil {
		stats = metrics.NewActionStats()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AsyncDispatcher{
		base:   context.Background(),
		stats:  stats,
		logger: logger.With("component", "dispatch"),
	}
}

// Dispatch starts action in the background.
func (d *AsyncDispatcher) Dispatch(name string, action Action) {
	if action == nil {
		return
	}
	d.wg.Add(1)
	d.stats.Started(name)
	go func() {
		defer d.wg.Done()
		d.stats.Finished(name, run(d.base, name, action, d.logger))
	}()
}

// Wait blocks until every dispatched action returned or ctx is done.
func (d *AsyncDispatcher) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// InlineDispatcher runs actions on the caller's goroutine. Useful for tests.
type InlineDispatcher struct {
	Stats  *metrics.ActionStats
	Logger *slog.Logger
}

// Dispatch runs action before returning.
func (d InlineDispatcher) Dispatch(name string, action Action) {
	if action == nil {
		return
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if d.Stats != nil {
		d.Stats.Started(name)
	}
	panicked := run(context.Background(), name, action, logger)
	if d.Stats != nil {
		d.Stats.Finished(name, panicked)
	}
}

func run(ctx context.Context, name string, action Action, logger *slog.Logger) (panicked bool) {
	defer func() {
		if rec := recover(); rec != nil {
			panicked = true
			logger.Error("action panicked", "action", name, "panic", rec)
		}
	}()
	action(ctx)
	return false
}

var (
	_ Dispatcher = (*AsyncDispatcher)(nil)
	_ Dispatcher = InlineDispatcher{}
)
