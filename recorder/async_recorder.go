// Package recorder dispatches search history writes off the request path.
package recorder

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"article-search/logger"
	"article-search/port"
	appOtel "article-search/utils/otel"

	"golang.org/x/sync/semaphore"
)

type Config struct {
	// MaxInFlight bounds concurrent writes. Records beyond it are dropped.
	MaxInFlight int64
	// WriteTimeout bounds one write, independent of the request deadline.
	WriteTimeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		MaxInFlight:  64,
		WriteTimeout: 5 * time.Second,
	}
}

// AsyncRecorder implements port.SearchRecorder on top of a sink. Record
// returns immediately; the write runs in its own goroutine on a context
// that outlives the request.
type AsyncRecorder struct {
	sink   port.SearchHistorySink
	cfg    Config
	logger *slog.Logger
	slots  *semaphore.Weighted
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
}

var _ port.SearchRecorder = (*AsyncRecorder)(nil)

func NewAsyncRecorder(sink port.SearchHistorySink, cfg Config, log *slog.Logger) *AsyncRecorder {
	defaults := DefaultConfig()
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaults.MaxInFlight
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &AsyncRecorder{
		sink:   sink,
		cfg:    cfg,
		logger: log,
		slots:  semaphore.NewWeighted(cfg.MaxInFlight),
	}
}

func (r *AsyncRecorder) Record(ctx context.Context, searchWords string, userID int64) {
	ctx = logger.WithSearchWords(context.WithoutCancel(ctx), searchWords)

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		r.drop(ctx, "recorder closed")
		return
	}
	if !r.slots.TryAcquire(1) {
		r.drop(ctx, "too many in-flight writes")
		return
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer r.slots.Release(1)
		r.write(ctx, searchWords, userID)
	}()
}

func (r *AsyncRecorder) write(ctx context.Context, searchWords string, userID int64) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if err := r.sink.Insert(ctx, searchWords, userID); err != nil {
		appOtel.RecordHistoryWrite(ctx, appOtel.HistoryResultFailed)
		logger.NewContextLogger(r.logger).WithContext(ctx).ErrorContext(ctx, "search history write failed",
			"error", err,
		)
		return
	}
	appOtel.RecordHistoryWrite(ctx, appOtel.HistoryResultOK)
}

func (r *AsyncRecorder) drop(ctx context.Context, reason string) {
	appOtel.RecordHistoryWrite(ctx, appOtel.HistoryResultDropped)
	logger.NewContextLogger(r.logger).WithContext(ctx).WarnContext(ctx, "search history write dropped",
		"reason", reason,
	)
}

// Close stops accepting records and waits for in-flight writes or until ctx
// is done.
func (r *AsyncRecorder) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
