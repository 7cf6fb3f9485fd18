package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/The-UnknownHacker/daydream-sydney-db/internal/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// RetryPolicy is a bounded linear backoff: attempt n waits n*Backoff.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func (p RetryPolicy) delay(attempt int) time.Duration {
	return time.Duration(attempt) * p.Backoff
}

func (p RetryPolicy) attempts() int {
	if p.Attempts < 1 {
		return 1
	}
	return p.Attempts
}

// Writer serializes every mutating sequence in the process. The store accepts
// one writer at a time, and check-then-insert sequences must not interleave.
type Writer struct {
	mu     sync.Mutex
	db     *gorm.DB
	policy RetryPolicy
	log    zerolog.Logger
	sleep  func(time.Duration)
}

func NewWriter(db *gorm.DB, policy RetryPolicy, logger zerolog.Logger) *Writer {
	return &Writer{
		db:     db,
		policy: policy,
		log:    logger,
		sleep:  time.Sleep,
	}
}

// Do runs fn while holding the write lock. fn is re-run from the start when it
// fails with a transient lock conflict, so it must re-check any state it reads.
// Once the lock is held the sequence is not cancellable: fn receives a handle
// detached from ctx cancellation.
func (w *Writer) Do(ctx context.Context, fn func(db *gorm.DB) error) error {
	waitStart := time.Now()
	w.mu.Lock()
	defer w.mu.Unlock()
	metrics.WriteLockWait.Observe(time.Since(waitStart).Seconds())

	logger := loggerFrom(ctx, w.log)
	db := w.db.WithContext(context.WithoutCancel(ctx))

	attempts := w.policy.attempts()
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn(db)
		if err == nil || !IsTransient(err) {
			return err
		}
		if attempt == attempts {
			break
		}

		delay := w.policy.delay(attempt)
		metrics.WriteRetries.Inc()
		logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", attempts).
			Dur("backoff", delay).
			Msg("store locked, retrying write")
		w.sleep(delay)
	}

	metrics.StoreUnavailable.Inc()
	logger.Error().Err(err).Int("attempts", attempts).Msg("giving up on write")
	return fmt.Errorf("%w: %d attempts: %w", ErrStoreUnavailable, attempts, err)
}

func loggerFrom(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if ctx != nil {
		if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
			return l
		}
	}
	return &fallback
}
