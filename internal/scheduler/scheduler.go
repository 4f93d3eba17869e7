// Package scheduler partitions the record set into batches and paces their
// dispatch against the submissions API.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/joseph-ayodele/kobo-uploader/internal/common"
	"github.com/joseph-ayodele/kobo-uploader/internal/dispatch"
	"github.com/joseph-ayodele/kobo-uploader/internal/source"
)

// Stats aggregates the whole run. Owned by the scheduler alone and updated
// only after each batch barrier, so no synchronization is needed.
type Stats struct {
	Total     int
	Succeeded int
	Failed    int
	Batches   int
	Elapsed   time.Duration
}

// Scheduler walks the record set in contiguous batches of at most batchSize,
// strictly in order, sleeping for the configured pause after each batch.
type Scheduler struct {
	dispatcher *dispatch.Dispatcher
	batchSize  int
	pause      time.Duration
	logger     *slog.Logger
}

func New(d *dispatch.Dispatcher, batchSize int, pause time.Duration, logger *slog.Logger) (*Scheduler, error) {
	if batchSize < 1 {
		return nil, common.NewAppError(common.CodeConfigError, "batch_size must be at least 1", common.ErrInvalidInput)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		dispatcher: d,
		batchSize:  batchSize,
		pause:      pause,
		logger:     logger,
	}, nil
}

// Run processes every record and returns aggregate statistics. Record-level
// failures never abort the run; the only errors out of here are context
// cancellation during the inter-batch pause.
func (s *Scheduler) Run(ctx context.Context, records []source.Record) (Stats, error) {
	start := time.Now()
	stats := Stats{Total: len(records)}

	for lo := 0; lo < len(records); lo += s.batchSize {
		hi := lo + s.batchSize
		if hi > len(records) {
			hi = len(records)
		}
		batch := records[lo:hi]
		batchStart := time.Now()

		outcomes := s.dispatcher.Dispatch(ctx, lo, batch)

		succeeded, failed := 0, 0
		for _, o := range outcomes {
			if o.Succeeded() {
				succeeded++
			} else {
				failed++
			}
		}
		stats.Succeeded += succeeded
		stats.Failed += failed
		stats.Batches++

		s.logger.Info("scheduler.batch_done",
			"batch", stats.Batches,
			"records", len(batch),
			"succeeded", succeeded,
			"failed", failed,
			"elapsed_ms", time.Since(batchStart).Milliseconds(),
		)

		// Fixed pacing delay after every batch, the last one included.
		if err := s.sleep(ctx); err != nil {
			stats.Elapsed = time.Since(start)
			return stats, err
		}
	}

	stats.Elapsed = time.Since(start)
	s.logger.Info("scheduler.run_done",
		"records", stats.Total,
		"batches", stats.Batches,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed,
		"elapsed_ms", stats.Elapsed.Milliseconds(),
	)
	return stats, nil
}

func (s *Scheduler) sleep(ctx context.Context) error {
	if s.pause <= 0 {
		return nil
	}
	t := time.NewTimer(s.pause)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
