// Package dispatch fans one batch of records out to the submissions API
// under a bounded worker pool.
package dispatch

import (
	"context"
	"log/slog"
	"sync"

	"github.com/joseph-ayodele/kobo-uploader/internal/payload"
	"github.com/joseph-ayodele/kobo-uploader/internal/source"
	"github.com/joseph-ayodele/kobo-uploader/internal/submit"
)

// Sender delivers one payload and reports its terminal outcome.
// *submit.Requester is the real implementation; *submit.DryRun rehearses.
type Sender interface {
	Send(ctx context.Context, index int, body map[string]any) submit.Outcome
}

// Dispatcher runs one batch at a time: payloads are built up front, then
// submitted through at most `workers` concurrent sends. Dispatch does not
// return until every record in the batch has a terminal outcome.
type Dispatcher struct {
	sender  Sender
	builder *payload.Builder
	logger  *slog.Logger
	workers int
}

type Option func(*Dispatcher)

func WithWorkers(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.workers = n
		}
	}
}

func NewDispatcher(sender Sender, builder *payload.Builder, logger *slog.Logger, opts ...Option) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	d := &Dispatcher{
		sender:  sender,
		builder: builder,
		logger:  logger,
		workers: 5,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

type task struct {
	index int
	body  map[string]any
}

// Dispatch submits every record in batch and blocks until all of them have
// terminated. Outcome order is completion order, not input order; the count
// always equals len(batch). A failed record never cancels its siblings.
// offset is the batch's position in the full record sequence, so outcome
// indices refer to source rows.
func (d *Dispatcher) Dispatch(ctx context.Context, offset int, batch []source.Record) []submit.Outcome {
	if len(batch) == 0 {
		return nil
	}

	// Payload construction happens synchronously before any send, so a
	// build never races a retry sleep for pool capacity.
	tasks := make([]task, len(batch))
	for i, rec := range batch {
		tasks[i] = task{index: offset + i, body: d.builder.Build(rec)}
	}

	workers := d.workers
	if workers > len(batch) {
		workers = len(batch)
	}
	d.logger.Debug("dispatch.batch", "records", len(batch), "workers", workers, "offset", offset)

	ch := make(chan task)
	results := make(chan submit.Outcome, len(batch))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range ch {
				results <- d.sender.Send(ctx, t.index, t.body)
			}
		}()
	}

	for _, t := range tasks {
		ch <- t
	}
	close(ch)
	wg.Wait()
	close(results)

	outcomes := make([]submit.Outcome, 0, len(batch))
	for o := range results {
		outcomes = append(outcomes, o)
	}
	return outcomes
}
