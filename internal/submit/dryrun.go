package submit

import (
	"context"
	"log/slog"
)

// DryRun stands in for the Requester when no network traffic is wanted. It
// reports every record as accepted so a run can be rehearsed end to end.
type DryRun struct {
	logger *slog.Logger
}

func NewDryRun(logger *slog.Logger) *DryRun {
	if logger == nil {
		logger = slog.Default()
	}
	return &DryRun{logger: logger}
}

func (d *DryRun) Send(_ context.Context, index int, body map[string]any) Outcome {
	d.logger.Info("submit.dry_run",
		"record_index", index,
		"payload_keys", len(body),
	)
	return success(index, 0, 0)
}
