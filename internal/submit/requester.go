// Package submit sends submission documents to the KoBoCAT API with bounded
// retry and classifies each terminal result as an Outcome.
package submit

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/joseph-ayodele/kobo-uploader/constants"
)

// Config carries the request-level knobs. BackoffFactor follows the
// urllib3 convention: wait = factor * 2^(attempt-1) seconds before retry n.
type Config struct {
	Endpoint      string
	Token         string
	MaxRetries    int
	BackoffFactor float64
	Timeout       time.Duration
	RetryStatuses []int
}

// Requester posts submission payloads over a shared resty client. Safe for
// concurrent use; the underlying transport pools connections across workers.
type Requester struct {
	client   *resty.Client
	endpoint string
	logger   *slog.Logger
}

func NewRequester(cfg Config, logger *slog.Logger) *Requester {
	if logger == nil {
		logger = slog.Default()
	}
	retryStatuses := cfg.RetryStatuses
	if retryStatuses == nil {
		retryStatuses = constants.DefaultRetryStatuses
	}

	client := resty.New()
	client.
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", "Token "+cfg.Token)

	// Transport failures (timeouts included) and the configured server
	// statuses are retried; everything else terminates the attempt chain.
	client.
		SetRetryCount(cfg.MaxRetries).
		SetRetryAfter(func(_ *resty.Client, resp *resty.Response) (time.Duration, error) {
			attempt := 1
			if resp != nil && resp.Request != nil {
				attempt = resp.Request.Attempt
			}
			wait := cfg.BackoffFactor * math.Pow(2, float64(attempt-1))
			return time.Duration(wait * float64(time.Second)), nil
		}).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			for _, s := range retryStatuses {
				if r.StatusCode() == s {
					return true
				}
			}
			return false
		})

	return &Requester{client: client, endpoint: cfg.Endpoint, logger: logger}
}

// Send posts one submission document and blocks through any retries until the
// outcome is terminal. It never returns an error: per-record failures are
// absorbed into the Outcome and logged, and the run carries on.
func (r *Requester) Send(ctx context.Context, index int, body map[string]any) Outcome {
	start := time.Now()

	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(r.endpoint)

	attempts := 1
	if resp != nil && resp.Request != nil && resp.Request.Attempt > 0 {
		attempts = resp.Request.Attempt
	}

	var out Outcome
	switch {
	case err != nil:
		out = failure(index, 0, attempts, err)
	case resp.StatusCode() == constants.StatusCreated:
		out = success(index, resp.StatusCode(), attempts)
	default:
		out = failure(index, resp.StatusCode(), attempts, nil)
	}

	if out.Succeeded() {
		r.logger.Info("submit.outcome",
			"record_index", out.RecordIndex,
			"status", string(out.Status),
			"http_status", out.HTTPStatus,
			"attempts", out.Attempts,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	} else {
		r.logger.Error("submit.outcome",
			"record_index", out.RecordIndex,
			"status", string(out.Status),
			"http_status", out.HTTPStatus,
			"attempts", out.Attempts,
			"error", out.Err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
	}
	return out
}
