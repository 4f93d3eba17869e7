package constants

// OutcomeStatus is the canonical terminal status for one submitted record.
type OutcomeStatus string

// Stable values (these exact strings appear in log events).
const (
	OutcomeSuccess OutcomeStatus = "SUCCESS" // server accepted the submission (201)
	OutcomeFailure OutcomeStatus = "FAILED"  // terminal failure: retries exhausted or non-retryable status
)
