package constants

// DefaultEndpoint is the KoBoCAT submissions API this tool was built against.
// Override via the "endpoint" config key for other deployments.
const DefaultEndpoint = "https://kobocat.unhcr.org/api/v1/submissions"

// StatusCreated is the sole success signal from the submissions API.
const StatusCreated = 201

// DefaultRetryStatuses are the HTTP statuses retried by the requester.
// 429 is deliberately absent; rate-limited responses fail terminally.
var DefaultRetryStatuses = []int{500, 502, 503, 504}
