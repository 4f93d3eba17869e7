package submit

import "github.com/joseph-ayodele/kobo-uploader/constants"

// Outcome is the terminal per-record result. Every record submitted during a
// run yields exactly one Outcome; failures are recorded here, never raised.
type Outcome struct {
	RecordIndex int
	Status      constants.OutcomeStatus
	HTTPStatus  int
	Attempts    int
	Err         error
}

// Succeeded reports whether the server accepted the submission.
func (o Outcome) Succeeded() bool {
	return o.Status == constants.OutcomeSuccess
}

func success(index, httpStatus, attempts int) Outcome {
	return Outcome{
		RecordIndex: index,
		Status:      constants.OutcomeSuccess,
		HTTPStatus:  httpStatus,
		Attempts:    attempts,
	}
}

func failure(index, httpStatus, attempts int, err error) Outcome {
	return Outcome{
		RecordIndex: index,
		Status:      constants.OutcomeFailure,
		HTTPStatus:  httpStatus,
		Attempts:    attempts,
		Err:         err,
	}
}
