package engine

import "errors"

// ErrNotCancellable is returned by Cancel when the batch has already
// reached a terminal state.
var ErrNotCancellable = errors.New("batch job already in a terminal state")

// ValidationError rejects a malformed submission synchronously, before any
// item is enqueued. It is never retried.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid batch submission: " + e.Reason
}

func newValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

// IsValidation reports whether err is a submission validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
