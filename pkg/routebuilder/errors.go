package routebuilder

import "errors"

var (
	ErrMinimumStops        = errors.New("A route needs at least one stop, add another before removing this one")
	ErrStopIndexOutOfRange = errors.New("Stop index is out of range")
	ErrUnknownStopKey      = errors.New("No stop in the draft matches the key")
)

// RejectedError is returned when an append would leave the draft invalid.
// Message is the first blocking finding, Result holds the full validation outcome.
type RejectedError struct {
	Message string
	Result  ValidationResult
}

func (e *RejectedError) Error() string {
	return e.Message
}
