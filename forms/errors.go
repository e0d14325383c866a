package forms

import "errors"

var (
	ErrMissingDate = errors.New("no date selected")
	ErrInvalidDate = errors.New("date is not a valid calendar date")
	ErrDateInPast  = errors.New("date is in the past")
)

// ValidationError blocks a submit. Message is meant for the user.
type ValidationError struct {
	Form    string
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }
func (e *ValidationError) Unwrap() error { return e.Err }
