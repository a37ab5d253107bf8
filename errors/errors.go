package errors

import "fmt"

// ParseError wraps a specific error with context about which input field caused it.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("parse error in %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("parse error in %s: %v (value: %q)", e.Field, e.Err, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Define specific error types for better error handling
var (
	ErrInvalidScenario  = fmt.Errorf("invalid scenario")
	ErrInvalidDay       = fmt.Errorf("invalid day")
	ErrInvalidRange     = fmt.Errorf("invalid day range")
	ErrInvalidNeedCount = fmt.Errorf("expected exactly 3 values, one per need")
	ErrNegativeCount    = fmt.Errorf("negative headcount")
	ErrUnknownUrgency   = fmt.Errorf("unknown urgency function")
)
