package sheet

import (
	"errors"
	"fmt"
)

// ErrorCode classifies engine-level failures. these are user-input
// errors: they are reported as values, never panics.
type ErrorCode int

const (
	// CodeMalformedAddress indicates a cell id that does not parse as
	// letters followed by digits.
	CodeMalformedAddress ErrorCode = 1

	// CodeDuplicateName indicates an attempt to bind a name that is
	// already bound to a different cell.
	CodeDuplicateName ErrorCode = 2

	// CodeCycleDetected indicates an edit that would make the
	// dependency graph cyclic.
	CodeCycleDetected ErrorCode = 3

	// CodeEval indicates the evaluator backend failed to evaluate a
	// cell's expression.
	CodeEval ErrorCode = 4

	// CodeUnknownReference indicates a predecessor/successor query on
	// an id the graph has never seen.
	CodeUnknownReference ErrorCode = 5
)

// markers stored in a cell's value type when evaluation cannot
// produce a value. usable directly as display content.
const (
	MarkerAddressError = "error:address"
	MarkerNameError    = "error:name"
	MarkerCycleError   = "error:cycle"
	MarkerEvalError    = "error:eval"
)

// rejectionMarker reports whether a result type records a rejected
// edit rather than an evaluated value. rejected entries survive the
// evaluation walk untouched; MarkerEvalError is produced by the walk
// itself and is not a rejection.
func rejectionMarker(valueType string) bool {
	switch valueType {
	case MarkerAddressError, MarkerNameError, MarkerCycleError:
		return true
	}
	return false
}

// Error is the engine's error value. it carries a code so callers can
// branch on the failure kind without string matching.
type Error struct {
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf extracts the engine error code from err, or 0 if err is not
// an engine error.
func CodeOf(err error) ErrorCode {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
