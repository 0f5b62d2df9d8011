package protocol

import "errors"

const (
	// Caller-side validation: unknown activity, unknown item/recipe id.
	ErrValidation = "E_VALIDATION"

	// Rule-table checks that fail before any mutation.
	ErrPrecondition = "E_PRECONDITION"

	// Referenced item uid/id absent from inventory.
	ErrNotFound = "E_NOT_FOUND"

	// Durable-store I/O failure.
	ErrStorage = "E_STORAGE"
)

var knownCodes = map[string]struct{}{
	ErrValidation:   {},
	ErrPrecondition: {},
	ErrNotFound:     {},
	ErrStorage:      {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Error is the domain error surfaced to the command collaborator.
// Reason is short and human-readable; Code is one of the E_* constants.
type Error struct {
	Code   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Code
	}
	return e.Code + ": " + e.Reason
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(reason string) *Error {
	return &Error{Code: ErrValidation, Reason: reason}
}

func Precondition(reason string) *Error {
	return &Error{Code: ErrPrecondition, Reason: reason}
}

func NotFound(reason string) *Error {
	return &Error{Code: ErrNotFound, Reason: reason}
}

func Storage(err error) *Error {
	return &Error{Code: ErrStorage, Reason: "storage failure", Err: err}
}

// CodeOf returns the E_* code of err, or "" when err carries none.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ""
}
