package services

import (
	"errors"
	"fmt"
)

var (
	ErrNegativeQuantity = errors.New("quantity must not be negative")
	ErrQuantityAboveMax = errors.New("quantity exceeds maximum")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNotEditing       = errors.New("catalog is not in edit mode")
	ErrUnknownItem      = errors.New("unknown service")
	ErrInvalidItem      = errors.New("invalid service")

	// ErrStateNotFound is returned by a StateStore when nothing is stored
	// under the requested key.
	ErrStateNotFound = errors.New("state not found")

	// ErrShareUnavailable is returned by a ShareTarget that cannot share
	// on the current host.
	ErrShareUnavailable = errors.New("share unavailable")
)

// ValidationError rejects a write. The session state is left untouched.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error { return e.Err }

func invalid(field string, err error, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...), Err: err}
}

// PersistenceError reports a failed read or write of the persisted session
// record. Sessions recover from it by falling back to catalog defaults.
type PersistenceError struct {
	Op  string
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ExportError reports that neither the primary delivery path nor the
// clipboard fallback accepted an export.
type ExportError struct {
	Target string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s: %v", e.Target, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
