package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCorpus signals that a corpus cannot be built (missing columns or fields, empty corpus).
	ErrInvalidCorpus = errors.New("invalid corpus")
	// ErrModelNotReady signals that no corpus model has been built yet.
	ErrModelNotReady = errors.New("model not ready")
	// ErrInvalidRequest signals a malformed recommendation request.
	ErrInvalidRequest = errors.New("invalid request")
)

// DataError wraps ErrInvalidCorpus with the offending fields or columns.
type DataError struct {
	Reason string
	Fields []string
}

func (e *DataError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidCorpus.Error(), e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidCorpus.Error(), e.Reason, strings.Join(e.Fields, ", "))
}

func (e *DataError) Unwrap() error { return ErrInvalidCorpus }

// NewDataError creates a corpus data error.
func NewDataError(reason string, fields ...string) error {
	return &DataError{Reason: reason, Fields: fields}
}
