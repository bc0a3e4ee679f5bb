package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies pipeline errors for propagation decisions: document,
// limit, and config errors abort a run; evaluation errors are recovered
// locally as inconclusive verdicts.
type ErrorKind string

const (
	KindDocument        ErrorKind = "document"
	KindPageLimit       ErrorKind = "page_limit"
	KindUnknownStandard ErrorKind = "unknown_standard"
	KindEvaluation      ErrorKind = "evaluation"
	KindConfig          ErrorKind = "config"
	KindStorage         ErrorKind = "storage"
)

// Error is a kind-tagged error with an optional underlying cause.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DocumentError reports an unreadable or corrupt input document.
func DocumentError(message string, err error) error {
	return &Error{Kind: KindDocument, Message: message, Err: err}
}

// PageLimitError reports a document exceeding the size or page-count limits.
func PageLimitError(message string, err error) error {
	return &Error{Kind: KindPageLimit, Message: message, Err: err}
}

// UnknownStandardError reports a lookup for a standard id not in the registry.
func UnknownStandardError(message string, err error) error {
	return &Error{Kind: KindUnknownStandard, Message: message, Err: err}
}

// EvaluationError reports a failed page evaluation. Never fatal to a run.
func EvaluationError(message string, err error) error {
	return &Error{Kind: KindEvaluation, Message: message, Err: err}
}

// ConfigError reports invalid or missing configuration.
func ConfigError(message string, err error) error {
	return &Error{Kind: KindConfig, Message: message, Err: err}
}

// StorageError reports a report persistence failure.
func StorageError(message string, err error) error {
	return &Error{Kind: KindStorage, Message: message, Err: err}
}

// IsKind reports whether err (or anything it wraps) carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
