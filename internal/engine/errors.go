package engine

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure.
type Kind int

const (
	// KindPathResolution means a root could not be canonicalized. Fatal.
	KindPathResolution Kind = iota + 1
	// KindTraversalEntry means a directory entry could not be read or classified.
	KindTraversalEntry
	// KindFileRead means a candidate could not be opened or read while hashing.
	KindFileRead
	// KindMetadata means stat failed for a candidate during size bucketing.
	KindMetadata
)

var kindNames = [...]string{
	KindPathResolution: "resolve path",
	KindTraversalEntry: "read entry",
	KindFileRead:       "read file",
	KindMetadata:       "stat",
}

func (k Kind) String() string {
	if k > 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Error is a failure attributed to a single path.
type Error struct {
	Kind Kind
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Fatal reports whether the failure aborts the whole run. Everything except
// root resolution is absorbed and the file is dropped from consideration.
func (e *Error) Fatal() bool { return e.Kind == KindPathResolution }

// IsKind reports whether err wraps an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// errorPath extracts the failing path from err, if it carries one.
func errorPath(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Path
	}
	return ""
}
