package timing

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedTimingData = errors.New("malformed timing data")
	ErrUnsupportedFormat   = errors.New("unsupported timing file format")
)

// DocumentLevel is the Line value of a MalformedError that is not tied to a
// single karaoke line (missing metadata, missing karaoke array, bad JSON).
const DocumentLevel = -1

// MalformedError reports a schema violation in a timing file.
// It matches ErrMalformedTimingData with errors.Is.
type MalformedError struct {
	Line   int    // Index of the offending karaoke line, or DocumentLevel
	Field  string // JSON field name, if known
	Reason string
}

func (e *MalformedError) Error() string {
	if e.Line == DocumentLevel {
		if e.Field == "" {
			return fmt.Sprintf("%v: %s", ErrMalformedTimingData, e.Reason)
		}
		return fmt.Sprintf("%v: %s: %s", ErrMalformedTimingData, e.Field, e.Reason)
	}
	if e.Field == "" {
		return fmt.Sprintf("%v: line %d: %s", ErrMalformedTimingData, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v: line %d: %s: %s", ErrMalformedTimingData, e.Line, e.Field, e.Reason)
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformedTimingData
}

func malformed(line int, field, format string, args ...any) *MalformedError {
	return &MalformedError{Line: line, Field: field, Reason: fmt.Sprintf(format, args...)}
}
