package edgelist

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel matched by every *ParseError
var ErrParse = errors.New("edge list parse error")

// ParseError reports a rejected line of an edge list
type ParseError struct {
	Line   int    // 1-based line number
	Text   string // offending line, trimmed
	Reason string
	Cause  error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("line %d: %s: %v", e.Line, e.Reason, e.Cause)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}
