package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrMalformedInput = errors.New("malformed input")
	ErrNodeNotFound   = errors.New("node not found")
	ErrSelfLoop       = errors.New("self-loop not allowed")
)

// MalformedInputError describes an edge rejected while building a Graph.
type MalformedInputError struct {
	Position int    // zero-based position of the edge in insertion order, -1 for AddNode
	From     string // endpoints as supplied
	To       string
	Reason   string
	Cause    error // ErrSelfLoop or nil
}

// Error implements the error interface.
func (e *MalformedInputError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("malformed input: node %q: %s", e.From, e.Reason)
	}
	return fmt.Sprintf("malformed input: edge %d (%q, %q): %s", e.Position, e.From, e.To, e.Reason)
}

// Unwrap returns the underlying cause for error chain support.
func (e *MalformedInputError) Unwrap() error {
	return e.Cause
}

// Is makes every MalformedInputError match ErrMalformedInput.
func (e *MalformedInputError) Is(target error) bool {
	return target == ErrMalformedInput
}

// NodeNotFound wraps ErrNodeNotFound with the missing key
func NodeNotFound(key string) error {
	return fmt.Errorf("%w: %q", ErrNodeNotFound, key)
}

// IsNotFound returns true if the error is a node not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNodeNotFound)
}
