package community

import "errors"

// Common sentinel errors
var (
	ErrInvalidPartition  = errors.New("invalid partition")
	ErrInvalidResolution = errors.New("invalid resolution")
	ErrInvalidOptions    = errors.New("invalid louvain options")
)

// invariant panics when internal bookkeeping is inconsistent. Such a state is
// a defect in the optimizer, never a property of the input.
func invariant(ok bool, msg string) {
	if !ok {
		panic("community: invariant violated: " + msg)
	}
}
