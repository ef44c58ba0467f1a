package probe

import (
	"fmt"

	"github.com/go-probe/probe/pkg/selector"
)

// SingleNodeError reports a length-restricted operation invoked on a
// wrapper whose length is not exactly 1.
type SingleNodeError struct {
	// Op is the operation that failed (e.g., "Props").
	Op string
	// Count is the observed wrapper length.
	Count int
}

func (e *SingleNodeError) Error() string {
	return fmt.Sprintf("%s: method is meant to be run on 1 node, %d found instead", e.Op, e.Count)
}

// RootRequiredError reports a root-only operation invoked on a non-root
// wrapper.
type RootRequiredError struct {
	// Op is the operation that failed (e.g., "SetProps").
	Op string
}

func (e *RootRequiredError) Error() string {
	return fmt.Sprintf("%s: can only be called on the root wrapper", e.Op)
}

// InvalidSelectorError reports a selector of an unsupported shape. It is
// the selector package's error type, re-exported for callers of this
// package.
type InvalidSelectorError = selector.InvalidSelectorError

// InvalidArgumentError reports an argument that cannot be used: an empty
// element list for an all/any-matching check, or a nil callback where one
// is required.
type InvalidArgumentError struct {
	Op     string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// UnknownEventError reports a simulated event the adapter does not
// support.
type UnknownEventError struct {
	Event string
}

func (e *UnknownEventError) Error() string {
	return fmt.Sprintf("simulate: event %q is not supported", e.Event)
}
