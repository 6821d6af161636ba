package filesystem

import (
	"errors"
	"fmt"
)

// Every failure mode of the tree engine maps to exactly one of these. All of
// them are recoverable at the call site; no operation mutates the tree before
// failing.
var (
	// ErrDuplicateName is returned when a create or rename would collide
	// with an existing sibling name
	ErrDuplicateName = errors.New("name already exists in directory")

	// ErrWrongKind is returned when a file-only operation targets a
	// directory or a directory-only operation targets a file
	ErrWrongKind = errors.New("operation not supported for node kind")

	// ErrRootViolation is returned on any attempt to delete or rename the root
	ErrRootViolation = errors.New("operation not permitted on root")

	// ErrInvalidName is returned for names that can never resolve: empty,
	// ".", "..", containing a slash, or longer than the configured limit
	ErrInvalidName = errors.New("invalid node name")

	// ErrStaleHandle is returned when an operation references a handle
	// that was never allocated or whose node has been deleted
	ErrStaleHandle = errors.New("unknown or deleted node")
)

// NotFoundError reports a path whose resolution failed. It carries the
// original path string for diagnostics.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("path not found: %s", e.Path)
}
