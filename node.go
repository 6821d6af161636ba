package memtree

import (
	"time"

	"github.com/memtree/memtree/filesystem"
)

// NodeInfo provides read-only access to node attributes for external
// consumers such as presentation layers
type NodeInfo interface {
	// ID returns the node's stable registry handle
	ID() uint64

	// UUID returns the node's stable external identity
	UUID() string

	// Name returns the node's name (last path component)
	Name() string

	// Kind returns whether the node is a directory or a file
	Kind() filesystem.NodeKind

	// IsDir reports whether the node is a directory
	IsDir() bool

	// Content returns the node's text content; empty for directories
	Content() string

	// Size returns the content byte length; 0 for directories
	Size() int64

	CreatedAt() time.Time
	ModifiedAt() time.Time
}

var _ NodeInfo = (*filesystem.Node)(nil)
