package filesystem

import (
	"strings"
	"time"
)

// NodeKind discriminates directories from files
type NodeKind uint8

const (
	Directory NodeKind = iota
	File
)

func (k NodeKind) String() string {
	switch k {
	case Directory:
		return "directory"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Node is one entry in the simulated tree. Nodes are owned by a [Store] and
// addressed by stable uint64 handles; parent and children are held as handles
// rather than pointers so a deleted node is detectable by a registry lookup.
//
// The zero handle is never allocated: parent == 0 means "no parent" and only
// the root has it.
type Node struct {
	id         uint64
	uuid       string // stable external identity, survives renames
	name       string
	kind       NodeKind
	parent     uint64
	children   []uint64 // insertion-ordered child handles; nil for files
	content    string   // meaningful only for File nodes
	createdAt  time.Time
	modifiedAt time.Time
}

// ID returns the node's registry handle
func (n *Node) ID() uint64 { return n.id }

// UUID returns the node's stable external identity
func (n *Node) UUID() string { return n.uuid }

// Name returns the node's name (last path component)
func (n *Node) Name() string { return n.name }

// Kind returns whether the node is a Directory or a File
func (n *Node) Kind() NodeKind { return n.kind }

// ParentID returns the handle of the node's parent; 0 for the root
func (n *Node) ParentID() uint64 { return n.parent }

// IsDir reports whether the node is a directory
func (n *Node) IsDir() bool { return n.kind == Directory }

// Content returns the node's text content. Always empty for directories.
func (n *Node) Content() string { return n.content }

// Size returns the byte length of the node's content. Directories have no
// independent size and always report 0.
func (n *Node) Size() int64 {
	if n.kind != File {
		return 0
	}
	return int64(len(n.content))
}

// CreatedAt returns the node's creation timestamp
func (n *Node) CreatedAt() time.Time { return n.createdAt }

// ModifiedAt returns the node's last modification timestamp
func (n *Node) ModifiedAt() time.Time { return n.modifiedAt }

// IsRoot reports whether the node is the tree root
func (n *Node) IsRoot() bool { return n.parent == 0 }

// Path returns the node's absolute path from the root, e.g. "/docs/a.txt".
// The root's path is "/". Requires the node and all its ancestors to still be
// registered in the store; a detached node yields only its own name.
func (s *Store) Path(id uint64) (string, error) {
	n, ok := s.Get(id)
	if !ok {
		return "", ErrStaleHandle
	}
	if n.IsRoot() {
		return "/", nil
	}
	var parts []string
	for !n.IsRoot() {
		parts = append(parts, n.name)
		p, ok := s.Get(n.parent)
		if !ok {
			return n.name, ErrStaleHandle
		}
		n = p
	}
	// reverse into root-first order
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return "/" + strings.Join(parts, "/"), nil
}
