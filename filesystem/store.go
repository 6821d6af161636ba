package filesystem

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/memtree/memtree/config"
)

// RootID is the registry handle of the tree root, allocated by [NewStore]
// and never freed
const RootID uint64 = 1

// Store owns the node tree. Every node lives in the registry under a stable
// handle; all structural mutation goes through the store so the tree is
// always name-unique per directory and fully reachable from the root.
//
// Every mutating operation is all-or-nothing: on failure the tree is exactly
// as it was before the call. Successful mutations publish their events on the
// bus only after the whole mutation is done.
//
// The store is synchronous and not thread-safe; concurrent callers must
// serialize externally.
type Store struct {
	cfg    *config.Config
	nodes  *xsync.MapOf[uint64, *Node] // registry of live handles
	lastID atomic.Uint64             // last handle assigned
	bus    *Bus
}

// NewStore creates a store holding only the root directory under [RootID].
func NewStore(cfg *config.Config) *Store {
	if cfg == nil {
		cfg = config.NewConfig(nil)
	}
	now := time.Now()
	root := &Node{
		id:         RootID,
		uuid:       uuid.New().String(),
		kind:       Directory,
		createdAt:  now,
		modifiedAt: now,
	}

	s := &Store{
		cfg:   cfg,
		nodes: xsync.NewMapOf[uint64, *Node](),
		bus:   NewBus(),
	}
	s.nodes.Store(RootID, root)
	s.lastID.Store(RootID)
	return s
}

// Root returns the root directory node
func (s *Store) Root() *Node {
	root, _ := s.nodes.Load(RootID)
	return root
}

// Bus returns the store's change notification bus
func (s *Store) Bus() *Bus {
	return s.bus
}

// Get returns the node registered under the handle. The second return value
// is false once the node has been deleted, which makes a bare handle check
// sufficient to detect stale references.
func (s *Store) Get(id uint64) (*Node, bool) {
	return s.nodes.Load(id)
}

// Create adds a new empty node as the last child of parentID, preserving
// creation order in listings. Fails with ErrWrongKind when the parent is a
// file and ErrDuplicateName when a sibling already carries the name.
func (s *Store) Create(parentID uint64, name string, kind NodeKind) (*Node, error) {
	parent, ok := s.nodes.Load(parentID)
	if !ok {
		return nil, ErrStaleHandle
	}
	if parent.kind != Directory {
		return nil, fmt.Errorf("%w: cannot create under a file", ErrWrongKind)
	}
	if err := s.validateName(name); err != nil {
		return nil, err
	}
	if s.childByName(parent, name) != nil {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	now := time.Now()
	node := &Node{
		id:         s.lastID.Add(1),
		uuid:       uuid.New().String(),
		name:       name,
		kind:       kind,
		parent:     parentID,
		createdAt:  now,
		modifiedAt: now,
	}
	s.nodes.Store(node.id, node)
	parent.children = append(parent.children, node.id)

	s.bus.publish(Event{Kind: Inserted, NodeID: node.id, ParentID: parentID, Name: name})
	return node, nil
}

// Delete destroys the node and its entire subtree. Children are destroyed
// before their parents (post-order); only after the subtree is gone is the
// node spliced out of its parent's child list. One Removed event is published
// per destroyed node, in destruction order, after the mutation completes, so
// an observer rebuilding incrementally never sees a reference to an
// already-removed node.
func (s *Store) Delete(id uint64) error {
	node, ok := s.nodes.Load(id)
	if !ok {
		return ErrStaleHandle
	}
	if node.IsRoot() {
		return fmt.Errorf("%w: delete", ErrRootViolation)
	}
	parent, ok := s.nodes.Load(node.parent)
	if !ok {
		return ErrStaleHandle
	}

	var events []Event
	s.destroy(node, &events)

	for i, cid := range parent.children {
		if cid == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}

	s.bus.publish(events...)
	return nil
}

// destroy unregisters the subtree rooted at n post-order and clears each
// node's own links, appending one Removed event per node as it goes
func (s *Store) destroy(n *Node, events *[]Event) {
	for _, cid := range n.children {
		if child, ok := s.nodes.Load(cid); ok {
			s.destroy(child, events)
		}
	}
	n.children = nil
	s.nodes.Delete(n.id)
	*events = append(*events, Event{Kind: Removed, NodeID: n.id, ParentID: n.parent, Name: n.name})
	n.parent = 0
}

// Rename changes the node's name. Fails with ErrRootViolation on the root and
// ErrDuplicateName when any other current sibling carries newName. Timestamps
// are untouched; a rename is not a content change.
func (s *Store) Rename(id uint64, newName string) error {
	node, ok := s.nodes.Load(id)
	if !ok {
		return ErrStaleHandle
	}
	if node.IsRoot() {
		return fmt.Errorf("%w: rename", ErrRootViolation)
	}
	if err := s.validateName(newName); err != nil {
		return err
	}
	parent, ok := s.nodes.Load(node.parent)
	if !ok {
		return ErrStaleHandle
	}
	if sib := s.childByName(parent, newName); sib != nil && sib.id != id {
		return fmt.Errorf("%w: %q", ErrDuplicateName, newName)
	}

	oldName := node.name
	node.name = newName

	s.bus.publish(Event{Kind: Renamed, NodeID: id, ParentID: node.parent, Name: newName, OldName: oldName})
	return nil
}

// UpdateContent replaces a file's content and refreshes its modification
// time. The new modifiedAt never goes backwards even across wall-clock
// adjustments. Fails with ErrWrongKind on a directory.
func (s *Store) UpdateContent(id uint64, text string) error {
	node, ok := s.nodes.Load(id)
	if !ok {
		return ErrStaleHandle
	}
	if node.kind != File {
		return fmt.Errorf("%w: content edit on a %s", ErrWrongKind, node.kind)
	}

	node.content = text
	now := time.Now()
	if now.Before(node.modifiedAt) {
		now = node.modifiedAt
	}
	node.modifiedAt = now

	s.bus.publish(Event{Kind: ContentChanged, NodeID: id, ParentID: node.parent, Name: node.name})
	return nil
}

// Children returns the node's direct children in insertion order. The slice
// is a fresh copy; iterating it never mutates the tree. A file node has no
// children and yields an empty result.
func (s *Store) Children(id uint64) ([]*Node, error) {
	node, ok := s.nodes.Load(id)
	if !ok {
		return nil, ErrStaleHandle
	}
	children := make([]*Node, 0, len(node.children))
	for _, cid := range node.children {
		if child, ok := s.nodes.Load(cid); ok {
			children = append(children, child)
		}
	}
	return children, nil
}

// childByName scans the parent's child list for a name match
func (s *Store) childByName(parent *Node, name string) *Node {
	for _, cid := range parent.children {
		if child, ok := s.nodes.Load(cid); ok && child.name == name {
			return child
		}
	}
	return nil
}

func (s *Store) validateName(name string) error {
	switch {
	case name == "" || name == "." || name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.Contains(name, "/"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	case len(name) > s.cfg.MaxNameLen:
		return fmt.Errorf("%w: longer than %d bytes", ErrInvalidName, s.cfg.MaxNameLen)
	}
	return nil
}
