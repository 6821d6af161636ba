package filesystem

// Navigator tracks a current location plus browser-style back/forward stacks
// of node handles. It owns the "current directory" notion outright; nothing
// else in the engine carries ambient location state.
//
// The navigator subscribes to the store's bus: a Removed event scrubs the
// dead handle from both stacks, and resets current to the root if current
// itself was deleted. Deletion emits one Removed event per destroyed node,
// so destroyed descendants are scrubbed individually. The stacks therefore
// never hold a handle the store no longer knows.
type Navigator struct {
	store   *Store
	current uint64
	history []uint64
	future  []uint64
}

// NewNavigator creates a navigator positioned at the root and wires it to
// the store's change events.
func NewNavigator(store *Store) *Navigator {
	nav := &Navigator{store: store, current: RootID}
	store.Bus().Subscribe(nav.onEvent)
	return nav
}

// Current returns the node the navigator points at. Scrubbing guarantees the
// handle is live; the root fallback only covers a navigator detached from
// its bus.
func (nav *Navigator) Current() *Node {
	if node, ok := nav.store.Get(nav.current); ok {
		return node
	}
	nav.current = RootID
	return nav.store.Root()
}

// NavigateTo makes the node under id the current location. The previous
// location is pushed onto the back stack and the forward stack is cleared;
// any direct navigation invalidates forward history. Fails with
// ErrStaleHandle when id is not a live node.
func (nav *Navigator) NavigateTo(id uint64) error {
	if _, ok := nav.store.Get(id); !ok {
		return ErrStaleHandle
	}
	nav.history = append(nav.history, nav.current)
	nav.future = nav.future[:0]
	nav.current = id
	return nil
}

// Back revisits the previous location, pushing the current one onto the
// forward stack. Reports false when there is no history.
func (nav *Navigator) Back() bool {
	if len(nav.history) == 0 {
		return false
	}
	nav.future = append(nav.future, nav.current)
	nav.current = nav.history[len(nav.history)-1]
	nav.history = nav.history[:len(nav.history)-1]
	return true
}

// Forward revisits the location undone by the last Back, pushing the current
// one onto the back stack. Reports false when there is no forward history.
func (nav *Navigator) Forward() bool {
	if len(nav.future) == 0 {
		return false
	}
	nav.history = append(nav.history, nav.current)
	nav.current = nav.future[len(nav.future)-1]
	nav.future = nav.future[:len(nav.future)-1]
	return true
}

// Up navigates to the current node's parent. Reports false at the root.
func (nav *Navigator) Up() bool {
	parent := nav.Current().ParentID()
	if parent == 0 {
		return false
	}
	return nav.NavigateTo(parent) == nil
}

func (nav *Navigator) onEvent(ev Event) {
	if ev.Kind != Removed {
		return
	}
	nav.history = scrub(nav.history, ev.NodeID)
	nav.future = scrub(nav.future, ev.NodeID)
	if nav.current == ev.NodeID {
		nav.current = RootID
	}
}

// scrub removes every occurrence of id, preserving order
func scrub(stack []uint64, id uint64) []uint64 {
	kept := stack[:0]
	for _, h := range stack {
		if h != id {
			kept = append(kept, h)
		}
	}
	return kept
}
