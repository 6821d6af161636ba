package filesystem

// EventKind identifies the structural or content change an [Event] describes
type EventKind uint8

const (
	// Inserted: a node was created under ParentID
	Inserted EventKind = iota
	// Removed: a node was destroyed; one event per node of a deleted subtree
	Removed
	// Renamed: a node's name changed; OldName carries the previous name
	Renamed
	// ContentChanged: a file node's content was replaced
	ContentChanged
)

func (k EventKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Renamed:
		return "renamed"
	case ContentChanged:
		return "content_changed"
	default:
		return "unknown"
	}
}

// Event describes one successful mutation of the tree. NodeID may already be
// unregistered by the time a Removed event is observed; Name is included so
// observers never need to dereference the handle.
type Event struct {
	Kind     EventKind
	NodeID   uint64
	ParentID uint64 // parent at the time of the change; 0 only for the root
	Name     string // node name after the change
	OldName  string // previous name; set only for Renamed
}

// Subscriber receives events synchronously, after the mutation that produced
// them has fully completed. Subscribers must not mutate the store re-entrantly.
type Subscriber func(Event)

// Bus fans change events out to subscribers in subscription order. Events are
// published strictly after the tree's invariants are restored, so observers
// never see a half-applied mutation. Like the store it serves, the bus is not
// safe for concurrent use.
type Bus struct {
	subs []Subscriber
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn for all future events. There is no unsubscribe;
// observers live as long as the tree.
func (b *Bus) Subscribe(fn Subscriber) {
	b.subs = append(b.subs, fn)
}

// publish delivers events in order to every subscriber. Mutations batch their
// events and call this exactly once, after the whole mutation is done.
func (b *Bus) publish(events ...Event) {
	for _, ev := range events {
		for _, fn := range b.subs {
			fn(ev)
		}
	}
}
