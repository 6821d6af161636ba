package filesystem

import "strings"

// Resolver turns slash-delimited path strings into nodes. It holds no tree
// state of its own beyond the optional home anchor handle; every lookup goes
// through the store so deleted nodes can never resolve.
type Resolver struct {
	store *Store
	home  uint64 // home anchor handle; 0 when unconfigured
}

func NewResolver(store *Store) *Resolver {
	return &Resolver{store: store}
}

// SetHome configures the node `~` expands to. Passing 0 removes the anchor.
func (r *Resolver) SetHome(id uint64) {
	r.home = id
}

// Home returns the configured home anchor node, if it is set and still alive
func (r *Resolver) Home() (*Node, bool) {
	if r.home == 0 {
		return nil, false
	}
	return r.store.Get(r.home)
}

// Resolve walks path starting from the node under fromID. A leading "/"
// makes the path absolute and ignores fromID. Empty segments are discarded,
// so repeated, leading and trailing slashes are harmless; "." is a no-op and
// ".." moves to the parent when one exists, staying put at the root.
//
// A leading "~" segment expands to the home anchor when one is configured
// and still alive; otherwise it is looked up as a literal child name like
// any other segment.
//
// The first segment that does not name an existing child fails with a
// *NotFoundError carrying the original path.
func (r *Resolver) Resolve(fromID uint64, path string) (*Node, error) {
	cur, ok := r.store.Get(fromID)
	if !ok {
		return nil, ErrStaleHandle
	}
	if strings.HasPrefix(path, "/") {
		cur = r.store.Root()
	}

	rest := path
	if rest == "~" || strings.HasPrefix(rest, "~/") {
		if home, ok := r.Home(); ok {
			cur = home
			rest = strings.TrimPrefix(rest[1:], "/")
		}
	}

	for _, segment := range strings.Split(rest, "/") {
		switch segment {
		case "", ".":
			continue
		case "..":
			if parent, ok := r.store.Get(cur.parent); ok {
				cur = parent
			}
			continue
		}

		next := r.store.childByName(cur, segment)
		if next == nil {
			return nil, &NotFoundError{Path: path}
		}
		cur = next
	}
	return cur, nil
}
