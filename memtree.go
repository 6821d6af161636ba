// Package memtree simulates a hierarchical filesystem entirely in memory.
// Nothing touches a real disk: the tree, its navigation history and its
// change notifications all live for the duration of the process.
package memtree

import (
	"fmt"
	"path"
	"strings"

	"github.com/memtree/memtree/config"
	"github.com/memtree/memtree/filesystem"
)

// FileTree bundles the tree engine with a path resolver and a navigator, the
// composition every presentation layer needs. Engine operations are promoted
// from the embedded store.
type FileTree struct {
	*filesystem.Store
	Resolver *filesystem.Resolver
	Nav      *filesystem.Navigator

	cfg *config.Config
}

// New creates an empty FileTree (root directory only) given your config.
func New(cfg *config.Config) *FileTree {
	if cfg == nil {
		cfg = config.NewConfig(nil)
	}
	store := filesystem.NewStore(cfg)
	return &FileTree{
		Store:    store,
		Resolver: filesystem.NewResolver(store),
		Nav:      filesystem.NewNavigator(store),
		cfg:      cfg,
	}
}

// Config returns the tree's runtime configuration
func (t *FileTree) Config() *config.Config {
	return t.cfg
}

// ConfigureHome points `~` at the configured HomePath. Call after the tree
// has been seeded; a missing or empty HomePath leaves `~` a literal name.
func (t *FileTree) ConfigureHome() error {
	if t.cfg.HomePath == "" {
		return nil
	}
	home, err := t.Resolver.Resolve(filesystem.RootID, t.cfg.HomePath)
	if err != nil {
		return fmt.Errorf("home anchor: %w", err)
	}
	t.Resolver.SetHome(home.ID())
	return nil
}

// CreateAtPath creates one node at p, resolved from the node under fromID.
// The parent directory must already exist; missing intermediate directories
// are not created. Files get their initial content applied after creation.
func (t *FileTree) CreateAtPath(fromID uint64, p string, kind filesystem.NodeKind, content string) (*filesystem.Node, error) {
	parentPath, name := splitPath(p)
	parent := fromID
	if parentPath != "" {
		dir, err := t.Resolver.Resolve(fromID, parentPath)
		if err != nil {
			return nil, err
		}
		parent = dir.ID()
	}

	node, err := t.Create(parent, name, kind)
	if err != nil {
		return nil, err
	}
	if kind == filesystem.File && content != "" {
		if err := t.UpdateContent(node.ID(), content); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// AddDirNode adds a single directory at the request's path, resolved from
// the root. Unlike `mkdir -p` it fails when the parent does not exist yet,
// so seed files must list ancestors before descendants.
func (t *FileTree) AddDirNode(req *DirCreateRequest) (*filesystem.Node, error) {
	return t.CreateAtPath(filesystem.RootID, req.Path, filesystem.Directory, "")
}

// AddFileNode adds a file at the request's path, resolved from the root,
// carrying the request's initial content.
func (t *FileTree) AddFileNode(req *FileCreateRequest) (*filesystem.Node, error) {
	return t.CreateAtPath(filesystem.RootID, req.Path, filesystem.File, req.Content)
}

// splitPath splits p into the parent portion handed to the resolver and the
// leaf name. "docs/a.txt" yields ("docs/", "a.txt"); a bare "a.txt" yields
// ("", "a.txt") so the leaf is created directly under the starting node.
func splitPath(p string) (parentPath, name string) {
	parentPath, name = path.Split(strings.TrimRight(p, "/"))
	return parentPath, name
}
