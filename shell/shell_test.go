package shell

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memtree/memtree"
	"github.com/memtree/memtree/config"
	"github.com/memtree/memtree/filesystem"
)

// newTestShell returns a shell writing into the returned buffer
func newTestShell(t *testing.T) (*Shell, *memtree.FileTree, *bytes.Buffer) {
	t.Helper()
	tree := memtree.New(config.NewConfig(nil))
	out := &bytes.Buffer{}
	return New(tree, strings.NewReader(""), out), tree, out
}

func TestShell_MkdirCdPwd(t *testing.T) {
	t.Parallel()

	sh, tree, out := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir docs"))
	require.NoError(t, sh.Exec("cd docs"))
	require.NoError(t, sh.Exec("pwd"))

	assert.Equal(t, "/docs\n", out.String())
	assert.Equal(t, "docs", tree.Nav.Current().Name())
}

func TestShell_TouchWriteCat(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t)

	require.NoError(t, sh.Exec("touch a.txt"))
	require.NoError(t, sh.Exec("write a.txt hello in-memory world"))
	require.NoError(t, sh.Exec("cat a.txt"))

	assert.Equal(t, "hello in-memory world\n", out.String())
}

func TestShell_Ls(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir docs"))
	require.NoError(t, sh.Exec("touch a.txt"))
	require.NoError(t, sh.Exec("write a.txt hi"))
	require.NoError(t, sh.Exec("ls"))

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	// Creation order, directory sizes hidden, file sizes humanized
	assert.Contains(t, lines[0], "directory")
	assert.Contains(t, lines[0], "docs")
	assert.Contains(t, lines[0], "-")
	assert.Contains(t, lines[1], "file")
	assert.Contains(t, lines[1], "a.txt")
	assert.Contains(t, lines[1], "2 B")
}

func TestShell_Navigation(t *testing.T) {
	t.Parallel()

	sh, tree, out := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir a"))
	require.NoError(t, sh.Exec("mkdir a/b"))
	require.NoError(t, sh.Exec("cd a/b"))
	require.NoError(t, sh.Exec("back"))
	assert.Equal(t, "/", mustPath(t, tree))

	require.NoError(t, sh.Exec("forward"))
	assert.Equal(t, "/a/b", mustPath(t, tree))

	require.NoError(t, sh.Exec("up"))
	assert.Equal(t, "/a", mustPath(t, tree))

	out.Reset()
	require.NoError(t, sh.Exec("forward"))
	assert.Equal(t, "no forward history\n", out.String(),
		"up is a direct navigation and must clear forward history")
}

func TestShell_CdFile(t *testing.T) {
	t.Parallel()

	sh, _, _ := newTestShell(t)

	require.NoError(t, sh.Exec("touch a.txt"))
	err := sh.Exec("cd a.txt")
	assert.ErrorIs(t, err, filesystem.ErrWrongKind)
}

func TestShell_RmScrubsNavigation(t *testing.T) {
	t.Parallel()

	sh, tree, _ := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir docs"))
	require.NoError(t, sh.Exec("cd docs"))
	require.NoError(t, sh.Exec("rm /docs"))

	// Deleting the current directory drops the shell back at the root
	assert.Equal(t, "/", mustPath(t, tree))
}

func TestShell_Rename(t *testing.T) {
	t.Parallel()

	sh, tree, _ := newTestShell(t)

	require.NoError(t, sh.Exec("touch old.txt"))
	require.NoError(t, sh.Exec("rename old.txt new.txt"))

	_, err := tree.Resolver.Resolve(filesystem.RootID, "/new.txt")
	assert.NoError(t, err)
}

func TestShell_Stat(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t)

	require.NoError(t, sh.Exec("touch a.txt"))
	require.NoError(t, sh.Exec("write a.txt "+strings.Repeat("x", 150)))
	require.NoError(t, sh.Exec("stat a.txt"))

	output := out.String()
	assert.Contains(t, output, "name:     a.txt")
	assert.Contains(t, output, "type:     file")
	assert.Contains(t, output, "path:     /a.txt")
	assert.Contains(t, output, "uuid:")
	// Preview caps at the configured length
	assert.Contains(t, output, strings.Repeat("x", config.DefaultPreviewLen)+"...")
	assert.NotContains(t, output, strings.Repeat("x", config.DefaultPreviewLen+1))
}

func TestShell_Tree(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t)

	require.NoError(t, sh.Exec("mkdir docs"))
	require.NoError(t, sh.Exec("touch docs/a.txt"))
	require.NoError(t, sh.Exec("tree"))

	assert.Equal(t, "/\n  docs/\n    a.txt\n", out.String())
}

func TestShell_UnknownCommand(t *testing.T) {
	t.Parallel()

	sh, _, _ := newTestShell(t)

	err := sh.Exec("frobnicate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestShell_EmptyLine(t *testing.T) {
	t.Parallel()

	sh, _, out := newTestShell(t)

	require.NoError(t, sh.Exec(""))
	require.NoError(t, sh.Exec("   "))
	assert.Empty(t, out.String())
}

func TestShell_Run_Scripted(t *testing.T) {
	t.Parallel()

	tree := memtree.New(config.NewConfig(nil))
	in := strings.NewReader("mkdir docs\ncd docs\npwd\nexit\n")
	out := &bytes.Buffer{}

	require.NoError(t, New(tree, in, out).Run())

	assert.Contains(t, out.String(), "/docs\n")
	assert.Contains(t, out.String(), "memtree:/> ")
	assert.Contains(t, out.String(), "memtree:/docs> ")
}

func TestShell_Run_ErrorsAreNotFatal(t *testing.T) {
	t.Parallel()

	tree := memtree.New(config.NewConfig(nil))
	in := strings.NewReader("cd nowhere\nmkdir docs\nexit\n")
	out := &bytes.Buffer{}

	require.NoError(t, New(tree, in, out).Run())

	assert.Contains(t, out.String(), "error: path not found: nowhere")
	_, err := tree.Resolver.Resolve(filesystem.RootID, "/docs")
	assert.NoError(t, err, "session must continue after a failed command")
}

func mustPath(t *testing.T, tree *memtree.FileTree) string {
	t.Helper()
	p, err := tree.Path(tree.Nav.Current().ID())
	require.NoError(t, err)
	return p
}
