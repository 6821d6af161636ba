// Package shell implements the interactive presentation layer over a
// memtree.FileTree. It holds no tree state of its own: every command
// re-reads through the store and navigator, so it always renders the
// post-mutation tree.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/memtree/memtree"
	"github.com/memtree/memtree/filesystem"
	"github.com/memtree/memtree/internal/util"
)

type Shell struct {
	tree   *memtree.FileTree
	in     io.Reader
	out    io.Writer
	logger util.Logger
	done   bool
}

func New(tree *memtree.FileTree, in io.Reader, out io.Writer) *Shell {
	return &Shell{
		tree:   tree,
		in:     in,
		out:    out,
		logger: util.GetLogger("shell"),
	}
}

// Run reads commands line by line until EOF or an exit command. Command
// failures are printed, never fatal.
func (sh *Shell) Run() error {
	sh.logger.Debug().Msg("Shell session started")
	scanner := bufio.NewScanner(sh.in)
	for !sh.done {
		fmt.Fprintf(sh.out, "memtree:%s> ", sh.pwd())
		if !scanner.Scan() {
			break
		}
		if err := sh.Exec(scanner.Text()); err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
	}
	sh.logger.Debug().Msg("Shell session ended")
	return scanner.Err()
}

// Exec runs a single command line
func (sh *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		sh.printHelp()
	case "pwd":
		fmt.Fprintln(sh.out, sh.pwd())
	case "ls":
		return sh.list(args)
	case "cd":
		return sh.changeDir(args)
	case "back":
		if !sh.tree.Nav.Back() {
			fmt.Fprintln(sh.out, "no history")
			return nil
		}
		fmt.Fprintln(sh.out, sh.pwd())
	case "forward":
		if !sh.tree.Nav.Forward() {
			fmt.Fprintln(sh.out, "no forward history")
			return nil
		}
		fmt.Fprintln(sh.out, sh.pwd())
	case "up":
		if !sh.tree.Nav.Up() {
			fmt.Fprintln(sh.out, "already at root")
			return nil
		}
		fmt.Fprintln(sh.out, sh.pwd())
	case "mkdir":
		return sh.create(args, filesystem.Directory)
	case "touch":
		return sh.create(args, filesystem.File)
	case "rm":
		return sh.remove(args)
	case "rename":
		return sh.rename(args)
	case "write":
		return sh.write(line)
	case "cat":
		return sh.cat(args)
	case "stat":
		return sh.stat(args)
	case "tree":
		return sh.renderTree(args)
	case "exit", "quit":
		sh.done = true
	default:
		sh.logger.Debug().Str("command", cmd).Msg("Unknown command")
		return fmt.Errorf("unknown command %q (try help)", cmd)
	}
	return nil
}

func (sh *Shell) printHelp() {
	fmt.Fprint(sh.out, `commands:
  ls [path]             list directory contents
  cd <path>             change directory (supports / .. . ~)
  pwd                   print current directory
  back | forward | up   navigate history / parent
  mkdir <path>          create a directory (parent must exist)
  touch <path>          create an empty file
  rm <path>             delete a node and its subtree
  rename <path> <name>  rename a node
  write <path> <text>   replace file content
  cat <path>            print file content
  stat <path>           show node properties
  tree [path]           render the subtree
  exit                  leave the shell
`)
}

func (sh *Shell) pwd() string {
	p, err := sh.tree.Path(sh.tree.Nav.Current().ID())
	if err != nil {
		return "/"
	}
	return p
}

// resolveArg resolves a path argument relative to the current directory,
// defaulting to the current directory itself when no argument was given
func (sh *Shell) resolveArg(args []string) (*filesystem.Node, error) {
	if len(args) == 0 {
		return sh.tree.Nav.Current(), nil
	}
	return sh.tree.Resolver.Resolve(sh.tree.Nav.Current().ID(), args[0])
}

func (sh *Shell) list(args []string) error {
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	children, err := sh.tree.Children(node.ID())
	if err != nil {
		return err
	}
	for _, child := range children {
		fmt.Fprintf(sh.out, "%-9s  %8s  %s  %s\n",
			child.Kind(), formatSize(child), child.ModifiedAt().Format("2006-01-02 15:04"), child.Name())
	}
	return nil
}

func (sh *Shell) changeDir(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cd <path>")
	}
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	if !node.IsDir() {
		return fmt.Errorf("%w: cd target is a file", filesystem.ErrWrongKind)
	}
	return sh.tree.Nav.NavigateTo(node.ID())
}

func (sh *Shell) create(args []string, kind filesystem.NodeKind) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: %s <path>", map[filesystem.NodeKind]string{filesystem.Directory: "mkdir", filesystem.File: "touch"}[kind])
	}
	_, err := sh.tree.CreateAtPath(sh.tree.Nav.Current().ID(), args[0], kind, "")
	return err
}

func (sh *Shell) remove(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rm <path>")
	}
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	return sh.tree.Delete(node.ID())
}

func (sh *Shell) rename(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: rename <path> <new name>")
	}
	node, err := sh.tree.Resolver.Resolve(sh.tree.Nav.Current().ID(), args[0])
	if err != nil {
		return err
	}
	return sh.tree.Rename(node.ID(), args[1])
}

// write takes the raw line so content may contain spaces
func (sh *Shell) write(line string) error {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) < 2 {
		return fmt.Errorf("usage: write <path> <text>")
	}
	text := ""
	if len(parts) == 3 {
		text = parts[2]
	}
	node, err := sh.tree.Resolver.Resolve(sh.tree.Nav.Current().ID(), parts[1])
	if err != nil {
		return err
	}
	return sh.tree.UpdateContent(node.ID(), text)
}

func (sh *Shell) cat(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cat <path>")
	}
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	if node.IsDir() {
		return fmt.Errorf("%w: cat target is a directory", filesystem.ErrWrongKind)
	}
	fmt.Fprintln(sh.out, node.Content())
	return nil
}

func (sh *Shell) stat(args []string) error {
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	p, err := sh.tree.Path(node.ID())
	if err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "name:     %s\n", node.Name())
	fmt.Fprintf(sh.out, "type:     %s\n", node.Kind())
	fmt.Fprintf(sh.out, "path:     %s\n", p)
	fmt.Fprintf(sh.out, "uuid:     %s\n", node.UUID())
	fmt.Fprintf(sh.out, "created:  %s\n", node.CreatedAt().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(sh.out, "modified: %s\n", node.ModifiedAt().Format("2006-01-02 15:04:05"))
	if !node.IsDir() {
		fmt.Fprintf(sh.out, "size:     %s\n", formatSize(node))
		fmt.Fprintf(sh.out, "preview:  %s\n", preview(node.Content(), sh.tree.Config().PreviewLen))
	}
	return nil
}

func (sh *Shell) renderTree(args []string) error {
	node, err := sh.resolveArg(args)
	if err != nil {
		return err
	}
	return sh.renderSubtree(node, 0)
}

func (sh *Shell) renderSubtree(node *filesystem.Node, depth int) error {
	name := node.Name()
	if node.IsRoot() {
		name = "/"
	} else if node.IsDir() {
		name += "/"
	}
	fmt.Fprintf(sh.out, "%s%s\n", strings.Repeat("  ", depth), name)

	if !node.IsDir() {
		return nil
	}
	children, err := sh.tree.Children(node.ID())
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := sh.renderSubtree(child, depth+1); err != nil {
			return err
		}
	}
	return nil
}
