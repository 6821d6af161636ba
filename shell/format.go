package shell

import (
	"github.com/dustin/go-humanize"

	"github.com/memtree/memtree/filesystem"
)

// formatSize renders a file's size in human units. Directories display no
// independent size.
func formatSize(node *filesystem.Node) string {
	if node.IsDir() {
		return "-"
	}
	return humanize.Bytes(uint64(node.Size()))
}

// preview truncates content for property display, marking the cut
func preview(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	return content[:max] + "..."
}
