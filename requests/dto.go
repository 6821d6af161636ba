package requests

import (
	"github.com/memtree/memtree"
)

// NodeRequestDTO is the JSON representation of [memtree.NodeRequest]
type NodeRequestDTO struct {
	Path string                        `json:"path"`
	Type memtree.NodeCreateRequestType `json:"type"`
}

// FileRequestDTO is the JSON representation of [memtree.FileCreateRequest]
type FileRequestDTO struct {
	NodeRequestDTO
	Content *string `json:"content,omitempty"` // Optional initial content (Default empty)
}

type DirRequestDTO struct {
	NodeRequestDTO
}
