package memtree

// Represents user input for node creation. It should be passed from
// entrypoints (cli, seed files, etc) to the FileTree Add methods
type NodeRequest struct {
	Path string
	Type NodeCreateRequestType
}

type NodeCreateRequestType string

const (
	FileNodeType NodeCreateRequestType = "file"
	DirNodeType  NodeCreateRequestType = "dir"
)

type FileCreateRequest struct {
	NodeRequest
	Content string
}

type DirCreateRequest struct {
	NodeRequest
}
