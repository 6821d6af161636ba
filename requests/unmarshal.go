package requests

import (
	"encoding/json"

	"github.com/memtree/memtree"
)

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (memtree.NodeCreateRequestType, error) {
	var meta struct {
		Type memtree.NodeCreateRequestType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest handles file-specific unmarshaling with content
func UnmarshalFileRequest(data []byte) (*memtree.FileCreateRequest, error) {
	var dto FileRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memtree.FileCreateRequest{
		NodeRequest: convertNodeDTO(dto.NodeRequestDTO),
		Content:     valueOrDefault(dto.Content, ""),
	}, nil
}

// UnmarshalDirRequest handles explicit directory unmarshaling (no content)
func UnmarshalDirRequest(data []byte) (*memtree.DirCreateRequest, error) {
	var dto DirRequestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, err
	}

	return &memtree.DirCreateRequest{
		NodeRequest: convertNodeDTO(dto.NodeRequestDTO),
	}, nil
}

func convertNodeDTO(dto NodeRequestDTO) memtree.NodeRequest {
	return memtree.NodeRequest{
		Path: dto.Path,
		Type: dto.Type,
	}
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
