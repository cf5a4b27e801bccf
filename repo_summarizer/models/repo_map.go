package models

import "time"

const (
	NodeTypeDirectory = "directory"
	NodeTypeFile      = "file"
)

// RepoNode is one node of the hierarchical repository map: either a directory
// with ordered children, or a leaf file. Paths are relative to the scanned root.
type RepoNode struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Path     string      `json:"path"`
	Children []*RepoNode `json:"children,omitempty"`
}

// Metadata stamps a combined output snapshot for downstream schema detection.
type Metadata struct {
	GeneratedAt   string `json:"generated_at"`
	MaxDepth      int    `json:"max_depth"`
	FormatVersion string `json:"format_version"`
}

// CombinedOutput is the run's final artifact: repository structure joined with
// every per-file, per-chunk summary in discovery order.
type CombinedOutput struct {
	RepositoryMap *RepoNode     `json:"repository_map"`
	FileSummaries []FileSummary `json:"file_summaries"`
	Metadata      Metadata      `json:"metadata"`
}

// NewMetadata stamps the current time in RFC 3339 form.
func NewMetadata(maxDepth int, formatVersion string) Metadata {
	return Metadata{
		GeneratedAt:   time.Now().Format(time.RFC3339),
		MaxDepth:      maxDepth,
		FormatVersion: formatVersion,
	}
}
