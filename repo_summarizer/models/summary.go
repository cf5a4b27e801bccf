package models

// ChunkSummary is the oracle's textual response for exactly one chunk of a file.
type ChunkSummary struct {
	ChunkID int    `json:"chunk_id"`
	Summary string `json:"summary"`
}

// CacheEntry is the per-file cache record. It is valid for reuse only while
// Hash still equals the file's current fingerprint.
type CacheEntry struct {
	Hash      string         `json:"hash"`
	Summaries []ChunkSummary `json:"summaries"`
	// Degraded marks entries whose run contained at least one oracle failure,
	// so callers can opt into re-summarizing them before the file changes.
	Degraded bool `json:"degraded,omitempty"`
}

// FileSummary is one row of the combined output: a chunk summary tagged with
// its owning file path.
type FileSummary struct {
	File    string `json:"file"`
	ChunkID int    `json:"chunk_id"`
	Summary string `json:"summary"`
}
