package repo_summarizer

import (
	"encoding/json"
	"fmt"

	"github.com/repoghost/repoghost/repo_summarizer/models"
)

// DefaultOutputFile is the default name of the combined output snapshot.
const DefaultOutputFile = "summaries.json"

// FormatVersion stamps the combined output so downstream consumers can detect
// schema drift.
const FormatVersion = "1.1"

// Assemble merges the repository map and the ordered per-file, per-chunk
// summaries into one versioned snapshot. Pure merge: the inputs are taken as
// already well-formed.
func Assemble(repoMap *models.RepoNode, fileSummaries []models.FileSummary, maxDepth int) *models.CombinedOutput {
	if fileSummaries == nil {
		fileSummaries = []models.FileSummary{}
	}
	return &models.CombinedOutput{
		RepositoryMap: repoMap,
		FileSummaries: fileSummaries,
		Metadata:      models.NewMetadata(maxDepth, FormatVersion),
	}
}

// WriteSnapshot persists the combined output atomically. Unlike every other
// failure in a run, a snapshot write failure must surface to the caller: the
// user has to know their results did not save.
func WriteSnapshot(output *models.CombinedOutput, path string) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode combined output: %w", err)
	}
	if err := atomicWriteFile(path, data); err != nil {
		return fmt.Errorf("failed to save combined output: %w", err)
	}
	return nil
}
