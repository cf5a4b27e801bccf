package repo_summarizer

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoghost/repoghost/repo_summarizer/models"
)

func TestAssemble_StampsMetadata(t *testing.T) {
	repoMap := &models.RepoNode{Name: "repo", Type: models.NodeTypeDirectory, Path: "."}
	summaries := []models.FileSummary{{File: "a.go", ChunkID: 0, Summary: "s"}}

	output := Assemble(repoMap, summaries, 5)

	assert.Equal(t, repoMap, output.RepositoryMap)
	assert.Equal(t, summaries, output.FileSummaries)
	assert.Equal(t, 5, output.Metadata.MaxDepth)
	assert.Equal(t, FormatVersion, output.Metadata.FormatVersion)

	_, err := time.Parse(time.RFC3339, output.Metadata.GeneratedAt)
	assert.NoError(t, err)
}

func TestAssemble_NilSummariesBecomeEmptyList(t *testing.T) {
	output := Assemble(&models.RepoNode{}, nil, 5)
	assert.NotNil(t, output.FileSummaries)
	assert.Empty(t, output.FileSummaries)
}

func TestWriteSnapshot_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summaries.json")
	output := Assemble(
		&models.RepoNode{Name: "repo", Type: models.NodeTypeDirectory, Path: "."},
		[]models.FileSummary{{File: "a.go", ChunkID: 0, Summary: "s"}},
		3,
	)

	require.NoError(t, WriteSnapshot(output, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded models.CombinedOutput
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, output.FileSummaries, decoded.FileSummaries)
	assert.Equal(t, output.Metadata, decoded.Metadata)
	assert.Equal(t, "repo", decoded.RepositoryMap.Name)
}

// The one run-fatal failure: a snapshot that cannot be written must error out.
func TestWriteSnapshot_WriteFailureSurfaces(t *testing.T) {
	output := Assemble(&models.RepoNode{}, nil, 5)
	err := WriteSnapshot(output, filepath.Join(t.TempDir(), "no-such-dir", "summaries.json"))
	assert.Error(t, err)
}
