package contracts

import (
	"context"

	"github.com/repoghost/repoghost/repo_summarizer/models"
)

// IRepoSummarizer orchestrates incremental summarization over a pre-enumerated
// file set, consulting the cache store and calling the gateway on misses.
type IRepoSummarizer interface {
	// ProcessFiles returns the combined summaries in discovery order (ascending
	// chunk id within each file) plus the paths that failed to read or hash.
	ProcessFiles(ctx context.Context, files []string) ([]models.FileSummary, []string)
}

// ISummaryGateway adapts the external summarization oracle: one call per
// chunk, no batching. The boolean reports a degraded (failure-text) result.
type ISummaryGateway interface {
	Summarize(ctx context.Context, chunk string) (summary string, degraded bool)
}
