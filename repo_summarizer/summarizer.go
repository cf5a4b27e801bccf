package repo_summarizer

import (
	"context"
	"log"
	"os"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/repoghost/repoghost/repo_summarizer/contracts"
	"github.com/repoghost/repoghost/repo_summarizer/models"
	stats_contracts "github.com/repoghost/repoghost/run_stats/contracts"
)

// Options tunes the orchestrator. Zero values mean 30-line chunks, one chunk
// summarized at a time, and degraded cache entries reused like any other.
type Options struct {
	ChunkSize    int
	ChunkWorkers int
	// ResummarizeDegraded excludes cache entries marked degraded from reuse,
	// so a transient oracle failure stops poisoning the cache before the file
	// itself changes.
	ResummarizeDegraded bool

	// Progress hooks for the presentation layer. OnChunkDone may be invoked
	// from worker goroutines when ChunkWorkers > 1.
	OnFileStart func(path string)
	OnFileDone  func(path string, cacheHit bool, failed bool)
	OnChunkDone func(path string, chunkID int, total int)
}

// RepoSummarizer decides per file whether cached summaries can be reused or
// the file must be re-chunked and re-summarized. Invalidation is file-granular:
// a changed fingerprint replaces the whole entry, never single chunks.
type RepoSummarizer struct {
	opts    Options
	store   *CacheStore
	gateway contracts.ISummaryGateway
	stats   stats_contracts.IRunStats
}

// NewRepoSummarizer wires the cache store, oracle gateway, and stats collector
// into an orchestrator.
func NewRepoSummarizer(store *CacheStore, gateway contracts.ISummaryGateway, stats stats_contracts.IRunStats, opts Options) contracts.IRepoSummarizer {
	if opts.ChunkSize < 1 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.ChunkWorkers < 1 {
		opts.ChunkWorkers = 1
	}
	return &RepoSummarizer{
		opts:    opts,
		store:   store,
		gateway: gateway,
		stats:   stats,
	}
}

// ProcessFiles runs the incremental loop over files in discovery order and
// returns the combined summaries plus the paths that were skipped because
// they could not be read or hashed. File-level failures never abort the run.
// On context cancellation no new oracle calls are issued; everything already
// summarized stays in the store and remains reusable on the next run.
func (rs *RepoSummarizer) ProcessFiles(ctx context.Context, files []string) ([]models.FileSummary, []string) {
	var combined []models.FileSummary
	var failedFiles []string

	for _, path := range files {
		if ctx.Err() != nil {
			break
		}

		if rs.opts.OnFileStart != nil {
			rs.opts.OnFileStart(path)
		}

		current, err := Fingerprint(path)
		if err != nil {
			log.Printf("Warning: skipping file %s: %v", path, err)
			rs.stats.RecordFileFailure()
			failedFiles = append(failedFiles, path)
			if rs.opts.OnFileDone != nil {
				rs.opts.OnFileDone(path, false, true)
			}
			continue
		}

		if cached, found := rs.store.Get(path); found && cached.Hash == current && rs.reusable(cached) {
			// Unchanged file: reuse stored summaries verbatim, in stored
			// chunk-index order, with zero oracle calls.
			for _, s := range cached.Summaries {
				combined = append(combined, models.FileSummary{File: path, ChunkID: s.ChunkID, Summary: s.Summary})
			}
			rs.stats.RecordFile(true)
			if rs.opts.OnFileDone != nil {
				rs.opts.OnFileDone(path, true, false)
			}
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: skipping file %s: %v", path, err)
			rs.stats.RecordFileFailure()
			failedFiles = append(failedFiles, path)
			if rs.opts.OnFileDone != nil {
				rs.opts.OnFileDone(path, false, true)
			}
			continue
		}

		chunks := ChunkLines(ReadLines(content), rs.opts.ChunkSize)
		summaries, degraded := rs.summarizeChunks(ctx, path, chunks)

		for _, s := range summaries {
			combined = append(combined, models.FileSummary{File: path, ChunkID: s.ChunkID, Summary: s.Summary})
		}

		// Whole-entry replacement: there is no per-chunk partial reuse even if
		// only one chunk's content changed, because fingerprinting is
		// file-granular.
		rs.store.Put(path, models.CacheEntry{
			Hash:      current,
			Summaries: summaries,
			Degraded:  degraded,
		})

		rs.stats.RecordFile(false)
		if rs.opts.OnFileDone != nil {
			rs.opts.OnFileDone(path, false, false)
		}
	}

	return combined, failedFiles
}

// reusable applies the degraded-entry policy on top of the fingerprint match.
func (rs *RepoSummarizer) reusable(entry models.CacheEntry) bool {
	return !(rs.opts.ResummarizeDegraded && entry.Degraded)
}

// summarizeChunks runs every chunk of one file through the gateway on a
// bounded worker pool. Results land in an index-addressed slice so the output
// is in ascending chunk order regardless of completion timing.
func (rs *RepoSummarizer) summarizeChunks(ctx context.Context, path string, chunks []string) ([]models.ChunkSummary, bool) {
	if len(chunks) == 0 {
		return []models.ChunkSummary{}, false
	}

	results := make([]models.ChunkSummary, len(chunks))
	var degraded atomic.Bool

	// The gateway folds oracle failures into the summary text, so no worker
	// ever returns an error and the whole pool always drains.
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(rs.opts.ChunkWorkers)

	for idx, chunk := range chunks {
		idx, chunk := idx, chunk
		group.Go(func() error {
			summary, bad := rs.gateway.Summarize(groupCtx, chunk)
			if bad {
				degraded.Store(true)
			}
			results[idx] = models.ChunkSummary{ChunkID: idx, Summary: summary}
			if rs.opts.OnChunkDone != nil {
				rs.opts.OnChunkDone(path, idx, len(chunks))
			}
			return nil
		})
	}
	_ = group.Wait()

	return results, degraded.Load()
}
