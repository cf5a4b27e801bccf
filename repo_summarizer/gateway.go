package repo_summarizer

import (
	"context"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/zeebo/xxh3"

	provider_contracts "github.com/repoghost/repoghost/providers/contracts"
	"github.com/repoghost/repoghost/repo_summarizer/contracts"
	stats_contracts "github.com/repoghost/repoghost/run_stats/contracts"
)

// summarizePromptFormat is the fixed instruction wrapped around every chunk.
const summarizePromptFormat = "Please summarize this code chunk concisely:\n\n%s"

// defaultMemoSize bounds the in-run memo of identical chunk texts.
const defaultMemoSize = 512

// SummaryGateway adapts the external oracle for the orchestrator: one call per
// chunk, a caller-supplied timeout per call, and failure folded into the
// returned text so a single bad chunk never aborts the run. Identical chunk
// texts within a run are deduplicated through a small LRU memo; the memo never
// survives the process.
type SummaryGateway struct {
	provider provider_contracts.ISummaryProvider
	timeout  time.Duration
	memo     *lru.Cache[uint64, string]
	stats    stats_contracts.IRunStats
}

// NewSummaryGateway wires a provider adapter into a gateway. A zero timeout
// disables the per-call deadline.
func NewSummaryGateway(provider provider_contracts.ISummaryProvider, timeout time.Duration, stats stats_contracts.IRunStats) contracts.ISummaryGateway {
	memo, err := lru.New[uint64, string](defaultMemoSize)
	if err != nil {
		// lru.New only fails on a non-positive size.
		panic(err)
	}
	return &SummaryGateway{
		provider: provider,
		timeout:  timeout,
		memo:     memo,
		stats:    stats,
	}
}

// Summarize requests a summary for one chunk. On oracle failure the error is
// returned as descriptive summary text and the degraded flag is set.
func (g *SummaryGateway) Summarize(ctx context.Context, chunk string) (string, bool) {
	key := xxh3.HashString(chunk)
	if cached, found := g.memo.Get(key); found {
		g.stats.RecordMemoHit()
		return cached, false
	}

	callCtx := ctx
	if g.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	g.stats.RecordOracleCall()
	summary, err := g.provider.SummarizeChunk(callCtx, fmt.Sprintf(summarizePromptFormat, chunk))
	if err != nil {
		g.stats.RecordOracleFailure()
		return fmt.Sprintf("Error summarizing chunk: %v", err), true
	}

	g.memo.Add(key, summary)
	return summary, false
}
