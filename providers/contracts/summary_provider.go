package contracts

import "context"

// ISummaryProvider is the transport adapter for one summarization oracle. A
// single blocking call per chunk; callers supply the timeout through ctx.
type ISummaryProvider interface {
	SummarizeChunk(ctx context.Context, prompt string) (string, error)
}
