package repo_summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repoghost/repoghost/repo_summarizer/contracts"
	"github.com/repoghost/repoghost/run_stats"
)

// fakeProvider stands in for the external oracle: deterministic summaries,
// call counting, and optional failures keyed on chunk content.
type fakeProvider struct {
	mutex         sync.Mutex
	calls         int
	failSubstring string
	delay         time.Duration
}

func (f *fakeProvider) SummarizeChunk(ctx context.Context, prompt string) (string, error) {
	f.mutex.Lock()
	f.calls++
	f.mutex.Unlock()

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	if f.failSubstring != "" && strings.Contains(prompt, f.failSubstring) {
		return "", errors.New("simulated timeout")
	}

	// Echo the first line of the chunk so tests can tie summaries back to
	// their chunk content.
	chunk := prompt
	if idx := strings.Index(prompt, "\n\n"); idx >= 0 {
		chunk = prompt[idx+2:]
	}
	firstLine := strings.SplitN(chunk, "\n", 2)[0]
	return "summary of " + firstLine, nil
}

func (f *fakeProvider) callCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls
}

func writeNumberedFile(t *testing.T, dir, name string, lineCount int) string {
	t.Helper()
	var sb strings.Builder
	for i := 1; i <= lineCount; i++ {
		fmt.Fprintf(&sb, "%s line %d\n", name, i)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0644))
	return path
}

func newTestSummarizer(store *CacheStore, provider *fakeProvider, opts Options) contracts.IRepoSummarizer {
	stats := run_stats.NewRunStats()
	gateway := NewSummaryGateway(provider, 0, stats)
	return NewRepoSummarizer(store, gateway, stats, opts)
}

// First run on a 75-line file issues 3 oracle calls; a second run over the
// unchanged file issues none and reproduces the identical output.
func TestRepoSummarizer_CacheIdempotence(t *testing.T) {
	tempDir := t.TempDir()
	file := writeNumberedFile(t, tempDir, "a.go", 75)
	cachePath := filepath.Join(tempDir, "hash_cache.json")
	provider := &fakeProvider{}

	store := LoadCacheStore(cachePath)
	first := newTestSummarizer(store, provider, Options{ChunkSize: 30})
	firstOut, failed := first.ProcessFiles(context.Background(), []string{file})

	assert.Empty(t, failed)
	require.Len(t, firstOut, 3)
	assert.Equal(t, 3, provider.callCount())
	for i, s := range firstOut {
		assert.Equal(t, file, s.File)
		assert.Equal(t, i, s.ChunkID)
	}
	require.NoError(t, store.Save())

	// Second run from the persisted snapshot.
	reloaded := LoadCacheStore(cachePath)
	second := newTestSummarizer(reloaded, provider, Options{ChunkSize: 30})
	secondOut, failed := second.ProcessFiles(context.Background(), []string{file})

	assert.Empty(t, failed)
	assert.Equal(t, 3, provider.callCount(), "unchanged file must issue zero oracle calls")
	assert.Equal(t, firstOut, secondOut)
}

// Mutating one file forces a full re-summarize of that file only; the other
// file's cache entry stays untouched.
func TestRepoSummarizer_SingleFileInvalidation(t *testing.T) {
	tempDir := t.TempDir()
	fileA := writeNumberedFile(t, tempDir, "a.go", 40)
	fileB := writeNumberedFile(t, tempDir, "b.go", 40)
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	provider := &fakeProvider{}

	summarizer := newTestSummarizer(store, provider, Options{ChunkSize: 30})
	summarizer.ProcessFiles(context.Background(), []string{fileA, fileB})
	assert.Equal(t, 4, provider.callCount())

	entryA, _ := store.Get(fileA)

	// Append a line to b.go only.
	f, err := os.OpenFile(fileB, os.O_APPEND|os.O_WRONLY, 0644)
	require.NoError(t, err)
	_, err = f.WriteString("b.go line 41\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	summarizer.ProcessFiles(context.Background(), []string{fileA, fileB})

	// Only b.go's 2 chunks were re-summarized.
	assert.Equal(t, 6, provider.callCount())

	entryAAfter, found := store.Get(fileA)
	require.True(t, found)
	assert.Equal(t, entryA, entryAAfter)
}

// One failing chunk degrades only its own summary; the sibling chunk and the
// sibling file still summarize normally, and the entry is marked degraded.
func TestRepoSummarizer_OracleFailureDegradesSingleChunk(t *testing.T) {
	tempDir := t.TempDir()
	fileA := writeNumberedFile(t, tempDir, "a.go", 45)
	fileB := writeNumberedFile(t, tempDir, "b.go", 10)
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	// a.go line 31 lands in chunk 1 of a.go and nowhere else.
	provider := &fakeProvider{failSubstring: "a.go line 31"}

	summarizer := newTestSummarizer(store, provider, Options{ChunkSize: 30})
	out, failed := summarizer.ProcessFiles(context.Background(), []string{fileA, fileB})

	assert.Empty(t, failed)
	require.Len(t, out, 3)
	assert.Equal(t, "summary of a.go line 1", out[0].Summary)
	assert.Contains(t, out[1].Summary, "Error summarizing chunk:")
	assert.Equal(t, "summary of b.go line 1", out[2].Summary)

	entryA, found := store.Get(fileA)
	require.True(t, found)
	assert.True(t, entryA.Degraded)

	entryB, found := store.Get(fileB)
	require.True(t, found)
	assert.False(t, entryB.Degraded)
}

// By default a degraded entry is reused like any other (the original
// behavior); with ResummarizeDegraded the entry is excluded from reuse even
// though the fingerprint still matches.
func TestRepoSummarizer_ResummarizeDegraded(t *testing.T) {
	tempDir := t.TempDir()
	file := writeNumberedFile(t, tempDir, "a.go", 10)
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))

	failing := &fakeProvider{failSubstring: "a.go line 1"}
	summarizer := newTestSummarizer(store, failing, Options{ChunkSize: 30})
	summarizer.ProcessFiles(context.Background(), []string{file})

	entry, _ := store.Get(file)
	require.True(t, entry.Degraded)

	// Default policy: degraded entry still counts as a hit.
	healthy := &fakeProvider{}
	reuse := newTestSummarizer(store, healthy, Options{ChunkSize: 30})
	out, _ := reuse.ProcessFiles(context.Background(), []string{file})
	assert.Equal(t, 0, healthy.callCount())
	assert.Contains(t, out[0].Summary, "Error summarizing chunk:")

	// Opt-in policy: degraded entry is re-summarized and healed.
	heal := newTestSummarizer(store, healthy, Options{ChunkSize: 30, ResummarizeDegraded: true})
	out, _ = heal.ProcessFiles(context.Background(), []string{file})
	assert.Equal(t, 1, healthy.callCount())
	assert.Equal(t, "summary of a.go line 1", out[0].Summary)

	entry, _ = store.Get(file)
	assert.False(t, entry.Degraded)
}

// With a concurrent worker pool, file_summaries still come out in ascending
// chunk order regardless of completion timing.
func TestRepoSummarizer_OrderingUnderConcurrency(t *testing.T) {
	tempDir := t.TempDir()
	file := writeNumberedFile(t, tempDir, "big.go", 120)
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	provider := &fakeProvider{delay: 2 * time.Millisecond}

	summarizer := newTestSummarizer(store, provider, Options{ChunkSize: 10, ChunkWorkers: 4})
	out, failed := summarizer.ProcessFiles(context.Background(), []string{file})

	assert.Empty(t, failed)
	require.Len(t, out, 12)
	for i, s := range out {
		assert.Equal(t, i, s.ChunkID)
		assert.Equal(t, fmt.Sprintf("summary of big.go line %d", i*10+1), s.Summary)
	}
}

// A file that cannot be read is skipped and reported; the rest of the run
// continues.
func TestRepoSummarizer_UnreadableFileSkipped(t *testing.T) {
	tempDir := t.TempDir()
	good := writeNumberedFile(t, tempDir, "good.go", 5)
	missing := filepath.Join(tempDir, "missing.go")
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	provider := &fakeProvider{}

	summarizer := newTestSummarizer(store, provider, Options{ChunkSize: 30})
	out, failed := summarizer.ProcessFiles(context.Background(), []string{missing, good})

	assert.Equal(t, []string{missing}, failed)
	require.Len(t, out, 1)
	assert.Equal(t, good, out[0].File)

	_, found := store.Get(missing)
	assert.False(t, found)
}

// An empty file caches an empty summary list and produces no output rows.
func TestRepoSummarizer_EmptyFile(t *testing.T) {
	tempDir := t.TempDir()
	empty := filepath.Join(tempDir, "empty.go")
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	provider := &fakeProvider{}

	summarizer := newTestSummarizer(store, provider, Options{ChunkSize: 30})
	out, failed := summarizer.ProcessFiles(context.Background(), []string{empty})

	assert.Empty(t, failed)
	assert.Empty(t, out)
	assert.Equal(t, 0, provider.callCount())

	entry, found := store.Get(empty)
	require.True(t, found)
	assert.Empty(t, entry.Summaries)
}

// Cancelling the context stops new work but keeps already-completed entries
// valid and reusable.
func TestRepoSummarizer_CancellationKeepsPartialProgress(t *testing.T) {
	tempDir := t.TempDir()
	fileA := writeNumberedFile(t, tempDir, "a.go", 10)
	fileB := writeNumberedFile(t, tempDir, "b.go", 10)
	store := LoadCacheStore(filepath.Join(tempDir, "hash_cache.json"))
	provider := &fakeProvider{}

	ctx, cancel := context.WithCancel(context.Background())
	summarizer := NewRepoSummarizer(store, NewSummaryGateway(provider, 0, run_stats.NewRunStats()), run_stats.NewRunStats(), Options{
		ChunkSize: 30,
		OnFileDone: func(path string, cacheHit bool, failed bool) {
			cancel() // stop after the first file completes
		},
	})

	out, _ := summarizer.ProcessFiles(ctx, []string{fileA, fileB})

	require.Len(t, out, 1)
	assert.Equal(t, fileA, out[0].File)

	_, found := store.Get(fileA)
	assert.True(t, found)
	_, found = store.Get(fileB)
	assert.False(t, found)
}

// Identical chunk texts within one run are served from the gateway memo
// without extra oracle calls.
func TestSummaryGateway_MemoDedupesIdenticalChunks(t *testing.T) {
	provider := &fakeProvider{}
	stats := run_stats.NewRunStats()
	gateway := NewSummaryGateway(provider, 0, stats)

	first, degraded := gateway.Summarize(context.Background(), "shared chunk")
	assert.False(t, degraded)
	second, degraded := gateway.Summarize(context.Background(), "shared chunk")
	assert.False(t, degraded)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount())
	assert.Equal(t, 1, stats.Snapshot().MemoHits)
}

// Failure text is never memoized, so a later retry of the same chunk reaches
// the oracle again.
func TestSummaryGateway_FailuresNotMemoized(t *testing.T) {
	provider := &fakeProvider{failSubstring: "boom"}
	gateway := NewSummaryGateway(provider, 0, run_stats.NewRunStats())

	text, degraded := gateway.Summarize(context.Background(), "boom")
	assert.True(t, degraded)
	assert.Contains(t, text, "Error summarizing chunk:")

	_, degraded = gateway.Summarize(context.Background(), "boom")
	assert.True(t, degraded)
	assert.Equal(t, 2, provider.callCount())
}
