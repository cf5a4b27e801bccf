package run_stats

import (
	"fmt"
	"sync"

	"github.com/repoghost/repoghost/constants/lipgloss"
	"github.com/repoghost/repoghost/run_stats/contracts"
)

// runStats implementation
type runStats struct {
	mutex sync.Mutex

	filesProcessed int
	cacheHits      int
	cacheMisses    int
	fileFailures   int
	oracleCalls    int
	oracleFailures int
	memoHits       int
}

// NewRunStats creates a new run statistics collector.
func NewRunStats() contracts.IRunStats {
	return &runStats{}
}

// RecordFile counts a completed file and whether it was served from cache.
func (rs *runStats) RecordFile(cacheHit bool) {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	rs.filesProcessed++
	if cacheHit {
		rs.cacheHits++
	} else {
		rs.cacheMisses++
	}
}

// RecordFileFailure counts a file skipped because it could not be read or hashed.
func (rs *runStats) RecordFileFailure() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	rs.fileFailures++
}

// RecordOracleCall counts one summarization request issued to the oracle.
func (rs *runStats) RecordOracleCall() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	rs.oracleCalls++
}

// RecordOracleFailure counts a chunk whose oracle call produced error text.
func (rs *runStats) RecordOracleFailure() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	rs.oracleFailures++
}

// RecordMemoHit counts a chunk served from the in-run memo instead of the oracle.
func (rs *runStats) RecordMemoHit() {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	rs.memoHits++
}

func (rs *runStats) Snapshot() contracts.RunSnapshot {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	return contracts.RunSnapshot{
		FilesProcessed: rs.filesProcessed,
		CacheHits:      rs.cacheHits,
		CacheMisses:    rs.cacheMisses,
		FileFailures:   rs.fileFailures,
		OracleCalls:    rs.oracleCalls,
		OracleFailures: rs.oracleFailures,
		MemoHits:       rs.memoHits,
	}
}

func (rs *runStats) DisplayRunSummary(provider string, model string) {
	snapshot := rs.Snapshot()

	statsInfo := fmt.Sprintf(
		"Files: %d (cache hits: %d, misses: %d, skipped: %d) - Oracle calls: %d (failures: %d, memo hits: %d) - Provider: %s/%s",
		snapshot.FilesProcessed, snapshot.CacheHits, snapshot.CacheMisses, snapshot.FileFailures,
		snapshot.OracleCalls, snapshot.OracleFailures, snapshot.MemoHits,
		provider, model,
	)

	statsBox := lipgloss.BoxStyle.Render(statsInfo)
	fmt.Println(statsBox)
}
