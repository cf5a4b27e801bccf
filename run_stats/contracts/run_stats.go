package contracts

// RunSnapshot is a point-in-time copy of the counters collected during a run.
type RunSnapshot struct {
	FilesProcessed int
	CacheHits      int
	CacheMisses    int
	FileFailures   int
	OracleCalls    int
	OracleFailures int
	MemoHits       int
}

// IRunStats accumulates per-run counters for files, cache decisions, and
// oracle traffic.
type IRunStats interface {
	RecordFile(cacheHit bool)
	RecordFileFailure()
	RecordOracleCall()
	RecordOracleFailure()
	RecordMemoHit()
	Snapshot() RunSnapshot
	DisplayRunSummary(provider string, model string)
}
