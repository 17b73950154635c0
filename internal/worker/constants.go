package worker

import "time"

// Log messages for job execution
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
)

// Log messages for trash retention runs
const (
	LogMsgTrashPurgeCompleted = "Trash purge completed"
	LogMsgTrashPurgeFailed    = "Trash purge failed"
)

// DefaultPurgeInterval is how often the retention job runs. Retention is
// measured in days, so twice a day is frequent enough.
const DefaultPurgeInterval = 12 * time.Hour

// TestWorkerProcessWaitTime is how long tests wait for pooled jobs, in
// milliseconds
const TestWorkerProcessWaitTime = 100
