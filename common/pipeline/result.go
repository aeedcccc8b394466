package pipeline

import "time"

type StageStatus int

const (
	// StatusSuccess means the stage completed and produced output
	StatusSuccess StageStatus = iota
	// StatusDegraded means the stage completed with missing tools, tool
	// failures or an empty result, and the pipeline continues
	StatusDegraded
	// StatusSkipped means the stage was disabled by configuration
	StatusSkipped
	// StatusFailed means the pipeline cannot continue
	StatusFailed
)

var statusMappings = map[StageStatus]string{
	StatusSuccess:  "success",
	StatusDegraded: "degraded",
	StatusSkipped:  "skipped",
	StatusFailed:   "failed",
}

func (status StageStatus) String() string {
	return statusMappings[status]
}

// StageResult describes the outcome of a single pipeline stage
type StageResult struct {
	Stage  string
	Status StageStatus
	Count  int
	Took   time.Duration
	Err    error
}
