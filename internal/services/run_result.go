package services

import "context"

// RunStatus classifies the outcome of one scheduled job run.
type RunStatus int

const (
	RunOK RunStatus = iota
	RunPartialFailure
	RunFailed
)

func (s RunStatus) String() string {
	switch s {
	case RunOK:
		return "ok"
	case RunPartialFailure:
		return "partial_failure"
	case RunFailed:
		return "failed"
	}
	return "unknown"
}

// RunResult is what every scheduled job reports back to the scheduler's error
// boundary: how many items it handled and which ones failed. A failed item
// never aborts the rest of the batch.
type RunResult struct {
	Status    RunStatus
	Processed int
	Errors    []error
}

// JobFunc is the signature of a schedulable job body.
type JobFunc func(ctx context.Context) RunResult

func failedRun(err error) RunResult {
	return RunResult{Status: RunFailed, Errors: []error{err}}
}

func batchRun(processed int, itemErrs []error) RunResult {
	status := RunOK
	if len(itemErrs) > 0 {
		status = RunPartialFailure
	}
	return RunResult{Status: status, Processed: processed, Errors: itemErrs}
}
