package batch

import (
	"context"
	"fmt"
	"time"

	"nivesh/internal/services"
)

// revaluationTimeout bounds one full batch run, quote fetches included.
const revaluationTimeout = 30 * time.Minute

// RevaluationJob adapts the revaluation service to the scheduler.
type RevaluationJob struct {
	revaluer services.Revaluer
}

// NewRevaluationJob creates the daily revaluation job.
func NewRevaluationJob(revaluer services.Revaluer) *RevaluationJob {
	return &RevaluationJob{revaluer: revaluer}
}

// Name implements Job.
func (j *RevaluationJob) Name() string { return "daily_revaluation" }

// Run executes one full revaluation pass. Per-record failures are
// counted inside the service; the job only fails as a whole when some
// records could not be saved.
func (j *RevaluationJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), revaluationTimeout)
	defer cancel()

	result := j.revaluer.RevalueAll(ctx)
	if result.Failed > 0 {
		return fmt.Errorf("revaluation finished with %d failed records", result.Failed)
	}
	return nil
}
