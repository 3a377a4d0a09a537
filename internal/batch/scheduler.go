// Package batch runs the scheduled background jobs, most importantly the
// daily revaluation that refreshes every derived valuation in the system.
package batch

import (
	"github.com/robfig/cron/v3"

	"nivesh/internal/logger"
)

// Job is a named unit of scheduled work.
type Job interface {
	Run() error
	Name() string
}

// Scheduler manages background jobs on cron schedules.
type Scheduler struct {
	cron *cron.Cron
}

// cronLogger adapts the zap sugared logger to the cron.Logger interface
// so recovered job panics land in the application log.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Get().Infow(msg, keysAndValues...)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Get().Errorw(msg, append(keysAndValues, "error", err)...)
}

// NewScheduler creates an empty scheduler. Jobs run behind a recovery
// wrapper so a panicking run is logged instead of crashing the process.
func NewScheduler() *Scheduler {
	return &Scheduler{cron: cron.New(cron.WithChain(cron.Recover(cronLogger{})))}
}

// AddJob registers a job with a cron schedule ("@daily", "0 2 * * *", ...).
// A panicking or failing run is logged and does not affect later runs.
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		logger.Get().Infow("running scheduled job", "job", job.Name())
		if err := job.Run(); err != nil {
			logger.Get().Errorw("scheduled job failed", "job", job.Name(), "error", err)
			return
		}
		logger.Get().Infow("scheduled job completed", "job", job.Name())
	})
	if err != nil {
		return err
	}

	logger.Get().Infow("job registered", "job", job.Name(), "schedule", schedule)
	return nil
}

// Start begins running registered jobs on their schedules.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Get().Info("scheduler started")
}

// Stop stops the scheduler and waits for in-flight jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Get().Info("scheduler stopped")
}

// RunNow executes a job immediately, outside its schedule.
func (s *Scheduler) RunNow(job Job) error {
	logger.Get().Infow("running job immediately", "job", job.Name())
	return job.Run()
}
