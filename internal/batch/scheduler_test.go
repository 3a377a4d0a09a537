package batch

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countingJob struct {
	name   string
	runs   atomic.Int64
	panics bool
	err    error
}

func (j *countingJob) Name() string { return j.name }

func (j *countingJob) Run() error {
	j.runs.Add(1)
	if j.panics {
		panic("job blew up")
	}
	return j.err
}

func TestScheduler(t *testing.T) {
	t.Run("recovers_from_panicking_job", func(t *testing.T) {
		s := NewScheduler()
		bad := &countingJob{name: "bad", panics: true}
		good := &countingJob{name: "good"}

		if err := s.AddJob("@every 10ms", bad); err != nil {
			t.Fatalf("add bad job: %v", err)
		}
		if err := s.AddJob("@every 10ms", good); err != nil {
			t.Fatalf("add good job: %v", err)
		}

		s.Start()
		time.Sleep(150 * time.Millisecond)
		s.Stop()

		// A panic in one run must neither crash the process nor stop
		// later runs of any job.
		if got := bad.runs.Load(); got < 2 {
			t.Errorf("expected the panicking job to keep its schedule, got %d runs", got)
		}
		if got := good.runs.Load(); got < 2 {
			t.Errorf("expected the healthy job to keep its schedule, got %d runs", got)
		}
	})

	t.Run("failing_job_keeps_schedule", func(t *testing.T) {
		s := NewScheduler()
		failing := &countingJob{name: "failing", err: errors.New("transient")}

		if err := s.AddJob("@every 10ms", failing); err != nil {
			t.Fatalf("add job: %v", err)
		}

		s.Start()
		time.Sleep(150 * time.Millisecond)
		s.Stop()

		if got := failing.runs.Load(); got < 2 {
			t.Errorf("expected repeated runs despite errors, got %d", got)
		}
	})

	t.Run("invalid_schedule_rejected", func(t *testing.T) {
		s := NewScheduler()
		if err := s.AddJob("not a schedule", &countingJob{name: "noop"}); err == nil {
			t.Fatal("expected error for invalid schedule")
		}
	})

	t.Run("run_now_bypasses_schedule", func(t *testing.T) {
		s := NewScheduler()
		job := &countingJob{name: "manual"}

		if err := s.RunNow(job); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := job.runs.Load(); got != 1 {
			t.Errorf("expected 1 run, got %d", got)
		}
	})
}
