package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"cheapflyer/internal/metrics"
)

// Task interface for scheduled tasks
type Task interface {
	Run(ctx context.Context) error
	Interval() time.Duration
	Name() string
}

// Scheduler runs each task immediately and then on its own interval
type Scheduler struct {
	ctx    context.Context
	cancel context.CancelFunc
	tasks  []Task
	wg     sync.WaitGroup
	once   sync.Once
}

// New creates a new task scheduler bound to ctx
func New(ctx context.Context) *Scheduler {
	ctx, cancel := context.WithCancel(ctx)
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
		tasks:  make([]Task, 0),
	}
}

// AddTask adds a task to the scheduler. Tasks added after Start are not run.
func (s *Scheduler) AddTask(task Task) {
	s.tasks = append(s.tasks, task)
}

// Start begins running all scheduled tasks
func (s *Scheduler) Start() {
	for _, task := range s.tasks {
		if task.Interval() <= 0 {
			slog.Warn("Skipping task with non-positive interval", "task", task.Name())
			continue
		}
		s.wg.Add(1)
		go s.runTask(task)
	}
	slog.Info("Task scheduler started", "task_count", len(s.tasks))
}

// Stop cancels all tasks and waits for in-flight runs to return. Safe to call
// more than once.
func (s *Scheduler) Stop() {
	s.once.Do(func() {
		slog.Info("Stopping task scheduler")
		s.cancel()
		s.wg.Wait()
		slog.Info("Task scheduler stopped")
	})
}

func (s *Scheduler) runTask(task Task) {
	defer s.wg.Done()

	ticker := time.NewTicker(task.Interval())
	defer ticker.Stop()

	s.execute(task)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(task)
		}
	}
}

func (s *Scheduler) execute(task Task) {
	start := time.Now()
	if err := task.Run(s.ctx); err != nil {
		if s.ctx.Err() != nil {
			return
		}
		metrics.TaskRuns.WithLabelValues(task.Name(), "error").Inc()
		slog.Error("Error running task", "task", task.Name(), "error", err)
		return
	}
	metrics.TaskRuns.WithLabelValues(task.Name(), "ok").Inc()
	slog.Debug("Task completed", "task", task.Name(), "duration", time.Since(start))
}
