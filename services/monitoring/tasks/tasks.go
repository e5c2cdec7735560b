package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/GenPay/GenPay-Backend/services/monitoring/logging"
)

// Task is a unit of background work, run once or on an interval.
type Task struct {
	ID          string
	Name        string
	Fn          func(context.Context) error
	Interval    time.Duration // Zero means run once
	LastRun     time.Time
	IsRecurring bool
}

// TaskScheduler manages all scheduled tasks
type TaskScheduler struct {
	tasks  map[string]*Task
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	logger *logging.Logger
}

// NewTaskScheduler creates a new TaskScheduler
func NewTaskScheduler(logger *logging.Logger) *TaskScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskScheduler{
		tasks:  make(map[string]*Task),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

// AddTask adds a new task to the scheduler
func (ts *TaskScheduler) AddTask(id, name string, fn func(context.Context) error, interval time.Duration) (*Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tasks[id]; exists {
		return nil, fmt.Errorf("task with ID %s already exists", id)
	}

	task := &Task{
		ID:          id,
		Name:        name,
		Fn:          fn,
		Interval:    interval,
		IsRecurring: interval > 0,
	}

	ts.tasks[id] = task
	ts.logger.Info(fmt.Sprintf("Added task %s to scheduler", id))
	return task, nil
}

// RunTask immediately executes a specific task
func (ts *TaskScheduler) RunTask(id string) error {
	ts.mu.RLock()
	task, exists := ts.tasks[id]
	ts.mu.RUnlock()

	if !exists {
		return fmt.Errorf("task with ID %s not found", id)
	}

	ts.logger.Info(fmt.Sprintf("Running task %s", id))
	ts.wg.Add(1)
	go func() {
		defer ts.wg.Done()
		ts.execute(task)
	}()

	return nil
}

// Start launches the recurring loop for every registered recurring task.
// One-shot tasks are run once, immediately.
func (ts *TaskScheduler) Start() {
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	for _, task := range ts.tasks {
		t := task
		ts.wg.Add(1)
		go func() {
			defer ts.wg.Done()

			ts.execute(t)
			if !t.IsRecurring {
				return
			}

			ticker := time.NewTicker(t.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					ts.execute(t)
				case <-ts.ctx.Done():
					return
				}
			}
		}()
	}
}

// Stop cancels all running tasks and waits for them to wind down.
func (ts *TaskScheduler) Stop() {
	ts.cancel()
	ts.wg.Wait()
}

func (ts *TaskScheduler) execute(task *Task) {
	if err := task.Fn(ts.ctx); err != nil {
		ts.logger.Error(fmt.Sprintf("Task %s failed: %v", task.Name, err))
	}
	ts.mu.Lock()
	task.LastRun = time.Now()
	ts.mu.Unlock()
}
