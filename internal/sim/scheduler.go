package sim

import (
	"context"
	"fmt"
	"time"

	"logistics-sim/internal/logx"
	"logistics-sim/internal/metrics"
)

// Task is one periodic unit of simulation work.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Loop multiplexes tasks on their own cadences inside one sequential
// goroutine. Per-task last-run timestamps live on the Loop itself, so a
// fresh Loop starts with every task immediately due.
type Loop struct {
	tick    time.Duration
	tasks   []Task
	lastRun []time.Time
	log     logx.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewLoop creates a scheduler loop over the given tasks.
func NewLoop(tick time.Duration, log logx.Logger, m *metrics.Metrics, tasks ...Task) *Loop {
	if tick <= 0 {
		tick = time.Second
	}
	return &Loop{
		tick:    tick,
		tasks:   tasks,
		lastRun: make([]time.Time, len(tasks)),
		log:     log,
		metrics: m,
		now:     time.Now,
	}
}

// Run evaluates due tasks every tick until ctx is cancelled. Task errors
// and panics are contained here; only cancellation ends the loop, and it
// is honored between tasks, never mid-task.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("simulation loop started",
		logx.Duration("tick", l.tick),
		logx.Int("tasks", len(l.tasks)),
	)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		now := l.now()
		for i := range l.tasks {
			if ctx.Err() != nil {
				break
			}
			if now.Sub(l.lastRun[i]) <= l.tasks[i].Interval {
				continue
			}
			l.runTask(ctx, &l.tasks[i])
			l.lastRun[i] = now
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(l.tick):
		}
	}
}

// runTask invokes one task, absorbing its error or panic.
func (l *Loop) runTask(ctx context.Context, t *Task) {
	start := l.now()
	err := l.invoke(ctx, t)
	l.metrics.TaskDuration.WithLabelValues(t.Name).Observe(l.now().Sub(start).Seconds())

	if err != nil {
		l.metrics.TaskErrors.WithLabelValues(t.Name).Inc()
		l.log.Error("task failed",
			logx.String("task", t.Name),
			logx.Any("err", err),
		)
	}
}

func (l *Loop) invoke(ctx context.Context, t *Task) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("task %s panicked: %v", t.Name, p)
		}
	}()
	return t.Run(ctx)
}
