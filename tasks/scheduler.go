// Package tasks implements the cooperative periodic-task scheduler: a
// concrete {name, interval, fn} runner replacing the source's BaseTask
// inheritance hierarchy (spec.md §9 design note — "dynamic dispatch on
// tasks" re-architected as a tagged variant, no inheritance).
package tasks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Task is one named periodic job: Fn runs once per tick.
// Exceptions are caught, logged, and the next tick is scheduled
// regardless — periodic tasks never die (spec.md §7).
type Task struct {
	Name     string
	Interval time.Duration
	Fn       func(ctx context.Context) error
}

var tickDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
	Name: "relayer_task_tick_duration_seconds",
	Help: "Duration of a single periodic task tick.",
}, []string{"task"})

var tickErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
	Name: "relayer_task_tick_errors_total",
	Help: "Count of periodic task ticks that returned an error.",
}, []string{"task"})

func init() {
	prometheus.MustRegister(tickDuration, tickErrors)
}

// Scheduler drives a fixed list of Tasks, each on its own goroutine,
// until its context is cancelled.
type Scheduler struct {
	tasks []Task
	log   *logrus.Entry
}

// NewScheduler constructs a Scheduler over the given tasks.
func NewScheduler(log *logrus.Entry, tasks ...Task) *Scheduler {
	return &Scheduler{tasks: tasks, log: log.WithField("component", "scheduler")}
}

// Run starts every task's loop and blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	done := make(chan struct{}, len(s.tasks))
	for _, t := range s.tasks {
		go func(t Task) {
			s.runLoop(ctx, t)
			done <- struct{}{}
		}(t)
	}
	<-ctx.Done()
	for range s.tasks {
		<-done
	}
}

func (s *Scheduler) runLoop(ctx context.Context, t Task) {
	log := s.log.WithField("task", t.Name)
	for {
		start := time.Now()
		if err := t.Fn(ctx); err != nil {
			tickErrors.WithLabelValues(t.Name).Inc()
			log.WithError(err).Error("task tick failed")
		}
		tickDuration.WithLabelValues(t.Name).Observe(time.Since(start).Seconds())

		elapsed := time.Since(start)
		sleep := t.Interval - elapsed
		if sleep < 0 {
			sleep = 0
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(sleep):
		}
	}
}
