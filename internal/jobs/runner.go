package jobs

import (
	"fmt"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

// everySecond is the schedule of jobs that carry none.
const everySecond = "@every 1s"

type Job interface {
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// Named jobs show up in the logs under their name.
type Named interface {
	Name() string
}

// TaskExecutor runs jobs on their cron schedule. A tick that finds the
// previous run of the same job still going is skipped.
type TaskExecutor struct {
	cron     *cron.Cron
	jobs     []Job
	cronJobs []CronJob
	running  mapset.Set[string]
	mu       sync.Mutex
}

func NewTaskExecutor(jobs []Job, cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:     cron.New(),
		jobs:     jobs,
		cronJobs: cronJobs,
		running:  mapset.NewThreadUnsafeSet[string](),
	}
}

// Run schedules every job and starts the cron in its own goroutine. Plain jobs
// run every second.
func (t *TaskExecutor) Run() error {
	for _, job := range t.cronJobs {
		if err := t.schedule(job.Schedule(), job); err != nil {
			return err
		}
	}

	for _, job := range t.jobs {
		if err := t.schedule(everySecond, job); err != nil {
			return err
		}
	}

	t.cron.Start()
	return nil
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}

func (t *TaskExecutor) schedule(spec string, job Job) error {
	name := jobName(job)
	err := t.cron.AddFunc(spec, func() {
		t.runOnce(name, job)
	})
	if err != nil {
		logrus.Errorf("failed to add task %s to cron: %v", name, err)
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	logrus.Debugf("task %s scheduled: %s", name, spec)
	return nil
}

func (t *TaskExecutor) runOnce(name string, job Job) {
	t.mu.Lock()
	if t.running.Contains(name) {
		t.mu.Unlock()
		logrus.Warnf("task %s is still running, skipping", name)
		return
	}
	t.running.Add(name)
	t.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("task %s panicked: %v", name, r)
		}

		t.mu.Lock()
		defer t.mu.Unlock()
		t.running.Remove(name)
	}()

	job.Run()
}

func jobName(job Job) string {
	if named, ok := job.(Named); ok {
		return named.Name()
	}
	return fmt.Sprintf("%T", job)
}
