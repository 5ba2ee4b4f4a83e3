package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Task is a periodic cleanup step. Run reports how many items it removed.
type Task struct {
	Name string
	Run  func() int
}

// Janitor runs cleanup tasks on a fixed schedule.
type Janitor struct {
	cron   *cron.Cron
	tasks  []Task
	logger *zap.Logger
}

// NewJanitor schedules tasks at every interval, e.g. "5m".
func NewJanitor(interval string, logger *zap.Logger, tasks ...Task) (*Janitor, error) {
	j := &Janitor{
		cron:   cron.New(),
		tasks:  tasks,
		logger: logger,
	}
	if _, err := j.cron.AddFunc("@every "+interval, j.runOnce); err != nil {
		return nil, fmt.Errorf("schedule janitor: %w", err)
	}
	return j, nil
}

func (j *Janitor) Start() {
	j.cron.Start()
}

// Stop waits for a running pass to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
}

func (j *Janitor) runOnce() {
	for _, t := range j.tasks {
		if removed := t.Run(); removed > 0 {
			j.logger.Debug("Janitor pass", zap.String("task", t.Name), zap.Int("removed", removed))
		}
	}
}
