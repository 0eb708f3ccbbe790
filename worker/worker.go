package worker

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// IJob cron driven job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

type OnWork func() error

type BaseJob struct {
	Cron   *cron.Cron
	OnWork OnWork

	mu        sync.Mutex
	isRunning bool
}

// NewCron cron in the given location, local time when it can't be loaded
func NewCron(location string) *cron.Cron {
	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.Local
	}

	return cron.New(cron.WithLocation(l))
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	<-job.Cron.Stop().Done()
	return nil
}

// Run call OnWork unless the previous round is still running
func (job *BaseJob) Run() {
	job.mu.Lock()
	if job.isRunning {
		job.mu.Unlock()
		return
	}
	job.isRunning = true
	job.mu.Unlock()

	defer func() {
		job.mu.Lock()
		job.isRunning = false
		job.mu.Unlock()
	}()

	_ = job.OnWork()
}
