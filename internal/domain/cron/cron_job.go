package cron

import (
	"context"

	"github.com/questx-lab/rewardengine/pkg/xcontext"
	"github.com/robfig/cron/v3"
)

type CronJob interface {
	Name() string
	Do(context.Context)
}

type CronJobManager struct {
	cron *cron.Cron
}

func NewCronJobManager() *CronJobManager {
	return &CronJobManager{cron: cron.New()}
}

// Register schedules job with a cron spec, such as "@every 5m" or
// "0 * * * *".
func (m *CronJobManager) Register(ctx context.Context, spec string, job CronJob) error {
	_, err := m.cron.AddFunc(spec, func() {
		xcontext.Logger(ctx).Debugf("Cron job %s started", job.Name())
		job.Do(ctx)
	})

	return err
}

func (m *CronJobManager) Start(ctx context.Context) {
	m.cron.Start()
	xcontext.Logger(ctx).Infof("Cron job manager started")
}

// Stop waits for the running jobs to complete or ctx to be done.
func (m *CronJobManager) Stop(ctx context.Context) {
	select {
	case <-m.cron.Stop().Done():
	case <-ctx.Done():
	}

	xcontext.Logger(ctx).Infof("Cron job manager stopped")
}
