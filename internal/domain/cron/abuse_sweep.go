package cron

import (
	"context"
	"time"

	"github.com/questx-lab/rewardengine/pkg/xcontext"
)

type Sweeper interface {
	Sweep(now time.Time) int
}

// AbuseSweepJob evicts the abuse counters which have no event in their window
// anymore.
type AbuseSweepJob struct {
	sweeper Sweeper
}

func NewAbuseSweepJob(sweeper Sweeper) *AbuseSweepJob {
	return &AbuseSweepJob{sweeper: sweeper}
}

func (job *AbuseSweepJob) Name() string {
	return "abuse_sweep"
}

func (job *AbuseSweepJob) Do(ctx context.Context) {
	n := job.sweeper.Sweep(time.Now().UTC())
	if n > 0 {
		xcontext.Logger(ctx).Debugf("Evicted %d idle abuse counters", n)
	}
}
