package jobs

import (
	"context"
	"fmt"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderExpiryJob *OrderExpiryJob
}

func NewJobManager(orderExpiryJob *OrderExpiryJob) *JobManager {
	return &JobManager{orderExpiryJob: orderExpiryJob}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.orderExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start order expiry job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones until ctx is done.
func (jm *JobManager) StopAll(ctx context.Context) {
	jm.orderExpiryJob.Stop(ctx)
}
