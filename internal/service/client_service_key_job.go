package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/logger"
)

const defaultKeyJobInterval = time.Minute

// shareRetrier is the part of TripService the job drives.
type shareRetrier interface {
	RetryPendingShares(ctx context.Context, userID string) error
}

type clientKeyJob struct {
	trips  shareRetrier
	logger *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewClientKeyJob creates a job that calls trips.RetryPendingShares on a
// ticker. The job is idle until Start is called.
func NewClientKeyJob(trips shareRetrier, log *logger.Logger) ClientKeyJob {
	return &clientKeyJob{trips: trips, logger: log}
}

func (j *clientKeyJob) Start(ctx context.Context, userID string, interval time.Duration) {
	if interval <= 0 {
		interval = defaultKeyJobInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.trips.RetryPendingShares(jobCtx, userID); err != nil && jobCtx.Err() == nil {
					j.logger.Warn().Err(err).Str("func", "clientKeyJob").Str("user_id", userID).
						Msg("pending key shares not finished")
				}
			}
		}
	}()
}

// Stop is safe to call when the job is not running.
func (j *clientKeyJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
