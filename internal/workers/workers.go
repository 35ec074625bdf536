package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/service"
)

// Workers starts and stops a fixed set of workers together.
type Workers struct {
	workers []Worker
}

func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

// Start launches every worker in registration order.
func (w *Workers) Start(ctx context.Context, userID string) {
	for _, worker := range w.workers {
		worker.Start(ctx, userID)
	}
}

// Stop stops the workers in reverse order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

type keyShareWorker struct {
	job      service.ClientKeyJob
	interval time.Duration
}

// NewKeyShareWorker runs job every interval to finish pending trip-key
// shares of the session user.
func NewKeyShareWorker(job service.ClientKeyJob, interval time.Duration) Worker {
	return &keyShareWorker{job: job, interval: interval}
}

func (k *keyShareWorker) Start(ctx context.Context, userID string) {
	k.job.Start(ctx, userID, k.interval)
}

func (k *keyShareWorker) Stop() {
	k.job.Stop()
}
