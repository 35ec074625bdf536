// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyRetrier считает вызовы RetryPendingShares и запоминает userID.
type spyRetrier struct {
	calls  atomic.Int64
	userID atomic.Value
	err    error
}

func (s *spyRetrier) RetryPendingShares(_ context.Context, userID string) error {
	s.calls.Add(1)
	s.userID.Store(userID)
	return s.err
}

func TestNewClientKeyJob_ReturnsInterface(t *testing.T) {
	job := NewClientKeyJob(&spyRetrier{}, logger.Nop())
	require.NotNil(t, job)
}

func TestClientKeyJob_Start_CallsRetry(t *testing.T) {
	spy := &spyRetrier{}
	job := NewClientKeyJob(spy, logger.Nop())

	// Интервал 10ms — за 55ms должно быть ~5 тиков
	job.Start(context.Background(), "u-1", 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
	assert.Equal(t, "u-1", spy.userID.Load())
}

func TestClientKeyJob_Stop_StopsGoroutine(t *testing.T) {
	spy := &spyRetrier{}
	job := NewClientKeyJob(spy, logger.Nop())

	job.Start(context.Background(), "u-1", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	callsAfterStop := spy.calls.Load()
	time.Sleep(30 * time.Millisecond)

	assert.Equal(t, callsAfterStop, spy.calls.Load(), "после Stop новых вызовов быть не должно")
}

func TestClientKeyJob_StopWithoutStart(t *testing.T) {
	job := NewClientKeyJob(&spyRetrier{}, logger.Nop())

	assert.NotPanics(t, func() {
		job.Stop()
		job.Stop()
	})
}

func TestClientKeyJob_DefaultInterval(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
	}{
		{name: "zero", interval: 0},
		{name: "negative", interval: -time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spy := &spyRetrier{}
			job := NewClientKeyJob(spy, logger.Nop())

			// дефолт — минута, за 20ms вызовов быть не должно
			job.Start(context.Background(), "u-1", tt.interval)
			time.Sleep(20 * time.Millisecond)
			job.Stop()

			assert.Zero(t, spy.calls.Load())
		})
	}
}

func TestClientKeyJob_RestartSwitchesUser(t *testing.T) {
	spy := &spyRetrier{}
	job := NewClientKeyJob(spy, logger.Nop())

	job.Start(context.Background(), "u-1", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	// повторный Start останавливает предыдущую горутину
	job.Start(context.Background(), "u-2", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	job.Stop()

	assert.Equal(t, "u-2", spy.userID.Load())
}

func TestClientKeyJob_ContextCancel(t *testing.T) {
	job := NewClientKeyJob(&spyRetrier{}, logger.Nop())
	ctx, cancel := context.WithCancel(context.Background())

	job.Start(ctx, "u-1", 10*time.Millisecond)
	cancel()

	done := make(chan struct{})
	go func() {
		job.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop завис после отмены контекста")
	}
}

func TestClientKeyJob_ErrorsDoNotStopJob(t *testing.T) {
	spy := &spyRetrier{err: assert.AnError}
	job := NewClientKeyJob(spy, logger.Nop())

	job.Start(context.Background(), "u-1", 10*time.Millisecond)
	time.Sleep(55 * time.Millisecond)
	job.Stop()

	assert.GreaterOrEqual(t, spy.calls.Load(), int64(3))
}
