// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// recordWorker appends its start and stop calls to a shared journal.
type recordWorker struct {
	id      string
	journal *[]string
	userID  string
}

func (r *recordWorker) Start(_ context.Context, userID string) {
	r.userID = userID
	*r.journal = append(*r.journal, "start "+r.id)
}

func (r *recordWorker) Stop() {
	*r.journal = append(*r.journal, "stop "+r.id)
}

func TestWorkers_StartStopOrder(t *testing.T) {
	var journal []string
	w1 := &recordWorker{id: "1", journal: &journal}
	w2 := &recordWorker{id: "2", journal: &journal}

	ws := NewWorkers(w1, w2)
	ws.Start(context.Background(), "u-1")
	ws.Stop()

	assert.Equal(t, []string{"start 1", "start 2", "stop 2", "stop 1"}, journal)
	assert.Equal(t, "u-1", w1.userID)
	assert.Equal(t, "u-1", w2.userID)
}

func TestWorkers_Empty(t *testing.T) {
	// пустой набор не должен паниковать
	ws := NewWorkers()
	ws.Start(context.Background(), "u-1")
	ws.Stop()

	var zero Workers
	zero.Start(context.Background(), "u-1")
	zero.Stop()
}

// fakeKeyJob records the arguments of the last Start call.
type fakeKeyJob struct {
	userID   string
	interval time.Duration
	started  int
	stopped  int
}

func (f *fakeKeyJob) Start(_ context.Context, userID string, interval time.Duration) {
	f.userID = userID
	f.interval = interval
	f.started++
}

func (f *fakeKeyJob) Stop() {
	f.stopped++
}

func TestKeyShareWorker_PassesInterval(t *testing.T) {
	job := &fakeKeyJob{}
	w := NewKeyShareWorker(job, 30*time.Second)

	w.Start(context.Background(), "alice")
	w.Stop()

	assert.Equal(t, "alice", job.userID)
	assert.Equal(t, 30*time.Second, job.interval)
	assert.Equal(t, 1, job.started)
	assert.Equal(t, 1, job.stopped)
}
