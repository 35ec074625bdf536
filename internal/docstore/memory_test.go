package docstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stop struct {
	Name string `json:"name"`
	Day  int    `json:"day"`
}

func TestMemoryStore_SetGetUpdateDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "trips/t1/itinerary/i1", stop{Name: "Louvre", Day: 1}))

	doc, err := s.Get(ctx, "trips/t1/itinerary/i1")
	require.NoError(t, err)
	assert.Equal(t, "i1", doc.ID)
	assert.False(t, doc.CreateTime.IsZero())

	require.NoError(t, s.Update(ctx, "trips/t1/itinerary/i1", map[string]any{"day": 2}))

	updated, err := s.Get(ctx, "trips/t1/itinerary/i1")
	require.NoError(t, err)
	var got stop
	require.NoError(t, updated.DataTo(&got))
	assert.Equal(t, stop{Name: "Louvre", Day: 2}, got)
	assert.Equal(t, doc.CreateTime, updated.CreateTime)
	assert.True(t, updated.UpdateTime.After(doc.UpdateTime))

	require.NoError(t, s.Delete(ctx, "trips/t1/itinerary/i1"))
	_, err = s.Get(ctx, "trips/t1/itinerary/i1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, "trips/t1/itinerary/i1"))
}

func TestMemoryStore_UpdateMissing(t *testing.T) {
	s := NewMemoryStore()
	err := s.Update(context.Background(), "trips/t1", map[string]any{"x": 1})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AddAssignsIncreasingTimestamps(t *testing.T) {
	ctx := context.Background()
	fixed := time.Unix(1000, 0)
	s := NewMemoryStore(WithClock(func() time.Time { return fixed }))

	id1, err := s.Add(ctx, "trips/t1/itinerary", stop{Name: "a"})
	require.NoError(t, err)
	id2, err := s.Add(ctx, "trips/t1/itinerary", stop{Name: "b"})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	docs, err := s.List(ctx, "trips/t1/itinerary")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, id1, docs[0].ID)
	assert.True(t, docs[1].CreateTime.After(docs[0].CreateTime))
}

func TestMemoryStore_ListOnlyDirectChildren(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Set(ctx, "trips/t1", map[string]any{"title": "x"}))
	require.NoError(t, s.Set(ctx, "trips/t1/itinerary/i1", stop{}))
	require.NoError(t, s.Set(ctx, "trips/t2", map[string]any{"title": "y"}))

	docs, err := s.List(ctx, "trips")
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestMemoryStore_BatchIsAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "trips/t1/encryptionKeys/_metadata", map[string]any{"enabled": true}))

	err := s.BatchWrite(ctx, []WriteOp{
		SetOp("trips/t1/encryptionKeys/u1", map[string]any{"wrappedKey": "k"}),
		CreateOp("trips/t1/encryptionKeys/_metadata", map[string]any{"enabled": true}),
	})
	require.ErrorIs(t, err, ErrAlreadyExists)

	_, err = s.Get(ctx, "trips/t1/encryptionKeys/u1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_BatchSeesEarlierOps(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	err := s.BatchWrite(ctx, []WriteOp{
		CreateOp("trips/t1", map[string]any{"title": "a"}),
		UpdateOp("trips/t1", map[string]any{"encrypted": true}),
	})
	require.NoError(t, err)

	doc, err := s.Get(ctx, "trips/t1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"a","encrypted":true}`, string(doc.Data))
}

func TestMemoryStore_WriteFilter(t *testing.T) {
	rejected := errors.New("nope")
	s := NewMemoryStore(WithWriteFilter(func(op WriteOp) error {
		if op.Path == "trips/t1/itinerary/bad" {
			return rejected
		}
		return nil
	}))

	err := s.Set(context.Background(), "trips/t1/itinerary/bad", stop{})
	assert.ErrorIs(t, err, rejected)
}

func TestMemoryStore_InvalidPath(t *testing.T) {
	s := NewMemoryStore()
	assert.ErrorIs(t, s.Set(context.Background(), "trips", stop{}), ErrInvalidPath)
	_, err := s.List(context.Background(), "trips/t1")
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMemoryStore_Subscribe(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	require.NoError(t, s.Set(ctx, "trips/t1/itinerary/i1", stop{Name: "a"}))

	var mu sync.Mutex
	var last []Document
	calls := 0
	unsubscribe, err := s.Subscribe(ctx, "trips/t1/itinerary", func(docs []Document) {
		mu.Lock()
		defer mu.Unlock()
		last = docs
		calls++
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last) == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.Set(ctx, "trips/t1/itinerary/i2", stop{Name: "b"}))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(last) == 2
	}, time.Second, 5*time.Millisecond)

	unsubscribe()
	unsubscribe()

	mu.Lock()
	before := calls
	mu.Unlock()

	require.NoError(t, s.Set(ctx, "trips/t1/itinerary/i3", stop{Name: "c"}))
	time.Sleep(20 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, before, calls)
}

func TestMemoryStore_SubscribeStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewMemoryStore()

	_, err := s.Subscribe(ctx, "trips", func([]Document) {})
	require.NoError(t, err)
	cancel()

	require.Eventually(t, func() bool {
		s.mu.Lock()
		defer s.mu.Unlock()
		return len(s.subs["trips"]) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestSubscription_LatestWins(t *testing.T) {
	sub := NewSubscription(func([]Document) {})
	sub.Offer([]Document{{Path: "c/1"}})
	sub.Offer([]Document{{Path: "c/2"}})

	got := <-sub.mailbox
	require.Len(t, got, 1)
	assert.Equal(t, "c/2", got[0].Path)
}
