package reconcile

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/trip-keeper/models"
)

var t0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func stop(id, place string, day, order int, by string, at time.Time) models.ItineraryItem {
	return models.ItineraryItem{ID: id, PlaceID: place, Day: day, OrderIndex: order, CreatedBy: by, CreatedAt: at}
}

func pendingEntry(clientID, place string, day, order int, by string, at time.Time) PendingEntry {
	return PendingEntry{
		ClientID:  clientID,
		Item:      models.ItineraryItem{PlaceID: place, Day: day, OrderIndex: order, CreatedBy: by},
		CreatedAt: at,
	}
}

func ids(items []models.ItineraryItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// ── concrete scenarios ───────────────────────────────────────────────────────

func TestReconcile_PendingThenConfirmedTwin(t *testing.T) {
	opts := Options{LocalUserID: "alice", Now: t0}
	pending := PendingTable{"client-a": pendingEntry("client-a", "p1", 1, 0, "alice", t0)}

	first := Reconcile(nil, nil, pending, opts)
	require.Len(t, first.Merged, 1)
	assert.True(t, first.Merged[0].Pending)
	assert.Equal(t, "client-a", first.Merged[0].ID)
	assert.Empty(t, first.Events)
	assert.Empty(t, first.Confirmed)

	opts.Now = t0.Add(800 * time.Millisecond)
	remote := []models.ItineraryItem{stop("doc-a", "p1", 1, 0, "alice", t0.Add(500*time.Millisecond))}
	second := Reconcile(first.Merged, remote, pending, opts)

	require.Len(t, second.Merged, 1)
	assert.False(t, second.Merged[0].Pending)
	assert.Equal(t, "doc-a", second.Merged[0].ID)
	assert.Empty(t, second.Events, "self-authored recent stop must not be flagged")
	assert.Equal(t, []string{"client-a"}, second.Confirmed)
}

// ── properties ───────────────────────────────────────────────────────────────

func TestReconcile_Idempotent(t *testing.T) {
	opts := Options{LocalUserID: "alice", Now: t0.Add(time.Minute)}
	remote := []models.ItineraryItem{
		stop("doc-1", "p1", 1, 1, "bob", t0),
		stop("doc-2", "p2", 1, 0, "alice", t0.Add(time.Second)),
		stop("doc-3", "p3", 2, 0, "alice", t0.Add(2*time.Second)),
	}
	pending := PendingTable{
		"c-2": pendingEntry("c-2", "p2", 1, 0, "alice", t0),
		"c-4": pendingEntry("c-4", "p4", 2, 1, "alice", t0.Add(3*time.Second)),
	}

	first := Reconcile(nil, remote, pending, opts)
	for _, id := range first.Confirmed {
		delete(pending, id)
	}
	second := Reconcile(first.Merged, remote, pending, opts)

	assert.Equal(t, first.Merged, second.Merged)
	assert.Empty(t, second.Events)
	assert.Empty(t, second.Confirmed)

	third := Reconcile(second.Merged, remote, pending, opts)
	assert.Equal(t, second.Merged, third.Merged)
}

func TestReconcile_NeverDuplicates(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	places := []string{"p1", "p2", "p3"}
	users := []string{"alice", "bob"}

	var (
		prev    []models.ItineraryItem
		remote  []models.ItineraryItem
		pending = PendingTable{}
		now     = t0
		nextID  int
	)

	for step := 0; step < 500; step++ {
		now = now.Add(time.Duration(rng.Intn(3000)) * time.Millisecond)
		place := places[rng.Intn(len(places))]
		day := 1 + rng.Intn(2)
		user := users[rng.Intn(len(users))]

		switch rng.Intn(4) {
		case 0:
			nextID++
			id := fmt.Sprintf("c-%d", nextID)
			pending[id] = pendingEntry(id, place, day, rng.Intn(3), "alice", now)
		case 1:
			nextID++
			remote = append(remote, stop(fmt.Sprintf("d-%d", nextID), place, day, rng.Intn(3), user, now))
		case 2:
			if len(remote) > 0 {
				i := rng.Intn(len(remote))
				remote = append(remote[:i:i], remote[i+1:]...)
			}
		case 3:
			for id := range pending {
				delete(pending, id)
				break
			}
		}

		res := Reconcile(prev, remote, pending, Options{LocalUserID: "alice", Now: now})
		for _, id := range res.Confirmed {
			delete(pending, id)
		}
		assertNoDuplicates(t, res.Merged)
		prev = res.Merged
	}
}

func assertNoDuplicates(t *testing.T, items []models.ItineraryItem) {
	t.Helper()
	seenIDs := map[string]bool{}
	confirmed := map[models.Triple]bool{}
	counts := map[models.Triple]int{}
	for _, item := range items {
		require.False(t, seenIDs[item.ID], "duplicate id %s", item.ID)
		seenIDs[item.ID] = true
		counts[item.Triple()]++
		if !item.Pending {
			confirmed[item.Triple()] = true
		}
	}
	for triple := range confirmed {
		require.Equal(t, 1, counts[triple], "triple %+v represented twice", triple)
	}
}

func TestReconcile_LivenessOfUnconfirmedPending(t *testing.T) {
	pending := PendingTable{"c-1": pendingEntry("c-1", "p9", 3, 0, "alice", t0)}
	remote := []models.ItineraryItem{stop("doc-1", "p1", 1, 0, "bob", t0)}

	var prev []models.ItineraryItem
	for i := 0; i < 5; i++ {
		res := Reconcile(prev, remote, pending, Options{LocalUserID: "alice", Now: t0.Add(time.Duration(i) * time.Hour)})
		assert.Contains(t, ids(res.Merged), "c-1")
		prev = res.Merged
	}
}

func TestReconcile_PendingWithSameTripleAreAllKept(t *testing.T) {
	pending := PendingTable{
		"c-1": pendingEntry("c-1", "p1", 1, 0, "alice", t0),
		"c-2": pendingEntry("c-2", "p1", 1, 1, "alice", t0.Add(time.Second)),
	}
	res := Reconcile(nil, nil, pending, Options{LocalUserID: "alice", Now: t0})
	assert.Equal(t, []string{"c-1", "c-2"}, ids(res.Merged))
}

// ── matching ─────────────────────────────────────────────────────────────────

func TestReconcile_PrefersMatchWithinGraceWindow(t *testing.T) {
	pending := PendingTable{
		"c-old": pendingEntry("c-old", "p1", 1, 0, "alice", t0),
		"c-new": pendingEntry("c-new", "p1", 1, 0, "alice", t0.Add(30*time.Second)),
	}
	remote := []models.ItineraryItem{stop("doc-1", "p1", 1, 0, "alice", t0.Add(31*time.Second))}

	res := Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: t0.Add(32 * time.Second)})
	assert.Equal(t, []string{"c-new"}, res.Confirmed)
}

func TestReconcile_FallsBackToOldestPending(t *testing.T) {
	pending := PendingTable{
		"c-b": pendingEntry("c-b", "p1", 1, 0, "alice", t0.Add(time.Second)),
		"c-a": pendingEntry("c-a", "p1", 1, 0, "alice", t0.Add(time.Second)),
		"c-0": pendingEntry("c-0", "p1", 1, 0, "alice", t0),
	}
	remote := []models.ItineraryItem{
		stop("doc-2", "p1", 1, 0, "alice", t0.Add(2*time.Minute)),
		stop("doc-1", "p1", 1, 0, "alice", t0.Add(time.Minute)),
	}

	res := Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: t0.Add(3 * time.Minute)})
	assert.Equal(t, []string{"c-0", "c-a"}, res.Confirmed)
}

func TestReconcile_OtherAuthorsNeverConfirm(t *testing.T) {
	pending := PendingTable{"c-1": pendingEntry("c-1", "p1", 1, 0, "alice", t0)}
	remote := []models.ItineraryItem{stop("doc-1", "p1", 1, 0, "bob", t0)}

	res := Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: t0})
	assert.Empty(t, res.Confirmed)
	assert.Equal(t, []string{"doc-1", "c-1"}, ids(res.Merged))
}

func TestReconcile_ConfirmedWinsOnTripleCollision(t *testing.T) {
	pending := PendingTable{"c-1": pendingEntry("c-1", "p1", 1, 0, "alice", t0)}
	remote := []models.ItineraryItem{
		stop("doc-1", "p1", 1, 0, "alice", t0.Add(time.Second)),
		stop("doc-2", "p1", 1, 0, "alice", t0.Add(time.Minute)),
		stop("doc-1", "p1", 1, 0, "alice", t0.Add(time.Second)),
	}

	res := Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: t0})
	require.Len(t, res.Merged, 1)
	assert.Equal(t, "doc-1", res.Merged[0].ID)
	assert.False(t, res.Merged[0].Pending)
	assert.Equal(t, []string{"c-1"}, res.Confirmed)
}

// ── ordering and events ──────────────────────────────────────────────────────

func TestReconcile_StableOrderByDayAndIndex(t *testing.T) {
	remote := []models.ItineraryItem{
		stop("d", "p4", 2, 0, "bob", t0),
		stop("b", "p2", 1, 1, "bob", t0),
		stop("c", "p3", 1, 1, "bob", t0),
		stop("a", "p1", 1, 0, "bob", t0),
	}
	res := Reconcile(nil, remote, nil, Options{LocalUserID: "alice", Now: t0})
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(res.Merged))
}

func TestReconcile_ChangeEvents(t *testing.T) {
	now := t0.Add(time.Hour)
	prev := []models.ItineraryItem{
		stop("stay", "p1", 1, 0, "bob", t0),
		stop("move", "p2", 1, 1, "bob", t0),
		stop("gone", "p3", 1, 2, "bob", t0),
	}
	remote := []models.ItineraryItem{
		stop("stay", "p1", 1, 0, "bob", t0),
		stop("move", "p2", 2, 0, "bob", t0),
		stop("new-bob", "p4", 1, 3, "bob", now),
		stop("new-self", "p5", 1, 4, "alice", now.Add(-time.Second)),
		stop("old-self", "p6", 1, 5, "alice", t0),
	}

	res := Reconcile(prev, remote, nil, Options{LocalUserID: "alice", Now: now, EventTTL: 2 * time.Second})

	kinds := map[string]models.ChangeKind{}
	for _, ev := range res.Events {
		kinds[ev.ItemID] = ev.Kind
		assert.Equal(t, now.Add(2*time.Second), ev.ExpiresAt)
	}
	assert.Equal(t, map[string]models.ChangeKind{
		"move":     models.ChangeMoved,
		"new-bob":  models.ChangeAdded,
		"old-self": models.ChangeAdded,
		"gone":     models.ChangeRemoved,
	}, kinds)
}

func TestReconcile_InitialSnapshotHasNoEvents(t *testing.T) {
	now := t0.Add(24 * time.Hour)
	remote := []models.ItineraryItem{
		stop("d1", "p1", 1, 0, "bob", t0),
		stop("d2", "p2", 1, 1, "alice", t0),
	}
	pending := PendingTable{"c1": pendingEntry("c1", "p9", 2, 0, "alice", now)}

	res := Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: now, Initial: true})
	assert.Empty(t, res.Events)
	assert.Equal(t, []string{"d1", "d2", "c1"}, ids(res.Merged))

	// без Initial тот же вызов считает всё добавленным
	res = Reconcile(nil, remote, nil, Options{LocalUserID: "alice", Now: now})
	assert.Len(t, res.Events, 2)
}

func TestReconcile_DoesNotMutateInputs(t *testing.T) {
	remote := []models.ItineraryItem{stop("b", "p2", 2, 0, "bob", t0), stop("a", "p1", 1, 0, "bob", t0)}
	pending := PendingTable{"c-1": pendingEntry("c-1", "p3", 1, 1, "alice", t0)}

	Reconcile(nil, remote, pending, Options{LocalUserID: "alice", Now: t0})

	assert.Equal(t, []string{"b", "a"}, ids(remote))
	assert.Empty(t, pending["c-1"].Item.ID)
	assert.False(t, pending["c-1"].Item.Pending)
}
