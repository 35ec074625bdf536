package reconcile

import (
	"cmp"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/utils"
	"github.com/MKhiriev/trip-keeper/models"
)

// Config configures a [Tracker].
type Config struct {
	LocalUserID  string
	GraceWindow  time.Duration
	RecentWindow time.Duration
	EventTTL     time.Duration
	// PendingTimeout removes a pending stop that was never confirmed.
	// Zero keeps pending stops until they are removed explicitly.
	PendingTimeout time.Duration
	// Now replaces time.Now, mostly in tests.
	Now func() time.Time
}

// View is what a trip view renders: the merged stops and the change
// events that have not expired yet.
type View struct {
	Items  []models.ItineraryItem
	Events []models.ChangeEvent
}

// Event returns the active event for the stop with the given key, if any.
func (v View) Event(key string) (models.ChangeEvent, bool) {
	for _, ev := range v.Events {
		if ev.Key() == key {
			return ev, true
		}
	}
	return models.ChangeEvent{}, false
}

type position struct {
	day, orderIndex int
}

type activeEvent struct {
	event models.ChangeEvent
	timer *time.Timer
	gen   uint64
}

// Tracker keeps the reconciliation state of one open trip view. All
// methods are safe for concurrent use; state changes are serialized and
// every change is reported to the callback in order.
type Tracker struct {
	cfg      Config
	onChange func(View)
	ids      *utils.UUIDGenerator

	mu            sync.Mutex
	closed        bool
	remote        []models.ItineraryItem
	merged        []models.ItineraryItem
	baselined     bool
	pending       PendingTable
	pendingTimers map[string]*time.Timer
	moves         map[string]position
	events        map[string]activeEvent
	eventGen      uint64
	seq           uint64

	deliverMu sync.Mutex
	delivered uint64
}

// NewTracker returns an empty tracker. onChange may be nil; it must not
// call back into the tracker synchronously.
func NewTracker(cfg Config, onChange func(View)) *Tracker {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Tracker{
		cfg:           cfg,
		onChange:      onChange,
		ids:           utils.NewUUIDGenerator(),
		pending:       make(PendingTable),
		pendingTimers: make(map[string]*time.Timer),
		moves:         make(map[string]position),
		events:        make(map[string]activeEvent),
	}
}

// AddPending registers a locally created stop and returns its client ID.
// The item's ID is used as the client ID when set.
func (t *Tracker) AddPending(item models.ItineraryItem) string {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return ""
	}

	clientID := item.ID
	if clientID == "" {
		clientID = t.ids.Generate()
	}
	now := t.cfg.Now()
	item.ID = clientID
	item.Pending = true
	if item.CreatedBy == "" {
		item.CreatedBy = t.cfg.LocalUserID
	}
	t.pending[clientID] = PendingEntry{ClientID: clientID, Item: item, CreatedAt: now}

	if t.cfg.PendingTimeout > 0 {
		t.pendingTimers[clientID] = time.AfterFunc(t.cfg.PendingTimeout, func() {
			t.RemovePending(clientID)
		})
	}

	view, seq := t.reconcileLocked(false)
	t.mu.Unlock()

	t.deliver(view, seq)
	return clientID
}

// RemovePending drops a pending stop, e.g. when its write was rejected.
// Unknown IDs are ignored.
func (t *Tracker) RemovePending(clientID string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, ok := t.pending[clientID]; !ok {
		t.mu.Unlock()
		return
	}
	t.dropPendingLocked(clientID)
	view, seq := t.reconcileLocked(false)
	t.mu.Unlock()

	t.deliver(view, seq)
}

// ApplySnapshot reconciles a new remote snapshot.
func (t *Tracker) ApplySnapshot(remote []models.ItineraryItem) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	t.remote = slices.Clone(remote)
	for _, item := range t.remote {
		if pos, ok := t.moves[item.ID]; ok && pos == (position{item.Day, item.OrderIndex}) {
			delete(t.moves, item.ID)
		}
	}
	initial := !t.baselined
	t.baselined = true
	view, seq := t.reconcileLocked(initial)
	t.mu.Unlock()

	t.deliver(view, seq)
}

// ApplyLocalMove shows the stop at its new position until a snapshot
// confirms it or RevertMove is called.
func (t *Tracker) ApplyLocalMove(itemID string, day, orderIndex int) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if entry, ok := t.pending[itemID]; ok {
		entry.Item.Day, entry.Item.OrderIndex = day, orderIndex
		t.pending[itemID] = entry
	} else {
		t.moves[itemID] = position{day: day, orderIndex: orderIndex}
	}
	view, seq := t.reconcileLocked(false)
	t.mu.Unlock()

	t.deliver(view, seq)
}

// RevertMove discards an optimistic move whose write failed.
func (t *Tracker) RevertMove(itemID string) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	if _, ok := t.moves[itemID]; !ok {
		t.mu.Unlock()
		return
	}
	delete(t.moves, itemID)
	view, seq := t.reconcileLocked(false)
	t.mu.Unlock()

	t.deliver(view, seq)
}

// View returns the current state.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.viewLocked()
}

// Pending returns a copy of the pending table.
func (t *Tracker) Pending() PendingTable {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(PendingTable, len(t.pending))
	for id, entry := range t.pending {
		out[id] = entry
	}
	return out
}

// Close stops every timer. Later calls to any method are no-ops and the
// callback is not invoked again.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.closed = true

	for id, timer := range t.pendingTimers {
		timer.Stop()
		delete(t.pendingTimers, id)
	}
	for key, ev := range t.events {
		ev.timer.Stop()
		delete(t.events, key)
	}
}

// reconcileLocked runs with t.mu held. initial is true for the first remote
// snapshot, which sets the baseline without events.
func (t *Tracker) reconcileLocked(initial bool) (View, uint64) {
	remote := make([]models.ItineraryItem, len(t.remote))
	for i, item := range t.remote {
		if pos, ok := t.moves[item.ID]; ok {
			item.Day, item.OrderIndex = pos.day, pos.orderIndex
		}
		remote[i] = item
	}

	res := Reconcile(t.merged, remote, t.pending, Options{
		LocalUserID:  t.cfg.LocalUserID,
		GraceWindow:  t.cfg.GraceWindow,
		RecentWindow: t.cfg.RecentWindow,
		EventTTL:     t.cfg.EventTTL,
		Now:          t.cfg.Now(),
		Initial:      initial,
	})

	for _, clientID := range res.Confirmed {
		t.dropPendingLocked(clientID)
	}
	t.merged = res.Merged
	for _, ev := range res.Events {
		t.activateLocked(ev)
	}

	t.seq++
	return t.viewLocked(), t.seq
}

func (t *Tracker) dropPendingLocked(clientID string) {
	delete(t.pending, clientID)
	if timer, ok := t.pendingTimers[clientID]; ok {
		timer.Stop()
		delete(t.pendingTimers, clientID)
	}
}

func (t *Tracker) activateLocked(ev models.ChangeEvent) {
	key := ev.Key()
	if old, ok := t.events[key]; ok {
		old.timer.Stop()
	}

	t.eventGen++
	gen := t.eventGen
	timer := time.AfterFunc(ev.ExpiresAt.Sub(ev.At), func() {
		t.expire(key, gen)
	})
	t.events[key] = activeEvent{event: ev, timer: timer, gen: gen}
}

func (t *Tracker) expire(key string, gen uint64) {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return
	}
	current, ok := t.events[key]
	if !ok || current.gen != gen {
		t.mu.Unlock()
		return
	}
	delete(t.events, key)
	t.seq++
	view, seq := t.viewLocked(), t.seq
	t.mu.Unlock()

	t.deliver(view, seq)
}

func (t *Tracker) viewLocked() View {
	events := make([]models.ChangeEvent, 0, len(t.events))
	for _, ev := range t.events {
		events = append(events, ev.event)
	}
	slices.SortFunc(events, func(a, b models.ChangeEvent) int {
		return cmp.Or(a.At.Compare(b.At), cmp.Compare(a.Key(), b.Key()))
	})
	return View{Items: slices.Clone(t.merged), Events: events}
}

// deliver hands the view to the callback unless a newer view was already
// delivered or the tracker is closed.
func (t *Tracker) deliver(view View, seq uint64) {
	if t.onChange == nil {
		return
	}
	t.deliverMu.Lock()
	defer t.deliverMu.Unlock()

	if seq <= t.delivered {
		return
	}
	t.mu.Lock()
	closed := t.closed
	t.mu.Unlock()
	if closed {
		return
	}

	t.delivered = seq
	t.onChange(view)
}
