package reconcile

import (
	"cmp"
	"slices"
	"time"

	"github.com/MKhiriev/trip-keeper/models"
)

const (
	DefaultGraceWindow  = 5 * time.Second
	DefaultRecentWindow = 10 * time.Second
	DefaultEventTTL     = 3 * time.Second
)

// PendingEntry is a stop created locally whose write has not been
// confirmed by a remote snapshot yet.
type PendingEntry struct {
	ClientID string
	Item     models.ItineraryItem
	// CreatedAt is the optimistic creation time taken on this device.
	CreatedAt time.Time
}

// PendingTable holds the outstanding pending entries by client ID.
type PendingTable map[string]PendingEntry

// Options tune one reconciliation. Zero durations take the defaults.
type Options struct {
	LocalUserID  string
	GraceWindow  time.Duration
	RecentWindow time.Duration
	EventTTL     time.Duration
	// Now is the reference time for recency and event expiry.
	Now time.Time
	// Initial marks the first snapshot of a view. It only sets the
	// baseline: prev is ignored and no events are reported.
	Initial bool
}

func (o Options) withDefaults() Options {
	if o.GraceWindow <= 0 {
		o.GraceWindow = DefaultGraceWindow
	}
	if o.RecentWindow <= 0 {
		o.RecentWindow = DefaultRecentWindow
	}
	if o.EventTTL <= 0 {
		o.EventTTL = DefaultEventTTL
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	return o
}

// Result is the outcome of [Reconcile].
type Result struct {
	// Merged is the deduplicated list ordered by (day, orderIndex).
	Merged []models.ItineraryItem
	// Events describe remote changes against the previous list.
	Events []models.ChangeEvent
	// Confirmed lists the client IDs of pending entries matched by a
	// remote item. Callers drop them from their pending table.
	Confirmed []string
}

// Reconcile merges the remote snapshot with the pending entries and
// compares the outcome to prev. It does not modify its arguments.
//
// A remote item authored by the local user confirms at most one pending
// entry with the same triple. When several entries qualify, the oldest one
// created within the grace window of the remote item wins; otherwise the
// oldest entry overall wins. Ties on creation time are broken by client ID.
func Reconcile(prev, remote []models.ItineraryItem, pending PendingTable, opts Options) Result {
	opts = opts.withDefaults()

	queue := sortedPending(pending)
	matched := make(map[string]bool, len(queue))
	var confirmed []string

	for _, item := range remoteByAge(remote) {
		if item.CreatedBy != opts.LocalUserID {
			continue
		}
		if entry, ok := pickMatch(item, queue, matched, opts.GraceWindow); ok {
			matched[entry.ClientID] = true
			confirmed = append(confirmed, entry.ClientID)
		}
	}

	combined := make([]models.ItineraryItem, 0, len(remote)+len(queue))
	for _, item := range remote {
		item.Pending = false
		combined = append(combined, item)
	}
	for _, entry := range queue {
		if matched[entry.ClientID] {
			continue
		}
		combined = append(combined, pendingItem(entry))
	}

	merged := dedup(combined)
	slices.SortStableFunc(merged, func(a, b models.ItineraryItem) int {
		return cmp.Or(cmp.Compare(a.Day, b.Day), cmp.Compare(a.OrderIndex, b.OrderIndex))
	})

	slices.Sort(confirmed)
	res := Result{Merged: merged, Confirmed: confirmed}
	if !opts.Initial {
		res.Events = detectChanges(prev, merged, opts)
	}
	return res
}

func sortedPending(pending PendingTable) []PendingEntry {
	queue := make([]PendingEntry, 0, len(pending))
	for id, entry := range pending {
		entry.ClientID = id
		queue = append(queue, entry)
	}
	slices.SortFunc(queue, func(a, b PendingEntry) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ClientID, b.ClientID))
	})
	return queue
}

// remoteByAge returns remote items oldest first so that the oldest remote
// copy confirms the oldest pending entry.
func remoteByAge(remote []models.ItineraryItem) []models.ItineraryItem {
	ordered := slices.Clone(remote)
	slices.SortStableFunc(ordered, func(a, b models.ItineraryItem) int {
		return cmp.Or(a.CreatedAt.Compare(b.CreatedAt), cmp.Compare(a.ID, b.ID))
	})
	return ordered
}

func pickMatch(item models.ItineraryItem, queue []PendingEntry, matched map[string]bool, grace time.Duration) (PendingEntry, bool) {
	triple := item.Triple()
	fallback := -1
	for i, entry := range queue {
		if matched[entry.ClientID] || entry.Item.Triple() != triple {
			continue
		}
		if withinGrace(item.CreatedAt, entry.CreatedAt, grace) {
			return entry, true
		}
		if fallback < 0 {
			fallback = i
		}
	}
	if fallback < 0 {
		return PendingEntry{}, false
	}
	return queue[fallback], true
}

func withinGrace(remoteAt, pendingAt time.Time, grace time.Duration) bool {
	if remoteAt.IsZero() || pendingAt.IsZero() {
		return false
	}
	d := remoteAt.Sub(pendingAt)
	if d < 0 {
		d = -d
	}
	return d <= grace
}

func pendingItem(entry PendingEntry) models.ItineraryItem {
	item := entry.Item
	item.ID = entry.ClientID
	item.Pending = true
	if item.CreatedAt.IsZero() {
		item.CreatedAt = entry.CreatedAt
	}
	return item
}

// dedup keeps confirmed items ahead of pending ones: items arrive with all
// confirmed entries first, so the first holder of an ID or a confirmed
// triple is never pending when a confirmed twin exists. Pending entries
// sharing a triple are all kept.
func dedup(items []models.ItineraryItem) []models.ItineraryItem {
	seenIDs := make(map[string]bool, len(items))
	confirmedTriples := make(map[models.Triple]bool, len(items))

	out := make([]models.ItineraryItem, 0, len(items))
	for _, item := range items {
		if item.ID != "" {
			if seenIDs[item.ID] {
				continue
			}
			seenIDs[item.ID] = true
		}
		triple := item.Triple()
		if confirmedTriples[triple] {
			continue
		}
		if !item.Pending {
			confirmedTriples[triple] = true
		}
		out = append(out, item)
	}
	return out
}

// detectChanges compares confirmed items by storage ID. Pending items are
// local and never produce events; a confirmed item replacing a pending
// twin is not an addition.
func detectChanges(prev, next []models.ItineraryItem, opts Options) []models.ChangeEvent {
	before := make(map[string]models.ItineraryItem, len(prev))
	pendingTriples := make(map[models.Triple]bool)
	for _, item := range prev {
		if item.Pending {
			pendingTriples[item.Triple()] = true
			continue
		}
		before[item.ID] = item
	}

	event := func(kind models.ChangeKind, item models.ItineraryItem) models.ChangeEvent {
		return models.ChangeEvent{
			Kind:      kind,
			ItemID:    item.ID,
			Item:      item,
			At:        opts.Now,
			ExpiresAt: opts.Now.Add(opts.EventTTL),
		}
	}

	var events []models.ChangeEvent
	present := make(map[string]bool, len(next))
	for _, item := range next {
		if item.Pending {
			continue
		}
		present[item.ID] = true

		old, ok := before[item.ID]
		switch {
		case ok:
			if old.Day != item.Day || old.OrderIndex != item.OrderIndex {
				events = append(events, event(models.ChangeMoved, item))
			}
		case pendingTriples[item.Triple()]:
		case isRecentSelf(item, opts):
		default:
			events = append(events, event(models.ChangeAdded, item))
		}
	}

	for _, item := range prev {
		if item.Pending || present[item.ID] {
			continue
		}
		events = append(events, event(models.ChangeRemoved, item))
	}
	return events
}

func isRecentSelf(item models.ItineraryItem, opts Options) bool {
	if item.CreatedBy != opts.LocalUserID {
		return false
	}
	return item.CreatedAt.IsZero() || opts.Now.Sub(item.CreatedAt) <= opts.RecentWindow
}
