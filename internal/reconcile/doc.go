// Package reconcile merges locally created, not yet confirmed itinerary
// stops with the authoritative snapshots of the remote store.
//
// [Reconcile] is a pure function of the previous merged list, the new
// remote snapshot and the table of pending entries. [Tracker] keeps that
// state for one open trip view, owns the timers around it and reports
// every new view through a callback.
//
// A logical stop is identified by its (placeId, day, createdBy) triple for
// matching and by its storage ID everywhere else. The merged list never
// holds two entries with the same storage ID, nor two entries with the
// same triple when one of them is confirmed. A pending stop stays visible
// until it is confirmed or explicitly removed.
package reconcile
