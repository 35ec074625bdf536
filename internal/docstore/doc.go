// Package docstore defines the document store the sync engine is built on:
// hierarchical paths, server timestamps, atomic batches and per-collection
// change subscriptions.
//
// Paths alternate collection and document segments, e.g.
// "trips/{tripId}/itinerary/{itemId}". A collection path has an odd number
// of segments, a document path an even one.
//
// Two implementations exist: [MemoryStore] in this package and the HTTP
// client in internal/adapter.
package docstore
