package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/trip-keeper/internal/utils"
)

// MemoryOption configures a [MemoryStore].
type MemoryOption func(*MemoryStore)

// WithClock replaces the time source used for server timestamps.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// WithWriteFilter installs a hook consulted before every write operation.
// A non-nil error rejects the write (or the whole batch).
func WithWriteFilter(filter func(op WriteOp) error) MemoryOption {
	return func(s *MemoryStore) { s.filter = filter }
}

// MemoryStore is an in-process [Store]. Timestamps are strictly
// increasing across all writes of one store.
type MemoryStore struct {
	mu       sync.Mutex
	docs     map[string]Document
	subs     map[string]map[int]*Subscription
	nextSub  int
	lastTime time.Time

	now    func() time.Time
	filter func(op WriteOp) error
	ids    *utils.UUIDGenerator
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		docs: make(map[string]Document),
		subs: make(map[string]map[int]*Subscription),
		now:  time.Now,
		ids:  utils.NewUUIDGenerator(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Get(ctx context.Context, path string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	if err := ValidateDocumentPath(path); err != nil {
		return Document{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[path]
	if !ok {
		return Document{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return doc, nil
}

func (s *MemoryStore) List(ctx context.Context, collection string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateCollectionPath(collection); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked(collection), nil
}

func (s *MemoryStore) Set(ctx context.Context, path string, data any) error {
	return s.BatchWrite(ctx, []WriteOp{SetOp(path, data)})
}

func (s *MemoryStore) Update(ctx context.Context, path string, fields map[string]any) error {
	return s.BatchWrite(ctx, []WriteOp{UpdateOp(path, fields)})
}

func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	return s.BatchWrite(ctx, []WriteOp{DeleteOp(path)})
}

func (s *MemoryStore) Add(ctx context.Context, collection string, data any) (string, error) {
	if err := ValidateCollectionPath(collection); err != nil {
		return "", err
	}

	id := s.ids.Generate()
	if err := s.BatchWrite(ctx, []WriteOp{CreateOp(Join(collection, id), data)}); err != nil {
		return "", err
	}
	return id, nil
}

// BatchWrite validates every operation against a staged copy of the
// affected documents and commits only when all of them succeed.
func (s *MemoryStore) BatchWrite(ctx context.Context, ops []WriteOp) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	staged := make(map[string]*Document, len(ops))
	lookup := func(path string) (*Document, bool) {
		if d, ok := staged[path]; ok {
			return d, d != nil
		}
		d, ok := s.docs[path]
		if !ok {
			return nil, false
		}
		return &d, true
	}

	ts := s.tickLocked()
	for _, op := range ops {
		if err := ValidateDocumentPath(op.Path); err != nil {
			return err
		}
		if s.filter != nil {
			if err := s.filter(op); err != nil {
				return err
			}
		}

		existing, exists := lookup(op.Path)
		switch op.Kind {
		case OpSet, OpCreate:
			if op.Kind == OpCreate && exists {
				return fmt.Errorf("%w: %s", ErrAlreadyExists, op.Path)
			}
			raw, err := EncodeData(op.Data)
			if err != nil {
				return err
			}
			_, id, _ := SplitPath(op.Path)
			created := ts
			if exists {
				created = existing.CreateTime
			}
			staged[op.Path] = &Document{Path: op.Path, ID: id, Data: raw, CreateTime: created, UpdateTime: ts}
		case OpUpdate:
			if !exists {
				return fmt.Errorf("%w: %s", ErrNotFound, op.Path)
			}
			merged, err := MergeFields(existing.Data, op.Fields)
			if err != nil {
				return err
			}
			updated := *existing
			updated.Data = merged
			updated.UpdateTime = ts
			staged[op.Path] = &updated
		case OpDelete:
			staged[op.Path] = nil
		default:
			return fmt.Errorf("%w: unknown operation %q", ErrWriteRejected, op.Kind)
		}
	}

	touched := make(map[string]struct{})
	for path, doc := range staged {
		if doc == nil {
			if _, ok := s.docs[path]; !ok {
				continue
			}
			delete(s.docs, path)
		} else {
			s.docs[path] = *doc
		}
		collection, _, _ := SplitPath(path)
		touched[collection] = struct{}{}
	}

	for collection := range touched {
		s.publishLocked(collection)
	}

	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context, collection string, onChange ChangeFunc) (Unsubscribe, error) {
	if err := ValidateCollectionPath(collection); err != nil {
		return nil, err
	}

	sub := NewSubscription(onChange)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[collection] == nil {
		s.subs[collection] = make(map[int]*Subscription)
	}
	s.subs[collection][id] = sub
	sub.Offer(s.snapshotLocked(collection))
	s.mu.Unlock()

	go sub.Run()

	unsubscribe := func() {
		s.mu.Lock()
		delete(s.subs[collection], id)
		s.mu.Unlock()
		sub.Stop()
	}

	go func() {
		select {
		case <-ctx.Done():
			unsubscribe()
		case <-sub.Done():
		}
	}()

	return unsubscribe, nil
}

// tickLocked returns a timestamp strictly after every one issued before.
func (s *MemoryStore) tickLocked() time.Time {
	ts := s.now().UTC()
	if !ts.After(s.lastTime) {
		ts = s.lastTime.Add(time.Microsecond)
	}
	s.lastTime = ts
	return ts
}

func (s *MemoryStore) snapshotLocked(collection string) []Document {
	docs := make([]Document, 0)
	for _, doc := range s.docs {
		if doc.Collection() == collection {
			doc.Data = append(json.RawMessage(nil), doc.Data...)
			docs = append(docs, doc)
		}
	}
	SortDocuments(docs)
	return docs
}

func (s *MemoryStore) publishLocked(collection string) {
	subs := s.subs[collection]
	if len(subs) == 0 {
		return
	}
	snapshot := s.snapshotLocked(collection)
	for _, sub := range subs {
		sub.Offer(snapshot)
	}
}
