package docstore

import "sync"

// Subscription delivers snapshots to one listener from a single goroutine.
// The mailbox holds at most one snapshot: a newer snapshot replaces an
// undelivered older one, so a slow listener always sees the latest state.
type Subscription struct {
	onChange ChangeFunc
	mailbox  chan []Document
	done     chan struct{}
	once     sync.Once
	offerMu  sync.Mutex
}

// NewSubscription returns a stopped-on-demand subscription. Call Run in a
// goroutine to start delivery.
func NewSubscription(onChange ChangeFunc) *Subscription {
	return &Subscription{
		onChange: onChange,
		mailbox:  make(chan []Document, 1),
		done:     make(chan struct{}),
	}
}

// Offer queues docs for delivery. It never blocks.
func (s *Subscription) Offer(docs []Document) {
	s.offerMu.Lock()
	defer s.offerMu.Unlock()

	select {
	case <-s.mailbox:
	default:
	}
	s.mailbox <- docs
}

// Run delivers snapshots until Stop is called.
func (s *Subscription) Run() {
	for {
		select {
		case <-s.done:
			return
		case docs := <-s.mailbox:
			select {
			case <-s.done:
				return
			default:
			}
			s.onChange(docs)
		}
	}
}

// Stop ends delivery. Safe to call more than once.
func (s *Subscription) Stop() {
	s.once.Do(func() { close(s.done) })
}

// Done is closed once the subscription is stopped.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}
