package repository

import "sync"

// Change describes a persisted-record mutation. Kind matches the repository
// that produced it ("events", "commitments", "feed_sources").
type Change struct {
	Kind   string
	UserID string
}

// Notifier is an in-process change registry. Repositories fire it after a
// successful write; the timeline service subscribes to know when to recompute.
// There is exactly one writer per user session, so last-write-wins delivery
// is sufficient and no delta payloads are carried.
type Notifier struct {
	mu   sync.Mutex
	next int
	subs map[int]func(Change)
}

// NewNotifier constructs an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[int]func(Change))}
}

// Subscribe registers a callback and returns its unsubscribe function.
func (n *Notifier) Subscribe(fn func(Change)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := n.next
	n.next++
	n.subs[id] = fn
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish delivers the change to every subscriber synchronously, in
// registration order not guaranteed.
func (n *Notifier) Publish(c Change) {
	n.mu.Lock()
	fns := make([]func(Change), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(c)
	}
}
