// Package dedupe tracks command ids so client retries are applied at most once
// and can be answered with the reply of the first attempt.
package dedupe

import (
	"container/list"
	"context"
	"sync"
)

// Deduper records seen command ids together with their replies.
type Deduper[V any] interface {
	// Begin atomically records id. It returns seen=true when id was already
	// recorded; done reports whether a reply for it has been stored.
	Begin(ctx context.Context, id string) (reply V, seen, done bool)

	// Complete stores the reply for a recorded id.
	Complete(ctx context.Context, id string, reply V)

	// Forget removes id so the command can be retried, e.g. after it was
	// rejected before reaching a worker.
	Forget(ctx context.Context, id string)

	Size() int64
}

type entry[V any] struct {
	id    string
	reply V
	done  bool
}

// inMemoryDeduper keeps ids in insertion order and evicts the oldest once
// maxSize is reached. maxSize <= 0 means unbounded.
type inMemoryDeduper[V any] struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper.
func NewInMemoryDeduper[V any](opts ...Option) Deduper[V] {
	cfg := config{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &inMemoryDeduper[V]{
		seen:    make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.maxSize,
	}
}

func (d *inMemoryDeduper[V]) Begin(_ context.Context, id string) (V, bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		e := el.Value.(*entry[V])
		return e.reply, true, e.done
	}
	if d.maxSize > 0 && d.order.Len() >= d.maxSize {
		d.evictOldest()
	}
	d.seen[id] = d.order.PushBack(&entry[V]{id: id})
	var zero V
	return zero, false, false
}

func (d *inMemoryDeduper[V]) Complete(_ context.Context, id string, reply V) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		e := el.Value.(*entry[V])
		e.reply = reply
		e.done = true
	}
}

func (d *inMemoryDeduper[V]) Forget(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[id]; ok {
		d.order.Remove(el)
		delete(d.seen, id)
	}
}

// evictOldest must be called with d.mu held.
func (d *inMemoryDeduper[V]) evictOldest() {
	front := d.order.Front()
	if front == nil {
		return
	}
	d.order.Remove(front)
	delete(d.seen, front.Value.(*entry[V]).id)
}

func (d *inMemoryDeduper[V]) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(d.order.Len())
}
