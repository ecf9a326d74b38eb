// Package dedupe tracks which (cycle, employee) records have been accepted so
// ingest stays idempotent.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

// Key builds the dedupe key for one employee in one evaluation cycle.
func Key(cycle, employeeID string) string {
	return cycle + "\x00" + employeeID
}

// Deduper records accepted record keys.
type Deduper interface {
	// SeenAndRecord atomically reports whether key was already recorded and
	// records it if not.
	SeenAndRecord(ctx context.Context, key string) bool

	// Unrecord forgets key so the record can be submitted again. Used when an
	// accepted record could not be enqueued.
	Unrecord(ctx context.Context, key string)

	Size() int64
}

// inMemoryDeduper keeps keys in insertion order. When bounded it evicts the
// oldest key first.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]*list.Element
	order   *list.List
	maxSize int
	size    atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper. It holds 50000 keys unless
// WithMaxSize says otherwise.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{maxSize: 50000}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]*list.Element)
	d.order = list.New()
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[key]; ok {
		return true
	}
	if d.maxSize > 0 && len(d.seen) >= d.maxSize {
		if oldest := d.order.Front(); oldest != nil {
			delete(d.seen, d.order.Remove(oldest).(string))
			d.size.Add(-1)
		}
	}
	d.seen[key] = d.order.PushBack(key)
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if el, ok := d.seen[key]; ok {
		d.order.Remove(el)
		delete(d.seen, key)
		d.size.Add(-1)
	}
}

func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
