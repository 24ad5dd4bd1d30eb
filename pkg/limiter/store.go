package limiter

import (
	"sync"
	"sync/atomic"
)

// stateMap adds types and lazy creation around a sync.Map, which matches one
// of its documented "good fit" cases: write once + read many times per key.
// It also tracks length, which sync.Map does not.
//
// Values must be interface or pointer types; everything stored here carries
// its own lock, and mutation happens through that lock, never by replacing
// the stored value.
type stateMap[V any] struct {
	contents sync.Map
	create   func() V
	len      int64
}

// newStateMap builds a map whose entries are created on first load.
//
// create may be called more than once for the same key when first accesses
// race; only one result is kept, and losers are discarded before any caller
// can mutate them. It should return quickly to keep that race window small.
func newStateMap[V any](create func() V) *stateMap[V] {
	return &stateMap[V]{create: create}
}

// load returns the value for key, creating it if necessary. Exactly one
// value per distinct key is ever handed out.
func (m *stateMap[V]) load(key string) V {
	val, loaded := m.contents.Load(key)
	if loaded {
		return val.(V)
	}
	created := m.create()
	val, loaded = m.contents.LoadOrStore(key, created)
	if !loaded {
		// stored a new value
		atomic.AddInt64(&m.len, 1)
	}
	return val.(V)
}

// delete removes key. Safe to call concurrently with load and rangeAll.
func (m *stateMap[V]) delete(key string) {
	_, loaded := m.contents.LoadAndDelete(key)
	if loaded {
		atomic.AddInt64(&m.len, -1)
	}
}

// rangeAll calls Range on the underlying sync.Map, with the same semantics.
func (m *stateMap[V]) rangeAll(f func(key string, v V) bool) {
	m.contents.Range(func(k, v any) bool {
		return f(k.(string), v.(V))
	})
}

// size is an atomic count of entries. rangeAll may visit more or fewer.
func (m *stateMap[V]) size() int {
	return int(atomic.LoadInt64(&m.len))
}
