package locks

import "sync"

// Keyed serializes work per int64 key. Cart mutation and order placement for
// the same user must not interleave: two concurrent checkouts could otherwise
// both read a non-empty cart and both place an order from it.
//
// Entries are never evicted.
type Keyed struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewKeyed() *Keyed {
	return &Keyed{locks: make(map[int64]*sync.Mutex)}
}

// Lock acquires the mutex for key and returns the matching unlock func.
func (k *Keyed) Lock(key int64) func() {
	k.mu.Lock()
	m, ok := k.locks[key]
	if !ok {
		m = &sync.Mutex{}
		k.locks[key] = m
	}
	k.mu.Unlock()

	m.Lock()
	return m.Unlock
}
