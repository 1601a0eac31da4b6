// Package keylock provides a keyed exclusive section: one logical mutex per
// string key, created on demand and released when no longer contended.
// It is used to serialize state transitions per order id so that requests
// for unrelated orders never contend with each other.
package keylock

import "sync"

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex serializes critical sections per key. A goroutine locking key A
// never blocks a goroutine locking key B. Entries are reference-counted and
// removed from the internal map once the last holder releases them, so the
// map does not grow with the number of keys ever seen.
type KeyedMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewKeyedMutex creates an empty KeyedMutex.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{entries: make(map[string]*entry)}
}

// Lock acquires the exclusive section for key, blocking while another
// goroutine holds it. It returns the function that releases the section.
//
// Example:
//
//	unlock := locks.Lock(orderID.String())
//	defer unlock()
func (k *KeyedMutex) Lock(key string) func() {
	k.mu.Lock()
	e, ok := k.entries[key]
	if !ok {
		e = &entry{}
		k.entries[key] = e
	}
	e.refs++
	k.mu.Unlock()

	e.mu.Lock()

	return func() {
		e.mu.Unlock()

		k.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(k.entries, key)
		}
		k.mu.Unlock()
	}
}
