package concurrency

import (
	"sync"
)

// lockEntry is a keyed mutex with the number of goroutines holding or waiting on it
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// LockManager handles named locks. An entry lives only while some goroutine
// holds or waits for it, so keys may come from untrusted input.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*lockEntry
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*lockEntry)}
}

// Lock acquires the lock for key and returns its release function.
// The release function must be called exactly once.
func (lm *LockManager) Lock(key string) (unlock func()) {
	lm.mu.Lock()
	e, ok := lm.locks[key]
	if !ok {
		e = &lockEntry{}
		lm.locks[key] = e
	}
	e.refs++
	lm.mu.Unlock()

	e.mu.Lock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Unlock()

			lm.mu.Lock()
			e.refs--
			if e.refs == 0 {
				delete(lm.locks, key)
			}
			lm.mu.Unlock()
		})
	}
}

// Len returns the number of keys currently held or waited on
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
