package keylock

import "sync"

// Table is a set of named locks created on demand. A key's lock exists only
// while held, so idle keys cost nothing.
type Table struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// New creates an empty lock table.
func New() *Table {
	return &Table{held: make(map[string]struct{})}
}

// TryLock attempts to acquire the lock for key without blocking.
// It returns false if the key is already held.
func (t *Table) TryLock(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, taken := t.held[key]; taken {
		return false
	}
	t.held[key] = struct{}{}
	return true
}

// Unlock releases the lock for key. Unlocking a key that is not held is a no-op.
func (t *Table) Unlock(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.held, key)
}

// Held reports whether the key is currently locked.
func (t *Table) Held(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, taken := t.held[key]
	return taken
}
