package keylock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryLock_Exclusive(t *testing.T) {
	table := New()

	assert.True(t, table.TryLock("filter-1"))
	assert.False(t, table.TryLock("filter-1"))
	assert.True(t, table.Held("filter-1"))

	table.Unlock("filter-1")
	assert.False(t, table.Held("filter-1"))
	assert.True(t, table.TryLock("filter-1"))
}

func TestTryLock_IndependentKeys(t *testing.T) {
	table := New()

	assert.True(t, table.TryLock("filter-1"))
	assert.True(t, table.TryLock("filter-2"))
	assert.True(t, table.TryLock(""))
}

func TestUnlock_UnheldIsNoop(t *testing.T) {
	table := New()
	table.Unlock("never-locked")
	assert.True(t, table.TryLock("never-locked"))
}

func TestTryLock_ConcurrentSingleWinner(t *testing.T) {
	table := New()

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if table.TryLock("shared") {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
