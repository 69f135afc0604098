package session

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_ResolveCreatesAnonymousID(t *testing.T) {
	r := NewRegistry(5, 10)

	id, mem := r.Resolve("")
	assert.True(t, strings.HasPrefix(id, AnonPrefix))
	assert.NotNil(t, mem)
	assert.Equal(t, 1, r.Count())
}

func TestRegistry_ResolveUsesCallerSuppliedID(t *testing.T) {
	r := NewRegistry(5, 10)

	id, _ := r.Resolve("farmer-42")
	assert.Equal(t, "farmer-42", id)
}

func TestRegistry_ResolveIsReferenceStable(t *testing.T) {
	r := NewRegistry(5, 10)

	_, first := r.Resolve("s1")
	_, second := r.Resolve("s1")

	if first != second {
		t.Error("resolving the same id twice should return the same buffer")
	}
}

func TestRegistry_CapacityIsHardCeiling(t *testing.T) {
	const capacity = 3
	r := NewRegistry(capacity, 10)

	for i := 0; i < 10; i++ {
		r.Resolve(fmt.Sprintf("s%d", i))
		if r.Count() > capacity {
			t.Fatalf("registry exceeded capacity after insert %d: %d", i, r.Count())
		}
	}
	assert.Equal(t, capacity, r.Count())
}

func TestRegistry_EvictsLeastRecentlyUsed(t *testing.T) {
	r := NewRegistry(3, 10)

	r.Resolve("a")
	r.Resolve("b")
	r.Resolve("c")

	// Touch "a" so "b" becomes the oldest.
	r.Resolve("a")
	r.Resolve("d")

	assert.Nil(t, r.Fetch("b"), "least recently used entry should be evicted")
	assert.NotNil(t, r.Fetch("a"))
	assert.NotNil(t, r.Fetch("c"))
	assert.NotNil(t, r.Fetch("d"))
}

func TestRegistry_FetchRefreshesRecency(t *testing.T) {
	r := NewRegistry(2, 10)

	r.Resolve("a")
	r.Resolve("b")

	// Read-only lookup of "a" should make "b" the eviction candidate.
	r.Fetch("a")
	r.Resolve("c")

	assert.NotNil(t, r.Fetch("a"))
	assert.Nil(t, r.Fetch("b"))
}

func TestRegistry_FetchDoesNotCreate(t *testing.T) {
	r := NewRegistry(5, 10)

	assert.Nil(t, r.Fetch("missing"))
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_ClearIsIdempotent(t *testing.T) {
	r := NewRegistry(5, 10)
	r.Resolve("s1")

	assert.True(t, r.Clear("s1"))
	assert.False(t, r.Clear("s1"))
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_SweepStaleRemovesOnlyOldEntries(t *testing.T) {
	r := NewRegistry(10, 10)

	r.Resolve("old1")
	r.Resolve("old2")

	// Backdate the two entries past the age bound.
	r.mu.Lock()
	for _, id := range []string{"old1", "old2"} {
		e := r.entries[id]
		e.lastAccessed = time.Now().Add(-25 * time.Hour)
	}
	r.mu.Unlock()

	r.Resolve("fresh")

	removed := r.SweepStale(24 * time.Hour)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, r.Count())
	assert.NotNil(t, r.Fetch("fresh"))
}

func TestRegistry_SweepStaleLeavesFreshEntries(t *testing.T) {
	r := NewRegistry(10, 10)
	r.Resolve("a")
	r.Resolve("b")

	assert.Equal(t, 0, r.SweepStale(time.Hour))
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_ConcurrentResolveSameID(t *testing.T) {
	r := NewRegistry(50, 10)

	const workers = 16
	buffers := make([]*Memory, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, buffers[i] = r.Resolve("shared")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, r.Count())
	for i := 1; i < workers; i++ {
		if buffers[i] != buffers[0] {
			t.Fatal("concurrent resolves produced divergent buffers")
		}
	}
}

func TestRegistry_ConcurrentMixedOperations(t *testing.T) {
	r := NewRegistry(8, 10)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i%12)
			switch i % 3 {
			case 0:
				r.Resolve(id)
			case 1:
				r.Fetch(id)
			case 2:
				r.Clear(id)
			}
		}(i)
	}
	wg.Wait()

	if r.Count() > 8 {
		t.Fatalf("capacity exceeded under concurrency: %d", r.Count())
	}
}
