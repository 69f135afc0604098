package session

import (
	"container/list"
	"sync"
	"time"

	"github.com/google/uuid"
)

// AnonPrefix marks identifiers that live only in the registry, never in
// the remote store.
const AnonPrefix = "anon-"

// DefaultMaxSessions bounds the registry when no capacity is configured
const DefaultMaxSessions = 25

type entry struct {
	id           string
	memory       *Memory
	createdAt    time.Time
	lastAccessed time.Time
	elem         *list.Element
}

// Registry is the process-wide map of active in-memory sessions with
// least-recently-used eviction. The recency list keeps the most recently
// touched entry at the front; eviction takes from the back.
type Registry struct {
	mu          sync.Mutex
	maxSessions int
	window      int
	entries     map[string]*entry
	recency     *list.List
}

// NewRegistry creates a registry holding at most maxSessions sessions,
// each with a conversation window of memoryWindow turns.
func NewRegistry(maxSessions, memoryWindow int) *Registry {
	if maxSessions <= 0 {
		maxSessions = DefaultMaxSessions
	}
	return &Registry{
		maxSessions: maxSessions,
		window:      memoryWindow,
		entries:     make(map[string]*entry),
		recency:     list.New(),
	}
}

// Resolve returns the memory for id, creating it if unknown. An empty id
// gets a freshly generated anonymous identifier; a caller-supplied unknown
// id is installed verbatim. Existing entries are marked most recently
// used. Never fails; evicts the least recently used entry when full.
func (r *Registry) Resolve(id string) (string, *Memory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if e, ok := r.entries[id]; ok {
			r.touch(e)
			return id, e.memory
		}
	}

	if id == "" {
		id = AnonPrefix + uuid.New().String()
	}

	if len(r.entries) >= r.maxSessions {
		r.evictOldest()
	}

	now := time.Now()
	e := &entry{
		id:           id,
		memory:       NewMemory(r.window),
		createdAt:    now,
		lastAccessed: now,
	}
	e.elem = r.recency.PushFront(e)
	r.entries[id] = e

	return id, e.memory
}

// Fetch returns the memory for id without creating one. A hit refreshes
// recency.
func (r *Registry) Fetch(id string) *Memory {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return nil
	}
	r.touch(e)
	return e.memory
}

// Clear removes the session if present and reports whether it did
func (r *Registry) Clear(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[id]
	if !ok {
		return false
	}
	r.remove(e)
	return true
}

// Count returns the number of active sessions
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// SweepStale removes every session whose last access is strictly older
// than maxAge and returns how many were removed. Capacity is not
// considered here; eviction only happens at insertion time.
func (r *Registry) SweepStale(maxAge time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0

	// Walk from the least recently used end; everything in front of the
	// first fresh entry is fresh too.
	for el := r.recency.Back(); el != nil; {
		e := el.Value.(*entry)
		if !e.lastAccessed.Before(cutoff) {
			break
		}
		prev := el.Prev()
		r.remove(e)
		removed++
		el = prev
	}

	return removed
}

func (r *Registry) touch(e *entry) {
	e.lastAccessed = time.Now()
	r.recency.MoveToFront(e.elem)
}

func (r *Registry) evictOldest() {
	el := r.recency.Back()
	if el == nil {
		return
	}
	r.remove(el.Value.(*entry))
}

func (r *Registry) remove(e *entry) {
	r.recency.Remove(e.elem)
	delete(r.entries, e.id)
}
