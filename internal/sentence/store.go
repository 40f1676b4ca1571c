package sentence

import (
	"sync"

	"github.com/toefl-prep/backend/internal/models"
)

// maxUsedMemory caps the anti-repeat prompt memory. Oldest keys are evicted
// first once the cap is reached.
const maxUsedMemory = 300

// Store owns the process-wide runtime sets and the bounded used-question
// memory. All request handlers share one Store; a single mutex serializes
// mutation so concurrent generation and grading keep the per-call
// invariants.
type Store struct {
	mu        sync.Mutex
	sets      map[string]*models.SentenceSet
	usedKeys  map[string]bool
	usedOrder []string
}

func NewStore() *Store {
	return &Store{
		sets:     make(map[string]*models.SentenceSet),
		usedKeys: make(map[string]bool),
	}
}

// Create registers a freshly generated runtime set. Sets are never mutated
// after creation; Replace is the only path that swaps a payload.
func (s *Store) Create(setID string, set *models.SentenceSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[setID] = set
}

// Get returns the runtime set for setID, or nil when unknown.
func (s *Store) Get(setID string) *models.SentenceSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets[setID]
}

// Replace installs a payload restored from an external snapshot, e.g. after
// a process restart.
func (s *Store) Replace(setID string, set *models.SentenceSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sets[setID] = set
}

// Remember records a served prompt key, evicting the oldest key once the
// memory is full.
func (s *Store) Remember(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usedKeys[key] {
		return
	}
	s.usedKeys[key] = true
	s.usedOrder = append(s.usedOrder, key)
	if len(s.usedOrder) > maxUsedMemory {
		evicted := s.usedOrder[0]
		s.usedOrder = s.usedOrder[1:]
		delete(s.usedKeys, evicted)
	}
}

// Contains reports whether a prompt key was served recently enough to still
// be in memory.
func (s *Store) Contains(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.usedKeys[key]
}

// UsedKeys returns a snapshot of the current anti-repeat memory.
func (s *Store) UsedKeys() map[string]bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]bool, len(s.usedKeys))
	for k := range s.usedKeys {
		out[k] = true
	}
	return out
}
