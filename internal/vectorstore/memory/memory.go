package memory

import (
	"sync"

	"github.com/cockroachdb/errors"

	"qabot/internal/domain"
)

// Storage is an ordered, capacity-bounded in-memory entry store.
// Each entry's encoded question is computed by the storage's encoder on insert.
type Storage struct {
	mu       sync.RWMutex
	capacity int
	encoder  domain.Encoder
	entries  []domain.Entry
}

// NewStorage creates an empty store holding at most capacity entries.
func NewStorage(capacity int, encoder domain.Encoder) *Storage {
	if capacity <= 0 {
		panic("memory: capacity must be positive")
	}
	if encoder == nil {
		panic("memory: encoder is required")
	}
	return &Storage{capacity: capacity, encoder: encoder}
}

// Add appends a new entry, or fails with domain.ErrStoreFull once capacity is reached.
func (s *Storage) Add(question, response string) (domain.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.entries) >= s.capacity {
		return domain.Entry{}, errors.Wrapf(domain.ErrStoreFull, "capacity %d reached", s.capacity)
	}
	e := domain.Entry{
		Question: question,
		Response: response,
		Encoded:  s.encoder.Encode(question),
	}
	s.entries = append(s.entries, e)
	return e, nil
}

// Entries returns a snapshot of the stored entries in insertion order.
func (s *Storage) Entries() []domain.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *Storage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Storage) Cap() int { return s.capacity }
