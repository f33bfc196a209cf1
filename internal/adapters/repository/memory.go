package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

type memoryRecord struct {
	slot Slot
	doc  []byte
}

// MemoryStore keeps saves in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	saves map[string]memoryRecord
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{saves: make(map[string]memoryRecord)}
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, slot Slot, doc []byte) error {
	if err := ValidSlot(slot.Name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves[slot.Name] = memoryRecord{slot: slot, doc: slices.Clone(doc)}
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, slot string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.saves[slot]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	return slices.Clone(rec.doc), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, slot string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.saves[slot]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, slot)
	}
	delete(s.saves, slot)
	return nil
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context) ([]Slot, error) {
	s.mu.RLock()
	out := make([]Slot, 0, len(s.saves))
	for _, rec := range s.saves {
		out = append(out, rec.slot)
	}
	s.mu.RUnlock()
	sortSlots(out)
	return out, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

func sortSlots(slots []Slot) {
	slices.SortFunc(slots, func(a, b Slot) int {
		if c := b.LastSaved.Compare(a.LastSaved); c != 0 {
			return c
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})
}
