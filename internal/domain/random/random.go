// Package random isolates every random draw behind a Source so simulations
// can be replayed from a seed or scripted in tests.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
	"sync"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float64() float64
}

// Intn returns floor(src.Float64() * n), a uniform int in [0, n).
// It returns 0 when n <= 0.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := int(src.Float64() * float64(n))
	if v >= n {
		v = n - 1
	}
	return v
}

// Between returns a uniform int in [lo, hi].
func Between(src Source, lo, hi int) int {
	return lo + Intn(src, hi-lo+1)
}

// Chance reports whether a draw falls below p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Pick returns a uniform element of items, or the zero value when empty.
func Pick[T any](src Source, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[Intn(src, len(items))]
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// Seeded is a deterministic pseudo-random Source. It is safe for concurrent use.
type Seeded struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeeded returns a Source replaying the sequence for seed.
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))} //nolint:gosec // game randomness
}

// Float64 implements Source.
func (s *Seeded) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

// Int63 draws a child seed.
func (s *Seeded) Int63() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Int63()
}

// Scripted replays a fixed list of draws and wraps around when exhausted.
type Scripted struct {
	mu     sync.Mutex
	values []float64
	next   int
}

// NewScripted returns a Source yielding values in order.
func NewScripted(values ...float64) *Scripted {
	if len(values) == 0 {
		values = []float64{0}
	}
	return &Scripted{values: values}
}

// Float64 implements Source.
func (s *Scripted) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := s.values[s.next%len(s.values)]
	s.next++
	return v
}

// Drawn returns how many values have been consumed.
func (s *Scripted) Drawn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
