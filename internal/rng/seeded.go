package rng

import "math/rand"

// Seeded wraps math/rand with a fixed seed for reproducible shuffles
type Seeded struct {
	rng *rand.Rand
}

// NewSeeded returns a Generator seeded with the provided value
func NewSeeded(seed int64) *Seeded {
	return &Seeded{rng: rand.New(rand.NewSource(seed))}
}

// Intn returns a random number from 0 < n
func (s *Seeded) Intn(n int) int {
	return s.rng.Intn(n)
}
