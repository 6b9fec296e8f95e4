package core

import (
	"math/rand"
	"sync"
)

// SeedSource hands out independent random generators. Seeds are drawn from a
// single generator guarded by a mutex; the generators it returns are owned by
// one task and never shared.
type SeedSource struct {
	mu     sync.Mutex
	random *rand.Rand
}

// NewSeedSource creates a seed source from a root seed
func NewSeedSource(seed int64) *SeedSource {
	return &SeedSource{random: rand.New(rand.NewSource(seed))}
}

// NewRand returns a fresh generator seeded from the root generator
func (s *SeedSource) NewRand() *rand.Rand {
	s.mu.Lock()
	seed := s.random.Int63()
	s.mu.Unlock()
	return rand.New(rand.NewSource(seed))
}
