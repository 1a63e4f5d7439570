package games

import (
	"math/rand/v2"
	"sync"
)

// RandomSource supplies randomness to the symbol draws
type RandomSource interface {
	// IntN returns a uniform value in [0, n)
	IntN(n int) int
	// Float64 returns a uniform value in [0.0, 1.0)
	Float64() float64
}

type globalSource struct{}

func (globalSource) IntN(n int) int {
	return rand.IntN(n) //nolint:gosec // Game logic randomness, not security critical
}

func (globalSource) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

// DefaultSource is the process-wide source, safe for concurrent use
var DefaultSource RandomSource = globalSource{}

type seededSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSeededSource returns a deterministic source. Safe for concurrent use,
// although the sequence each goroutine observes then depends on scheduling.
func NewSeededSource(seed uint64) RandomSource {
	return &seededSource{
		rnd: rand.New(rand.NewPCG(seed, seed^seedStream)), //nolint:gosec // Seeded for reproducible draws
	}
}

func (s *seededSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.IntN(n)
}

func (s *seededSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Float64()
}
