package deals

import (
	"math/rand/v2"
	"sync"
)

// Rand is the randomness source used for deal synthesis. Implementations must be
// safe for concurrent use when a Synthesizer is shared between goroutines.
type Rand interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int
	// Float64 returns a uniform float in [0.0, 1.0).
	Float64() float64
}

type globalRand struct{}

func (globalRand) IntN(n int) int   { return rand.IntN(n) }
func (globalRand) Float64() float64 { return rand.Float64() }

// lockedRand serializes access to a *rand.Rand, which is not goroutine-safe
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *lockedRand) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}

// NewSeededRand returns a reproducible source that is safe for concurrent use.
// Sequences are only reproducible when draws happen in a fixed order.
func NewSeededRand(seed uint64) Rand {
	return &lockedRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
