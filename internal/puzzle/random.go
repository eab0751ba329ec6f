package puzzle

import (
	"math/rand"
	"time"
)

// RandomSource picks portal destinations. *rand.Rand satisfies it.
type RandomSource interface {
	// Intn returns a value in [0, n). n is always > 0.
	Intn(n int) int
}

// NewRandomSource returns a seeded source. Seed 0 means seed from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FixedSource always returns the same index, clamped to [0, n).
type FixedSource int

// Intn implements RandomSource.
func (f FixedSource) Intn(n int) int {
	i := int(f)
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
