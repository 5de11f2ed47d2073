package util

import (
	"math/rand"

	"github.com/hupe1980/langclust/point"
)

// RNG struct encapsulates the random number generator and seed.
type RNG struct {
	rand *rand.Rand
	seed int64
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Int63n returns a uniform random int64 in [0, n).
func (r *RNG) Int63n(n int64) int64 {
	return r.rand.Int63n(n)
}

// Intn returns a uniform random int in [0, n).
func (r *RNG) Intn(n int) int {
	return r.rand.Intn(n)
}

// GenerateRandomPoints generates random points spread over the given number
// of language slots, using the given RNG.
func (r *RNG) GenerateRandomPoints(num, langs int, spread, maxScore int64) []point.Point {
	points := make([]point.Point, num)
	for i := range points {
		points[i] = point.Point{
			X: int64(r.rand.Intn(langs)) * spread,
			Y: r.rand.Int63n(maxScore),
		}
	}

	return points
}
