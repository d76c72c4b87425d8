// Package randx provides the seedable randomness source used by the
// mutation engines: uniform doubles, bounded integers, and uniform or
// rank-biased choice from ordered sequences. Seeding the source makes
// search runs reproducible.
package randx

import (
	"math"
	"math/rand"
)

// rankBias controls how strongly RankBiased favors early indices. The
// value follows the classic linear rank-bias scheme with bias 1.7.
const rankBias = 1.7

// Rand wraps a seeded PRNG. It is not safe for concurrent use; each search
// session owns its own instance.
type Rand struct {
	r *rand.Rand
}

// New returns a source seeded with the given value.
func New(seed int64) *Rand {
	return &Rand{r: rand.New(rand.NewSource(seed))}
}

// Float64 returns a uniform double in [0, 1).
func (r *Rand) Float64() float64 { return r.r.Float64() }

// Intn returns a uniform integer in [0, n).
func (r *Rand) Intn(n int) int { return r.r.Intn(n) }

// IntRange returns a uniform integer in [lo, hi). lo must be < hi.
func (r *Rand) IntRange(lo, hi int) int {
	return lo + r.r.Intn(hi-lo)
}

// Choice picks a uniform element from a non-empty slice.
func Choice[T any](r *Rand, items []T) T {
	return items[r.Intn(len(items))]
}

// WeightedChoice picks an element from a non-empty slice with probability
// proportional to its weight. Weights must be non-negative with a positive
// sum; the last element absorbs any floating-point remainder.
func WeightedChoice[T any](r *Rand, items []T, weights []float64) T {
	total := 0.0
	for _, w := range weights {
		total += w
	}
	u := r.Float64() * total
	for i, w := range weights {
		u -= w
		if u < 0 {
			return items[i]
		}
	}
	return items[len(items)-1]
}

// RankBiased picks an element from a non-empty ordered slice with a bias
// towards early indices: index 0 is the most likely outcome and the
// probability decays with rank.
func RankBiased[T any](r *Rand, items []T) T {
	n := len(items)
	u := r.Float64()
	d := (rankBias - math.Sqrt(rankBias*rankBias-4.0*(rankBias-1.0)*u)) / 2.0 / (rankBias - 1.0)
	idx := int(float64(n) * d)
	if idx >= n {
		idx = n - 1
	}
	return items[idx]
}
