package domain

// BestKSelection picks survivors from a population that the caller has
// already sorted best-first. It performs no sorting and no validation of
// sortedness.
type BestKSelection[T any] struct{}

func NewBestKSelection[T any]() *BestKSelection[T] {
	return &BestKSelection[T]{}
}

// Select returns a copy of the first k individuals, order preserved. A k
// larger than the population returns the whole population.
func (s *BestKSelection[T]) Select(population []T, k int) []T {
	if k < 0 {
		k = 0
	}
	if k > len(population) {
		k = len(population)
	}
	out := make([]T, k)
	copy(out, population[:k])
	return out
}

// BestIndex is always 0 in a sorted population.
func (s *BestKSelection[T]) BestIndex(population []T) int {
	return 0
}
