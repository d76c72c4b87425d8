package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

func TestSelectBestReturnsSortedPrefix(t *testing.T) {
	sel := NewBestKSelection[string]()
	population := []string{"best", "good", "fair", "poor"}

	assert.Equal(t, []string{"best", "good"}, sel.Select(population, 2))
	assert.Equal(t, population, sel.Select(population, 4))
	assert.Empty(t, sel.Select(population, 0))
}

func TestSelectBestClampsK(t *testing.T) {
	sel := NewBestKSelection[int]()

	assert.Equal(t, []int{1, 2}, sel.Select([]int{1, 2}, 5))
	assert.Empty(t, sel.Select([]int{1, 2}, -1))
}

func TestSelectBestCopies(t *testing.T) {
	sel := NewBestKSelection[int]()
	population := []int{1, 2, 3}

	picked := sel.Select(population, 2)
	picked[0] = 99

	assert.Equal(t, 1, population[0])
}

func TestBestIndexIsAlwaysFirst(t *testing.T) {
	sel := NewBestKSelection[*m.TestChromosome]()

	assert.Equal(t, 0, sel.BestIndex(nil))
	assert.Equal(t, 0, sel.BestIndex([]*m.TestChromosome{
		m.NewTestChromosome(m.NewTestCase()),
	}))
}
