package model

import (
	"github.com/google/uuid"
)

// Chromosome is the search representation of a candidate solution.
type Chromosome interface {
	// Size is the number of statements in the representation.
	Size() int
}

// TestChromosome wraps a single test case together with its cached
// execution result. The cache and the changed flag are private to the
// individual, so independent individuals can be evaluated in parallel
// without locking.
type TestChromosome struct {
	ID   string
	Test *TestCase

	lastResult *ExecutionResult
	changed    bool

	coveredGoals map[string]bool
	fitness      map[string]float64
}

// NewTestChromosome wraps a test case into a chromosome. A fresh chromosome
// counts as changed so the first evaluation executes it.
func NewTestChromosome(tc *TestCase) *TestChromosome {
	return &TestChromosome{
		ID:           uuid.NewString(),
		Test:         tc,
		changed:      true,
		coveredGoals: make(map[string]bool),
		fitness:      make(map[string]float64),
	}
}

// Size returns the number of statements of the wrapped test case.
func (c *TestChromosome) Size() int { return c.Test.Size() }

// LastExecutionResult returns the cached result, or nil if the chromosome
// has never been executed.
func (c *TestChromosome) LastExecutionResult() *ExecutionResult { return c.lastResult }

// SetLastExecutionResult refreshes the cached result.
func (c *TestChromosome) SetLastExecutionResult(r *ExecutionResult) { c.lastResult = r }

// IsChanged reports whether the test case was mutated since the cached
// result was produced.
func (c *TestChromosome) IsChanged() bool { return c.changed }

// SetChanged marks the cache stale (true) or fresh (false).
func (c *TestChromosome) SetChanged(changed bool) { c.changed = changed }

// IsGoalCovered returns the recorded covered status for a goal key. Once
// recorded, coverage is never withdrawn.
func (c *TestChromosome) IsGoalCovered(key string) bool { return c.coveredGoals[key] }

// RecordCoveredGoal marks a goal as covered by this test.
func (c *TestChromosome) RecordCoveredGoal(key string) { c.coveredGoals[key] = true }

// UpdateFitness records the best known fitness for a goal key. Fitness is
// minimized, so smaller values win.
func (c *TestChromosome) UpdateFitness(key string, fitness float64) {
	if best, ok := c.fitness[key]; !ok || fitness < best {
		c.fitness[key] = fitness
	}
}

// Fitness returns the best recorded fitness for a goal key.
func (c *TestChromosome) Fitness(key string) (float64, bool) {
	f, ok := c.fitness[key]
	return f, ok
}

// Clone copies the chromosome under a new identity. The clone counts as
// changed: its statements may diverge from the cached result.
func (c *TestChromosome) Clone() *TestChromosome {
	clone := NewTestChromosome(c.Test.Clone())
	clone.lastResult = c.lastResult
	for k := range c.coveredGoals {
		clone.coveredGoals[k] = true
	}
	for k, f := range c.fitness {
		clone.fitness[k] = f
	}
	return clone
}

// SuiteChromosome is a whole-suite representation: a collection of test
// chromosomes evolved together. It shares the Chromosome interface with
// TestChromosome so heterogeneous representations can live in one typed
// collection.
type SuiteChromosome struct {
	Tests []*TestChromosome
}

// Size returns the total number of statements across all tests.
func (s *SuiteChromosome) Size() int {
	n := 0
	for _, t := range s.Tests {
		n += t.Size()
	}
	return n
}
