package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

func newStackGoal(t *testing.T, method string, complexity int) *m.Goal {
	t.Helper()
	goal, err := m.NewGoal("Stack", method, complexity, m.PenaltyPolicy{Enabled: true, Threshold: 0})
	require.NoError(t, err)
	return goal
}

func TestFitnessExecutesAtMostOnceWhenUnchanged(t *testing.T) {
	ctx := context.Background()
	goal := newStackGoal(t, "push(I)V", 1)
	exec := &countingExecutor{result: coveringResult(goal.Key())}
	f := NewMethodCoverageFitness(goal, exec)
	c := m.NewTestChromosome(m.NewTestCase())

	first, err := f.Fitness(ctx, c)
	require.NoError(t, err)
	second, err := f.Fitness(ctx, c)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, exec.runs, "an unchanged chromosome must not be re-executed")
}

func TestFitnessReExecutesAfterChange(t *testing.T) {
	ctx := context.Background()
	goal := newStackGoal(t, "push(I)V", 1)
	exec := &countingExecutor{result: coveringResult(goal.Key())}
	f := NewMethodCoverageFitness(goal, exec)
	c := m.NewTestChromosome(m.NewTestCase())

	_, err := f.Fitness(ctx, c)
	require.NoError(t, err)
	c.SetChanged(true)
	_, err = f.Fitness(ctx, c)
	require.NoError(t, err)
	_, err = f.Fitness(ctx, c)
	require.NoError(t, err)

	assert.Equal(t, 2, exec.runs, "marking changed forces exactly one re-execution")
}

func TestIsCoveredIsMonotonic(t *testing.T) {
	ctx := context.Background()
	goal := newStackGoal(t, "push(I)V", 1)
	exec := &countingExecutor{result: coveringResult(goal.Key())}
	f := NewMethodCoverageFitness(goal, exec)
	c := m.NewTestChromosome(m.NewTestCase())

	covered, err := f.IsCovered(ctx, c)
	require.NoError(t, err)
	require.True(t, covered)
	runsAfterFirst := exec.runs

	// Even a stale chromosome stays covered without re-execution.
	exec.result = coveringResult()
	c.SetChanged(true)

	covered, err = f.IsCovered(ctx, c)
	require.NoError(t, err)
	assert.True(t, covered)
	assert.Equal(t, runsAfterFirst, exec.runs)
}

func TestCoverageIsScopedToTheGoalKind(t *testing.T) {
	ctx := context.Background()
	goal := newStackGoal(t, "push(I)V", 1)

	// The method is reached but raises on the way, so method coverage
	// is optimal while the exception-free distance is not.
	result := coveringResult(goal.Key())
	result.Exceptions[0] = "IllegalStateException"
	exec := &countingExecutor{result: result}

	method := NewMethodCoverageFitness(goal, exec)
	exceptions := NewExceptionFreeFitness(goal, exec)
	c := m.NewTestChromosome(m.NewTestCase())

	v, err := method.Fitness(ctx, c)
	require.NoError(t, err)
	require.Equal(t, 0.0, v)

	covered, err := exceptions.IsCovered(ctx, c)
	require.NoError(t, err)
	assert.False(t, covered, "method coverage must not bleed into the exception-free goal")

	v, ok := c.Fitness(exceptions.ID())
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
}

func TestMethodCoverageDistances(t *testing.T) {
	goal := newStackGoal(t, "push(I)V", 1)
	f := NewMethodCoverageFitness(goal, &countingExecutor{})

	t.Run("missing result is worst", func(t *testing.T) {
		assert.Equal(t, 1.0, f.FitnessFromResult(nil))
	})

	t.Run("covered method is optimal", func(t *testing.T) {
		assert.Equal(t, 0.0, f.FitnessFromResult(coveringResult(goal.Key())))
	})

	t.Run("reached class is halfway", func(t *testing.T) {
		assert.Equal(t, 0.5, f.FitnessFromResult(coveringResult("Stack.pop()I")))
	})

	t.Run("unreached class is worst", func(t *testing.T) {
		assert.Equal(t, 1.0, f.FitnessFromResult(coveringResult("Other.run()V")))
	})
}

func TestExceptionFreeDistances(t *testing.T) {
	goal := newStackGoal(t, "push(I)V", 1)
	f := NewExceptionFreeFitness(goal, &countingExecutor{})

	t.Run("clean covering run is optimal", func(t *testing.T) {
		assert.Equal(t, 0.0, f.FitnessFromResult(coveringResult(goal.Key())))
	})

	t.Run("exceptions push the distance up", func(t *testing.T) {
		r := coveringResult(goal.Key())
		r.Exceptions[0] = "NullPointerException"
		assert.Equal(t, 0.5, f.FitnessFromResult(r))
	})

	t.Run("unreached method is worst", func(t *testing.T) {
		assert.Equal(t, 1.0, f.FitnessFromResult(coveringResult()))
	})
}

func TestCompareFitnessOrdering(t *testing.T) {
	exec := &countingExecutor{}
	push := NewMethodCoverageFitness(newStackGoal(t, "push(I)V", 1), exec)
	pop := NewMethodCoverageFitness(newStackGoal(t, "pop()I", 1), exec)
	popExceptions := NewExceptionFreeFitness(pop.Goal(), exec)
	penalized := NewMethodCoverageFitness(newStackGoal(t, "slow()V", 1), exec)
	penalized.Goal().IncreaseFailurePenalty()

	assert.Negative(t, CompareFitness(pop, push), "ties break by goal key")
	assert.Negative(t, CompareFitness(popExceptions, pop), "ties break by kind name first")
	assert.Positive(t, CompareFitness(penalized, push), "higher penalty schedules later")
	assert.Zero(t, CompareFitness(push, push))
}

func TestMaskedFitnessRefusesEvaluation(t *testing.T) {
	inner := NewMethodCoverageFitness(newStackGoal(t, "push(I)V", 1), &countingExecutor{})
	masked := NewMaskedFitness(inner)

	_, err := masked.Fitness(context.Background(), &m.SuiteChromosome{})

	assert.ErrorIs(t, err, ErrInvariant)
	assert.False(t, masked.IsMaximization())
	assert.Same(t, inner, masked.Unwrap().(*MethodCoverageFitness))
}
