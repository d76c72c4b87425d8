package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoalValidation(t *testing.T) {
	policy := PenaltyPolicy{Enabled: true, Threshold: 0}

	t.Run("rejects empty class name", func(t *testing.T) {
		_, err := NewGoal("", "push(I)V", 1, policy)
		assert.Error(t, err)
	})

	t.Run("rejects malformed descriptor", func(t *testing.T) {
		_, err := NewGoal("Stack", "push", 1, policy)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive complexity", func(t *testing.T) {
		_, err := NewGoal("Stack", "push(I)V", 0, policy)
		assert.Error(t, err)
	})

	t.Run("accepts a valid goal", func(t *testing.T) {
		g, err := NewGoal("Stack", "push(I)V", 3, policy)
		require.NoError(t, err)
		assert.Equal(t, "Stack.push(I)V", g.Key())
		assert.Equal(t, 3, g.CyclomaticComplexity())
		assert.Equal(t, -3, g.FailurePenalty())
	})
}

func TestFailurePenaltyThreshold(t *testing.T) {
	g, err := NewGoal("Stack", "push(I)V", 4, PenaltyPolicy{Enabled: true, Threshold: 2})
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		g.IncreaseFailurePenalty()
	}
	assert.Equal(t, 2, g.FailurePenalty())
	assert.False(t, g.FailurePenaltyReached(), "penalty equal to the threshold is not reached yet")

	g.IncreaseFailurePenalty()
	assert.True(t, g.FailurePenaltyReached())

	g.ResetFailurePenalty()
	assert.Equal(t, -4, g.FailurePenalty())
	assert.False(t, g.FailurePenaltyReached())
}

func TestFailurePenaltyDisabled(t *testing.T) {
	g, err := NewGoal("Stack", "push(I)V", 2, PenaltyPolicy{Enabled: false, Threshold: 0})
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		g.IncreaseFailurePenalty()
	}

	assert.Equal(t, -2, g.FailurePenalty())
	assert.False(t, g.FailurePenaltyReached())
}
