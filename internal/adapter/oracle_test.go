package adapter

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingOracle counts how often the inner computation runs.
type countingOracle struct {
	mu    sync.Mutex
	calls int
	inner *StaticOracle
}

func (o *countingOracle) CyclomaticComplexity(className, methodName string) (int, error) {
	o.mu.Lock()
	o.calls++
	o.mu.Unlock()
	return o.inner.CyclomaticComplexity(className, methodName)
}

func TestStaticOracle(t *testing.T) {
	oracle := NewStaticOracle(map[string]int{
		"Stack.push(I)V": 4,
		"Stack.bad()V":   0,
	})

	t.Run("serves declared complexities", func(t *testing.T) {
		c, err := oracle.CyclomaticComplexity("Stack", "push(I)V")
		require.NoError(t, err)
		assert.Equal(t, 4, c)
	})

	t.Run("defaults to one", func(t *testing.T) {
		c, err := oracle.CyclomaticComplexity("Stack", "pop()I")
		require.NoError(t, err)
		assert.Equal(t, 1, c)
	})

	t.Run("rejects non-positive declarations", func(t *testing.T) {
		_, err := oracle.CyclomaticComplexity("Stack", "bad()V")
		assert.Error(t, err)
	})
}

func TestMemoOracleComputesOnce(t *testing.T) {
	inner := &countingOracle{inner: NewStaticOracle(map[string]int{"Stack.push(I)V": 4})}
	memo := NewMemoOracle(inner)

	for i := 0; i < 5; i++ {
		c, err := memo.CyclomaticComplexity("Stack", "push(I)V")
		require.NoError(t, err)
		assert.Equal(t, 4, c)
	}

	assert.Equal(t, 1, inner.calls)
}

func TestMemoOracleIsSafeUnderConcurrentFirstAccess(t *testing.T) {
	inner := &countingOracle{inner: NewStaticOracle(map[string]int{"Stack.push(I)V": 4})}
	memo := NewMemoOracle(inner)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := memo.CyclomaticComplexity("Stack", "push(I)V")
			assert.NoError(t, err)
			assert.Equal(t, 4, c)
		}()
	}
	wg.Wait()

	c, err := memo.CyclomaticComplexity("Stack", "push(I)V")
	require.NoError(t, err)
	assert.Equal(t, 4, c)
}
