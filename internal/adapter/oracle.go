package adapter

import (
	"fmt"
	"sync"
)

// ComplexityOracle resolves the cyclomatic complexity of a target
// executable from precomputed control-flow graphs. The contract is strict:
// any reachable target yields a value >= 1, and an unknown class or
// malformed descriptor at this boundary is a fatal error. Catalog
// construction is responsible for pre-validating.
type ComplexityOracle interface {
	CyclomaticComplexity(className, methodName string) (int, error)
}

// StaticOracle serves complexities from a table loaded alongside the
// catalog. Entries without a declared complexity default to 1.
type StaticOracle struct {
	complexities map[string]int
}

// NewStaticOracle builds an oracle over a key -> complexity table.
func NewStaticOracle(complexities map[string]int) *StaticOracle {
	return &StaticOracle{complexities: complexities}
}

// CyclomaticComplexity implements ComplexityOracle.
func (o *StaticOracle) CyclomaticComplexity(className, methodName string) (int, error) {
	key := className + "." + methodName
	c, ok := o.complexities[key]
	if !ok {
		return 1, nil
	}
	if c < 1 {
		return 0, fmt.Errorf("cyclomatic complexity of %s must be positive, got %d", key, c)
	}
	return c, nil
}

// MemoOracle caches another oracle's answers. First computations may race:
// complexity is a pure function of the target, so concurrent initializers
// produce identical values and last-write-wins stores are safe without
// further synchronization.
type MemoOracle struct {
	inner ComplexityOracle
	cache sync.Map // key -> int
}

// NewMemoOracle wraps an oracle with an idempotent memoization table.
func NewMemoOracle(inner ComplexityOracle) *MemoOracle {
	return &MemoOracle{inner: inner}
}

// CyclomaticComplexity implements ComplexityOracle.
func (o *MemoOracle) CyclomaticComplexity(className, methodName string) (int, error) {
	key := className + "." + methodName
	if v, ok := o.cache.Load(key); ok {
		return v.(int), nil
	}
	c, err := o.inner.CyclomaticComplexity(className, methodName)
	if err != nil {
		return 0, err
	}
	o.cache.Store(key, c)
	return c, nil
}
