package domain

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

// InsertionEngine adds statements to a test case. Each attempt draws one
// of three weighted branches: a fresh call on the unit under test, a call
// on an environment resource, or a call exercising an object the test
// already holds.
type InsertionEngine struct {
	catalog     adapter.Catalog
	tracker     *ConstraintTracker
	factory     *factory
	rng         *randx.Rand
	uutWeight   float64
	envWeight   float64
	sortObjects bool
}

func NewInsertionEngine(catalog adapter.Catalog, tracker *ConstraintTracker, f *factory, rng *randx.Rand, uutWeight, envWeight float64, sortObjects bool) *InsertionEngine {
	return &InsertionEngine{
		catalog:     catalog,
		tracker:     tracker,
		factory:     f,
		rng:         rng,
		uutWeight:   uutWeight,
		envWeight:   envWeight,
		sortObjects: sortObjects,
	}
}

// InsertStatement mutates the test case by inserting one call statement
// plus whatever dependency statements it needs. It returns the position
// of the inserted call, or InsertionError when no viable call was found.
// A failed attempt rolls the test case back to its prior contents, so
// dependency statements inserted before the failure never linger. The
// returned error is non-nil only for fatal invariant violations.
func (e *InsertionEngine) InsertStatement(tc *m.TestCase, lastPos int) (int, error) {
	backup := tc.Clone()
	r := e.rng.Float64()
	uut := e.catalog.TestCalls()
	env := e.catalog.EnvironmentCalls()

	insertUUT := e.uutWeight > 0 && r <= e.uutWeight && len(uut) > 0
	insertEnv := !insertUUT && e.envWeight > 0 &&
		r > e.uutWeight && r <= e.uutWeight+e.envWeight && len(env) > 0

	var pos int
	var err error
	switch {
	case insertUUT:
		pos, err = e.insertUUTCall(tc)
	case insertEnv:
		pos, err = e.insertEnvironmentCall(tc)
	default:
		pos, err = e.insertParameterCall(tc, lastPos)
	}
	if err != nil {
		if errors.Is(err, ErrConstructionFailed) {
			tc.RestoreFrom(backup)
			return InsertionError, nil
		}
		return InsertionError, err
	}
	if err := e.tracker.Verify(tc); err != nil {
		return InsertionError, err
	}
	return pos, nil
}

// insertUUTCall appends a random call on the unit under test.
func (e *InsertionEngine) insertUUTCall(tc *m.TestCase) (int, error) {
	call := randx.Choice(e.rng, e.catalog.TestCalls())
	pos, _, err := e.factory.insertCallAt(tc, call, tc.Size(), 0)
	return pos, err
}

// insertEnvironmentCall inserts a random call on an external resource.
// Environment calls are heavily constrained, so the position is chosen by
// the engine itself and pushed past any bounded-variable window it would
// otherwise split.
func (e *InsertionEngine) insertEnvironmentCall(tc *m.TestCase) (int, error) {
	call := randx.Choice(e.rng, e.catalog.EnvironmentCalls())
	pos := e.afterBounds(tc, e.rng.IntRange(0, tc.Size()+1))
	retPos, _, err := e.factory.insertCallAt(tc, call, pos, 0)
	return retPos, err
}

// insertParameterCall picks an existing object and inserts a random call
// on it. Falls back to a fresh call on the unit under test when no object
// is eligible.
func (e *InsertionEngine) insertParameterCall(tc *m.TestCase, lastPos int) (int, error) {
	v, ok := e.selectVariableForCall(tc, lastPos)
	if !ok {
		return e.fallbackToUUT(tc, fmt.Errorf("%w: no mutable object visible at position %d", ErrConstructionFailed, lastPos))
	}
	calls := e.catalog.CallsOn(v.Type.Name)
	if len(calls) == 0 {
		return e.fallbackToUUT(tc, fmt.Errorf("%w: no calls on type %s", ErrConstructionFailed, v.Type.Name))
	}
	call := randx.Choice(e.rng, calls)
	pos := e.afterBounds(tc, e.insertionPosition(tc, v))
	retPos, _, err := e.factory.insertCallOn(tc, call, v.Position, pos, 0)
	return retPos, err
}

func (e *InsertionEngine) fallbackToUUT(tc *m.TestCase, cause error) (int, error) {
	if len(e.catalog.TestCalls()) > 0 {
		return e.insertUUTCall(tc)
	}
	return 0, cause
}

// selectVariableForCall picks the object variable to exercise. Null and
// void results, raw Object values, primitives and wrappers, and values
// produced by mocks are never candidates. The remaining variables must
// either be referenced elsewhere in the test or be of the declared target
// class itself.
func (e *InsertionEngine) selectVariableForCall(tc *m.TestCase, lastPos int) (m.Variable, bool) {
	limit := lastPos + 1
	if limit > tc.Size() {
		limit = tc.Size()
	}
	var candidates []m.Variable
	for _, v := range tc.VariablesBefore(limit) {
		if v.IsNull || v.IsVoid || v.FromPrimitive || v.FromMock || v.IsWrapper {
			continue
		}
		if v.Type.Name == m.TypeObject || v.Type.IsPrimitive() {
			continue
		}
		if !tc.HasReferences(v.Position) && v.Type.Name != e.catalog.TargetClass() {
			continue
		}
		candidates = append(candidates, v)
	}
	if len(candidates) == 0 {
		return m.Variable{}, false
	}
	if e.sortObjects {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Distance < candidates[j].Distance
		})
		return randx.RankBiased(e.rng, candidates), true
	}
	return randx.Choice(e.rng, candidates), true
}

// insertionPosition computes where a call on v must go: right after the
// bound boundary if v is bounded, otherwise somewhere inside v's usage
// span.
func (e *InsertionEngine) insertionPosition(tc *m.TestCase, v m.Variable) int {
	if b, ok := e.tracker.BoundedUntil(tc, v.Position); ok {
		return b + 1
	}
	last := tc.LastUsage(v.Position)
	switch refs := tc.References(v.Position); len(refs) {
	case 0:
		return v.Position + 1
	case 1:
		return last
	default:
		return e.rng.IntRange(v.Position+1, last)
	}
}

// afterBounds pushes an insertion position forward until it no longer
// falls strictly inside a bounded variable's window.
func (e *InsertionEngine) afterBounds(tc *m.TestCase, pos int) int {
	for moved := true; moved; {
		moved = false
		for p := 0; p < pos && p < tc.Size(); p++ {
			if b, ok := e.tracker.BoundedUntil(tc, p); ok && pos > p && pos <= b {
				pos = b + 1
				moved = true
			}
		}
	}
	return pos
}
