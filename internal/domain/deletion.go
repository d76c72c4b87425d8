package domain

import (
	"fmt"
	"sort"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

// DeletionEngine removes statements from a test case together with every
// statement that would become invalid, or rewires dependents to a
// compatible alternative variable first.
type DeletionEngine struct {
	catalog adapter.Catalog
	tracker *ConstraintTracker
	rng     *randx.Rand
}

func NewDeletionEngine(catalog adapter.Catalog, tracker *ConstraintTracker, rng *randx.Rand) *DeletionEngine {
	return &DeletionEngine{catalog: catalog, tracker: tracker, rng: rng}
}

// Delete removes the statement at pos and the closure of statements that
// depend on it. Returns false when the deletability check rejects the
// position. A non-nil error means the dependency structure is corrupted.
func (e *DeletionEngine) Delete(tc *m.TestCase, pos int) (bool, error) {
	if pos < 0 || pos >= tc.Size() {
		return false, nil
	}
	if !e.tracker.CanDelete(tc, pos) {
		return false, nil
	}

	marked := make(map[int]bool)
	if err := e.mark(tc, pos, marked); err != nil {
		return false, err
	}

	order := make([]int, 0, len(marked))
	for p := range marked {
		order = append(order, p)
	}
	// Descending removal keeps the remaining indices valid.
	sort.Sort(sort.Reverse(sort.IntSlice(order)))
	for _, p := range order {
		tc.Remove(p)
	}
	return true, nil
}

// mark computes the deletion closure: every reader of pos, transitively,
// plus every paired position. Already-marked positions short-circuit, so
// the recursion terminates on any acyclic dependency structure.
func (e *DeletionEngine) mark(tc *m.TestCase, pos int, marked map[int]bool) error {
	if pos < 0 || pos >= tc.Size() {
		return fmt.Errorf("%w: deletion closure reached position %d outside test of size %d", ErrInvariant, pos, tc.Size())
	}
	if marked[pos] {
		return nil
	}
	marked[pos] = true
	for _, r := range tc.References(pos) {
		if err := e.mark(tc, r, marked); err != nil {
			return err
		}
	}
	for _, d := range e.tracker.DependentPositions(tc, pos) {
		if err := e.mark(tc, d, marked); err != nil {
			return err
		}
	}
	return nil
}

// DeleteGracefully tries to keep dependents alive by rewiring them to an
// alternative compatible variable before deleting pos. Reports true if
// either the deletion or any rewiring happened.
func (e *DeletionEngine) DeleteGracefully(tc *m.TestCase, pos int) (bool, error) {
	if pos < 0 || pos >= tc.Size() {
		return false, nil
	}
	v := tc.Variable(pos)
	if v.IsArrayIndex {
		return e.Delete(tc, pos)
	}

	changed := false
	alts := e.alternatives(tc, pos, v)
	if len(alts) > 0 {
		for _, r := range tc.References(pos) {
			s := tc.Statement(r)
			if s.IsAssignment() {
				if e.rewireAssignment(tc, s, pos, alts) {
					changed = true
				}
				continue
			}
			// A statement that bounds this variable must keep it;
			// swapping the callee would leave the call malformed.
			if s.BoundsInput(pos) {
				continue
			}
			s.Replace(pos, randx.Choice(e.rng, alts).Position)
			changed = true
		}
	}

	deleted, err := e.Delete(tc, pos)
	if err != nil {
		return false, err
	}
	return deleted || changed, nil
}

// alternatives collects the replacement candidates for the variable at
// pos: compatible variables visible before pos, minus mocks, back-linked
// variables, final fields, undersized arrays and (for object values)
// primitives.
func (e *DeletionEngine) alternatives(tc *m.TestCase, pos int, v m.Variable) []m.Variable {
	maxIdx := -1
	if v.IsArrayRef {
		maxIdx = tc.MaxArrayIndex(pos)
	}
	var out []m.Variable
	for _, alt := range tc.VariablesBefore(pos) {
		if alt.IsNull || alt.IsVoid || alt.FromMock {
			continue
		}
		if alt.AdditionalVar == pos {
			continue
		}
		if alt.FinalField {
			continue
		}
		if !v.FromPrimitive && alt.FromPrimitive {
			continue
		}
		if v.IsArrayRef && (!alt.IsArrayRef || alt.ArrayLen <= maxIdx) {
			continue
		}
		if !e.catalog.AssignableTo(alt.Type.Name, v.Type.Name) {
			continue
		}
		out = append(out, alt)
	}
	return out
}

// rewireAssignment rebinds the side of an assignment that reads pos, but
// only when the replacement stays type-assignable in that direction.
func (e *DeletionEngine) rewireAssignment(tc *m.TestCase, s *m.Statement, pos int, alts []m.Variable) bool {
	changed := false
	if s.Target == pos {
		src := tc.Variable(s.Source)
		if alt, ok := e.pickAssignable(alts, func(a m.Variable) bool {
			return e.catalog.AssignableTo(src.Type.Name, a.Type.Name)
		}); ok {
			s.Target = alt.Position
			changed = true
		}
	}
	if s.Source == pos {
		tgt := tc.Variable(s.Target)
		if alt, ok := e.pickAssignable(alts, func(a m.Variable) bool {
			return e.catalog.AssignableTo(a.Type.Name, tgt.Type.Name)
		}); ok {
			s.Source = alt.Position
			changed = true
		}
	}
	return changed
}

func (e *DeletionEngine) pickAssignable(alts []m.Variable, ok func(m.Variable) bool) (m.Variable, bool) {
	var fits []m.Variable
	for _, a := range alts {
		if ok(a) {
			fits = append(fits, a)
		}
	}
	if len(fits) == 0 {
		return m.Variable{}, false
	}
	return randx.Choice(e.rng, fits), true
}
