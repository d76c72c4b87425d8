package domain

import (
	"fmt"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// ConstraintTracker derives ordering constraints from the current test
// case contents. It holds no state of its own; every answer is computed
// from the statements.
type ConstraintTracker struct{}

// NewConstraintTracker returns a tracker.
func NewConstraintTracker() *ConstraintTracker {
	return &ConstraintTracker{}
}

// BoundedUntil returns the last position through which the variable
// produced at pos is bounded: the latest bounding call that fixes it in
// place. The second return is false when the variable is unconstrained.
// No statement may be inserted or deleted strictly between the variable's
// creation and this boundary.
func (t *ConstraintTracker) BoundedUntil(tc *m.TestCase, pos int) (int, bool) {
	boundary := -1
	for i := pos + 1; i < tc.Size(); i++ {
		if tc.Statement(i).BoundsInput(pos) {
			boundary = i
		}
	}
	if boundary < 0 {
		return 0, false
	}
	return boundary, true
}

// DependentPositions returns the positions that must be deleted together
// with pos due to paired-resource constraints (e.g. an open and its
// close). The result may be empty.
func (t *ConstraintTracker) DependentPositions(tc *m.TestCase, pos int) []int {
	s := tc.Statement(pos)
	if s.Call == nil {
		return nil
	}
	var deps []int
	for i := 0; i < tc.Size(); i++ {
		if i == pos {
			continue
		}
		o := tc.Statement(i)
		if o.Call == nil {
			continue
		}
		if paired(s, o, pos, i) || paired(o, s, i, pos) {
			deps = append(deps, i)
		}
	}
	return deps
}

// paired reports whether a declares o as its paired partner acting on the
// same resource. The resource is either a shared callee or the value one
// of the two statements produces.
func paired(a, o *m.Statement, aPos, oPos int) bool {
	if a.Call.PairedWith == "" || o.Call.Name != a.Call.PairedWith {
		return false
	}
	return o.Callee == aPos || (a.Callee != m.NoVar && o.Callee == a.Callee)
}

// CanDelete is the global deletability check: a position strictly inside a
// bounded variable's window cannot be removed on its own, unless it is
// itself a bounding call (removing it merely relaxes the constraint).
func (t *ConstraintTracker) CanDelete(tc *m.TestCase, pos int) bool {
	if pos < 0 || pos >= tc.Size() {
		return false
	}
	for p := 0; p < pos; p++ {
		b, bounded := t.BoundedUntil(tc, p)
		if !bounded || pos > b {
			continue
		}
		if !tc.Statement(pos).BoundsInput(p) {
			return false
		}
	}
	return true
}

// Verify checks the structural constraints of a test case after a
// mutation: referential integrity and the absence of assertion-only
// helper calls in the executable prefix.
func (t *ConstraintTracker) Verify(tc *m.TestCase) error {
	if err := tc.Verify(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvariant, err)
	}
	for i := 0; i < tc.Size(); i++ {
		if call := tc.Statement(i).Call; call != nil && call.AssertionOnly {
			return fmt.Errorf("%w: assertion-only call %s at position %d", ErrInvariant, call.Key(), i)
		}
	}
	return nil
}
