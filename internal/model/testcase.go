package model

import (
	"fmt"
)

// TestCase is an ordered sequence of statements. Positions are 0-based
// indices into the sequence and are the only addressing scheme; a statement
// at position p may only reference variables produced at positions < p.
type TestCase struct {
	statements []*Statement
}

// NewTestCase returns an empty test case.
func NewTestCase() *TestCase {
	return &TestCase{}
}

// Size returns the number of statements.
func (tc *TestCase) Size() int { return len(tc.statements) }

// IsEmpty reports whether the test case has no statements.
func (tc *TestCase) IsEmpty() bool { return len(tc.statements) == 0 }

// Statement returns the statement at pos.
func (tc *TestCase) Statement(pos int) *Statement { return tc.statements[pos] }

// Variable returns the view onto the value produced at pos.
func (tc *TestCase) Variable(pos int) Variable {
	return variableAt(tc.statements[pos], pos)
}

// Append adds a statement at the end and returns its position.
func (tc *TestCase) Append(s *Statement) int {
	tc.statements = append(tc.statements, s)
	return len(tc.statements) - 1
}

// Insert places a statement at pos, shifting every reference to a position
// >= pos in later statements up by one.
func (tc *TestCase) Insert(s *Statement, pos int) {
	tc.statements = append(tc.statements, nil)
	copy(tc.statements[pos+1:], tc.statements[pos:])
	tc.statements[pos] = s
	for i := pos + 1; i < len(tc.statements); i++ {
		tc.statements[i].remap(func(p int) int {
			if p >= pos {
				return p + 1
			}
			return p
		})
	}
}

// Remove deletes the statement at pos, decrementing every reference to a
// position > pos. Callers must have removed all readers of pos first.
func (tc *TestCase) Remove(pos int) {
	tc.statements = append(tc.statements[:pos], tc.statements[pos+1:]...)
	for i := pos; i < len(tc.statements); i++ {
		tc.statements[i].remap(func(p int) int {
			if p > pos {
				return p - 1
			}
			return p
		})
	}
}

// SetStatement replaces the statement at pos in place, preserving the
// return-variable identity so later references remain valid.
func (tc *TestCase) SetStatement(s *Statement, pos int) {
	tc.statements[pos] = s
}

// VariablesBefore returns the variables visible at pos, i.e. those produced
// at positions < pos.
func (tc *TestCase) VariablesBefore(pos int) []Variable {
	if pos > len(tc.statements) {
		pos = len(tc.statements)
	}
	vars := make([]Variable, 0, pos)
	for i := 0; i < pos; i++ {
		vars = append(vars, tc.Variable(i))
	}
	return vars
}

// ObjectsOfType returns the visible variables at pos whose type name
// matches exactly.
func (tc *TestCase) ObjectsOfType(name TypeName, pos int) []Variable {
	var out []Variable
	for _, v := range tc.VariablesBefore(pos) {
		if v.Type.Name == name {
			out = append(out, v)
		}
	}
	return out
}

// References returns the positions of all statements after pos that read
// the variable produced at pos, in ascending order.
func (tc *TestCase) References(pos int) []int {
	var refs []int
	for i := pos + 1; i < len(tc.statements); i++ {
		if tc.statements[i].References(pos) {
			refs = append(refs, i)
		}
	}
	return refs
}

// HasReferences reports whether any later statement reads pos.
func (tc *TestCase) HasReferences(pos int) bool {
	for i := pos + 1; i < len(tc.statements); i++ {
		if tc.statements[i].References(pos) {
			return true
		}
	}
	return false
}

// LastUsage returns the last position at which the variable produced at pos
// is read; pos itself if it is never read.
func (tc *TestCase) LastUsage(pos int) int {
	last := pos
	for i := pos + 1; i < len(tc.statements); i++ {
		if tc.statements[i].References(pos) {
			last = i
		}
	}
	return last
}

// MaxArrayIndex returns the largest element index ever used against the
// array produced at pos, or -1 if no element access exists.
func (tc *TestCase) MaxArrayIndex(pos int) int {
	maxIdx := -1
	for _, s := range tc.statements {
		if s.Kind != StmtAssignment {
			continue
		}
		if s.Target == pos && s.TargetIndex > maxIdx {
			maxIdx = s.TargetIndex
		}
		if s.Source == pos && s.SourceIndex > maxIdx {
			maxIdx = s.SourceIndex
		}
	}
	return maxIdx
}

// Verify checks referential integrity: every statement may only reference
// variables produced at strictly earlier positions.
func (tc *TestCase) Verify() error {
	for i, s := range tc.statements {
		for _, in := range s.InputPositions() {
			if in < 0 || in >= i {
				return fmt.Errorf("statement %d references position %d", i, in)
			}
		}
	}
	return nil
}

// RestoreFrom discards the current statements and replaces them with a
// deep copy of other's. Mutation engines use it to roll back a partially
// applied change.
func (tc *TestCase) RestoreFrom(other *TestCase) {
	tc.statements = other.Clone().statements
}

// Clone returns a deep copy of the test case.
func (tc *TestCase) Clone() *TestCase {
	c := &TestCase{statements: make([]*Statement, len(tc.statements))}
	for i, s := range tc.statements {
		c.statements[i] = s.Clone()
	}
	return c
}
