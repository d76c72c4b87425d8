package domain

import (
	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

// ModificationEngine swaps the call bound to an existing statement for a
// different compatible one, keeping the return variable identity intact
// so later references stay valid.
type ModificationEngine struct {
	catalog adapter.Catalog
	tracker *ConstraintTracker
	rng     *randx.Rand
}

func NewModificationEngine(catalog adapter.Catalog, tracker *ConstraintTracker, rng *randx.Rand) *ModificationEngine {
	return &ModificationEngine{catalog: catalog, tracker: tracker, rng: rng}
}

// ChangeRandomCall replaces the statement at pos with a randomly chosen
// compatible call. Returns false when no alternative exists or its
// dependencies cannot be satisfied from the visible variables.
func (e *ModificationEngine) ChangeRandomCall(tc *m.TestCase, pos int) bool {
	if pos < 0 || pos >= tc.Size() {
		return false
	}
	s := tc.Statement(pos)
	objects := e.eligibleObjects(tc, pos)

	_, retvalBounded := e.tracker.BoundedUntil(tc, pos)
	calls := e.possibleCalls(s, objects, retvalBounded)
	if len(calls) == 0 {
		return false
	}
	return e.changeCall(tc, pos, randx.Choice(e.rng, calls), objects)
}

// eligibleObjects returns the variables usable as callee or parameters of
// a replacement call at pos. Mock-backed values are never rebound into a
// new call, nor are variables whose bound window still reaches pos; a
// window that closed earlier no longer restricts them.
func (e *ModificationEngine) eligibleObjects(tc *m.TestCase, pos int) []m.Variable {
	var out []m.Variable
	for _, v := range tc.VariablesBefore(pos) {
		if v.IsVoid || v.FromMock {
			continue
		}
		if b, bounded := e.tracker.BoundedUntil(tc, v.Position); bounded && b >= pos {
			continue
		}
		out = append(out, v)
	}
	return out
}

// possibleCalls collects the candidate replacement calls: same return
// type, dependencies satisfiable from objects. A bounded return variable
// restricts candidates to constructors, and a parameterized call never
// proposes itself.
func (e *ModificationEngine) possibleCalls(s *m.Statement, objects []m.Variable, retvalBounded bool) []*m.Executable {
	var out []*m.Executable
	for _, c := range e.catalog.GeneratorsFor(s.Return.Name) {
		inst, err := c.Instantiate(s.Return)
		if err != nil || inst.Return.Name != s.Return.Name {
			continue
		}
		if retvalBounded && !inst.IsConstructor() {
			continue
		}
		if s.Call != nil && inst.Key() == s.Call.Key() && s.Call.NumParameters() > 0 {
			continue
		}
		if !e.satisfiable(inst, objects) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

func (e *ModificationEngine) satisfiable(c *m.Executable, objects []m.Variable) bool {
	if !c.IsConstructor() && !c.Static {
		if len(e.callees(c, objects)) == 0 {
			return false
		}
	}
	for _, pt := range c.Params {
		if len(e.assignable(pt, objects)) == 0 {
			return false
		}
	}
	return true
}

// changeCall rebinds the statement at pos to call, drawing the callee and
// parameters from the visible variables. The statement keeps its position
// and return identity.
func (e *ModificationEngine) changeCall(tc *m.TestCase, pos int, call *m.Executable, objects []m.Variable) bool {
	callee := m.NoVar
	if !call.IsConstructor() && !call.Static {
		fits := e.callees(call, objects)
		if len(fits) == 0 {
			return false
		}
		callee = randx.Choice(e.rng, fits).Position
	}
	args := make([]int, 0, len(call.Params))
	for _, pt := range call.Params {
		fits := e.assignable(pt, objects)
		if len(fits) == 0 {
			return false
		}
		args = append(args, randx.Choice(e.rng, fits).Position)
	}
	tc.SetStatement(m.NewCallStatement(call, callee, args), pos)
	return true
}

func (e *ModificationEngine) callees(c *m.Executable, objects []m.Variable) []m.Variable {
	var out []m.Variable
	for _, v := range objects {
		if v.IsNull || v.FromPrimitive {
			continue
		}
		if e.catalog.AssignableTo(v.Type.Name, c.Owner) {
			out = append(out, v)
		}
	}
	return out
}

func (e *ModificationEngine) assignable(t m.Type, objects []m.Variable) []m.Variable {
	var out []m.Variable
	for _, v := range objects {
		if e.catalog.AssignableTo(v.Type.Name, t.Name) {
			out = append(out, v)
		}
	}
	return out
}
