package domain

import (
	"fmt"
	"strconv"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

// reuseProbability is the chance of satisfying a dependency with an
// existing visible variable instead of constructing a fresh one.
const reuseProbability = 0.5

// defaultArrayLength bounds freshly created arrays.
const defaultArrayLength = 10

// factory builds statements and their transitive dependencies. It is the
// construction backend shared by the insertion and modification engines.
type factory struct {
	catalog  adapter.Catalog
	rng      *randx.Rand
	maxDepth int
}

func newFactory(catalog adapter.Catalog, rng *randx.Rand, maxDepth int) *factory {
	return &factory{catalog: catalog, rng: rng, maxDepth: maxDepth}
}

// insertCallAt inserts a statement invoking call at pos, constructing or
// reusing its callee and parameters as needed. Returns the position of the
// inserted call statement and the next free insertion position.
func (f *factory) insertCallAt(tc *m.TestCase, call *m.Executable, pos, depth int) (int, int, error) {
	if depth > f.maxDepth {
		return 0, 0, fmt.Errorf("%w: recursion depth %d exceeded for %s", ErrConstructionFailed, f.maxDepth, call.Key())
	}

	callee := m.NoVar
	cur := pos
	if !call.IsConstructor() && !call.Static {
		v, next, err := f.createOrReuse(tc, f.ownerType(call.Owner), cur, depth+1)
		if err != nil {
			return 0, 0, err
		}
		callee = v
		cur = next
	}
	return f.insertCallOn(tc, call, callee, cur, depth)
}

// insertCallOn inserts a statement invoking call on a fixed callee at pos,
// constructing or reusing only the parameters.
func (f *factory) insertCallOn(tc *m.TestCase, call *m.Executable, callee, pos, depth int) (int, int, error) {
	if depth > f.maxDepth {
		return 0, 0, fmt.Errorf("%w: recursion depth %d exceeded for %s", ErrConstructionFailed, f.maxDepth, call.Key())
	}

	cur := pos
	args := make([]int, 0, len(call.Params))
	for _, pt := range call.Params {
		v, next, err := f.createOrReuse(tc, pt, cur, depth+1)
		if err != nil {
			return 0, 0, err
		}
		args = append(args, v)
		cur = next
	}
	tc.Insert(m.NewCallStatement(call, callee, args), cur)
	return cur, cur + 1, nil
}

// createOrReuse satisfies a dependency of the given type at pos: either an
// existing visible variable or a freshly constructed object. Returns the
// variable's producing position and the next free insertion position.
func (f *factory) createOrReuse(tc *m.TestCase, t m.Type, pos, depth int) (int, int, error) {
	if depth > f.maxDepth {
		return 0, 0, fmt.Errorf("%w: recursion depth %d exceeded for type %s", ErrConstructionFailed, f.maxDepth, t.Name)
	}

	reusable := f.reusableVariables(tc, t, pos)
	if len(reusable) > 0 && f.rng.Float64() < reuseProbability {
		return randx.Choice(f.rng, reusable).Position, pos, nil
	}

	created, next, err := f.createObject(tc, t, pos, depth)
	if err == nil {
		return created, next, nil
	}
	if len(reusable) > 0 {
		return randx.Choice(f.rng, reusable).Position, pos, nil
	}
	return 0, 0, err
}

// createObject constructs a fresh value of the given type at pos.
func (f *factory) createObject(tc *m.TestCase, t m.Type, pos, depth int) (int, int, error) {
	switch {
	case t.IsVoid():
		return 0, 0, fmt.Errorf("%w: cannot construct a void value", ErrConstructionFailed)
	case t.IsPrimitive() || t.IsWrapper():
		tc.Insert(m.NewPrimitiveStatement(t, f.randomLiteral(t)), pos)
		return pos, pos + 1, nil
	case t.IsArray():
		tc.Insert(m.NewArrayStatement(t, f.rng.IntRange(1, defaultArrayLength+1)), pos)
		return pos, pos + 1, nil
	}

	generators := f.generatorsFor(t)
	if len(generators) == 0 {
		// No known way to build the object; fall back to a typed null.
		tc.Insert(m.NewNullStatement(t), pos)
		return pos, pos + 1, nil
	}
	gen := randx.Choice(f.rng, generators)
	return f.insertCallAt(tc, gen, pos, depth+1)
}

// generatorsFor resolves and instantiates the catalog generators able to
// produce the given type.
func (f *factory) generatorsFor(t m.Type) []*m.Executable {
	var out []*m.Executable
	for _, gen := range f.catalog.GeneratorsFor(t.Name) {
		inst, err := gen.Instantiate(t)
		if err != nil {
			continue
		}
		if inst.Return.Name != t.Name {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// reusableVariables returns the visible variables at pos usable for a slot
// of the given type.
func (f *factory) reusableVariables(tc *m.TestCase, t m.Type, pos int) []m.Variable {
	var out []m.Variable
	for _, v := range tc.VariablesBefore(pos) {
		if v.IsVoid || v.IsNull {
			continue
		}
		if f.catalog.AssignableTo(v.Type.Name, t.Name) {
			out = append(out, v)
		}
	}
	return out
}

func (f *factory) ownerType(name m.TypeName) m.Type {
	if t, ok := f.catalog.TypeByName(name); ok {
		return t
	}
	return m.Type{Name: name, Kind: m.KindObject}
}

func (f *factory) randomLiteral(t m.Type) string {
	switch t.Name {
	case "boolean", "Boolean":
		if f.rng.Float64() < 0.5 {
			return "true"
		}
		return "false"
	case "double", "Double":
		return strconv.FormatFloat(float64(f.rng.IntRange(-100, 101)), 'f', 1, 64)
	default:
		return strconv.Itoa(f.rng.IntRange(-100, 101))
	}
}
