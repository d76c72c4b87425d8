// Package adapter defines the narrow collaborator contracts the search
// core consumes (executable catalog, executor, complexity oracle) plus
// local implementations of each.
package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// Catalog exposes the callable surface of the unit under test and its
// environment. It is populated once at session start by a loader and then
// only read; components receive it by reference, never through globals.
type Catalog interface {
	// TargetClass is the declared class under test.
	TargetClass() m.TypeName
	// TestCalls returns the callable executables of the unit under test.
	TestCalls() []*m.Executable
	// EnvironmentCalls returns the callable executables of external
	// resources (files, sockets).
	EnvironmentCalls() []*m.Executable
	// GeneratorsFor returns the executables able to produce a value of
	// the given type.
	GeneratorsFor(t m.TypeName) []*m.Executable
	// CallsOn returns the non-constructor executables invocable on a
	// value of the given type.
	CallsOn(t m.TypeName) []*m.Executable
	// AssignableTo reports whether a value of type from can stand in for
	// a slot of type to.
	AssignableTo(from, to m.TypeName) bool
	// TypeByName resolves a declared type descriptor.
	TypeByName(name m.TypeName) (m.Type, bool)
}

// StaticCatalog is an in-memory catalog built by a loader at session start.
type StaticCatalog struct {
	target      m.TypeName
	types       map[m.TypeName]m.Type
	supertypes  map[m.TypeName][]m.TypeName
	executables []*m.Executable
}

// NewStaticCatalog builds a catalog from declared types, a supertype
// relation and the executable set. Malformed method descriptors are
// rejected here so they never reach the engines.
func NewStaticCatalog(target m.TypeName, types []m.Type, supertypes map[m.TypeName][]m.TypeName, executables []*m.Executable) (*StaticCatalog, error) {
	c := &StaticCatalog{
		target:      target,
		types:       make(map[m.TypeName]m.Type, len(types)),
		supertypes:  supertypes,
		executables: executables,
	}
	for _, t := range types {
		c.types[t.Name] = t
	}
	if _, ok := c.types[target]; !ok {
		return nil, fmt.Errorf("target class %s is not a declared type", target)
	}
	for _, e := range executables {
		if e.IsField() {
			continue
		}
		if !m.ValidDescriptor(e.Name) {
			return nil, fmt.Errorf("malformed descriptor %q on %s", e.Name, e.Owner)
		}
	}
	return c, nil
}

// TargetClass implements Catalog.
func (c *StaticCatalog) TargetClass() m.TypeName { return c.target }

// TestCalls implements Catalog.
func (c *StaticCatalog) TestCalls() []*m.Executable {
	var calls []*m.Executable
	for _, e := range c.executables {
		if e.Owner == c.target && !e.Environment && !e.AssertionOnly {
			calls = append(calls, e)
		}
	}
	return calls
}

// EnvironmentCalls implements Catalog.
func (c *StaticCatalog) EnvironmentCalls() []*m.Executable {
	var calls []*m.Executable
	for _, e := range c.executables {
		if e.Environment {
			calls = append(calls, e)
		}
	}
	return calls
}

// GeneratorsFor implements Catalog.
func (c *StaticCatalog) GeneratorsFor(t m.TypeName) []*m.Executable {
	var gens []*m.Executable
	for _, e := range c.executables {
		if e.AssertionOnly {
			continue
		}
		if e.Return.Name == t || (e.Generic && !e.Return.IsVoid()) {
			gens = append(gens, e)
		}
	}
	return gens
}

// CallsOn implements Catalog.
func (c *StaticCatalog) CallsOn(t m.TypeName) []*m.Executable {
	var calls []*m.Executable
	for _, e := range c.executables {
		if e.IsConstructor() || e.Static || e.AssertionOnly {
			continue
		}
		if c.AssignableTo(t, e.Owner) {
			calls = append(calls, e)
		}
	}
	return calls
}

// AssignableTo implements Catalog. A type is assignable to itself, to the
// root object type, and to any transitive supertype.
func (c *StaticCatalog) AssignableTo(from, to m.TypeName) bool {
	if from == to || to == m.TypeObject {
		return true
	}
	seen := map[m.TypeName]bool{from: true}
	queue := append([]m.TypeName(nil), c.supertypes[from]...)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == to {
			return true
		}
		if seen[next] {
			continue
		}
		seen[next] = true
		queue = append(queue, c.supertypes[next]...)
	}
	return false
}

// TypeByName implements Catalog.
func (c *StaticCatalog) TypeByName(name m.TypeName) (m.Type, bool) {
	t, ok := c.types[name]
	return t, ok
}

// catalogFile is the on-disk YAML shape of a catalog description.
type catalogFile struct {
	Target      string              `yaml:"target"`
	Types       []typeSpec          `yaml:"types"`
	Supertypes  map[string][]string `yaml:"supertypes"`
	Executables []execSpec          `yaml:"executables"`
}

type typeSpec struct {
	Name string `yaml:"name"`
	Kind string `yaml:"kind"` // object|primitive|wrapper|array|void
	Elem string `yaml:"elem,omitempty"`
}

type execSpec struct {
	Owner         string   `yaml:"owner"`
	Name          string   `yaml:"name"`
	Kind          string   `yaml:"kind"` // method|constructor|field
	Static        bool     `yaml:"static,omitempty"`
	Final         bool     `yaml:"final,omitempty"`
	Params        []string `yaml:"params,omitempty"`
	Returns       string   `yaml:"returns"`
	Complexity    int      `yaml:"complexity,omitempty"`
	Environment   bool     `yaml:"environment,omitempty"`
	BoundsCallee  bool     `yaml:"bounds_callee,omitempty"`
	PairedWith    string   `yaml:"paired_with,omitempty"`
	AssertionOnly bool     `yaml:"assertion_only,omitempty"`
	Mock          bool     `yaml:"mock,omitempty"`
	Distance      int      `yaml:"distance,omitempty"`
	Generic       bool     `yaml:"generic,omitempty"`
}

// builtinTypes are always available without declaration.
var builtinTypes = []m.Type{
	{Name: "void", Kind: m.KindVoid},
	{Name: "int", Kind: m.KindPrimitive},
	{Name: "long", Kind: m.KindPrimitive},
	{Name: "double", Kind: m.KindPrimitive},
	{Name: "boolean", Kind: m.KindPrimitive},
	{Name: "Integer", Kind: m.KindWrapper},
	{Name: "Long", Kind: m.KindWrapper},
	{Name: "Double", Kind: m.KindWrapper},
	{Name: "Boolean", Kind: m.KindWrapper},
	{Name: "String", Kind: m.KindObject},
	{Name: m.TypeObject, Kind: m.KindObject},
}

// LoadCatalog reads a YAML catalog description and builds the catalog plus
// the complexity table backing the static oracle.
func LoadCatalog(path string) (*StaticCatalog, *StaticOracle, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read catalog: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}

	types := append([]m.Type(nil), builtinTypes...)
	index := make(map[m.TypeName]m.Type, len(types))
	for _, t := range types {
		index[t.Name] = t
	}
	for _, ts := range file.Types {
		t, err := parseType(ts)
		if err != nil {
			return nil, nil, err
		}
		types = append(types, t)
		index[t.Name] = t
	}

	resolve := func(name string) (m.Type, error) {
		if t, ok := index[m.TypeName(name)]; ok {
			return t, nil
		}
		return m.Type{}, fmt.Errorf("catalog references undeclared type %q", name)
	}

	executables := make([]*m.Executable, 0, len(file.Executables))
	complexities := make(map[string]int)
	for _, es := range file.Executables {
		e, err := parseExecutable(es, resolve)
		if err != nil {
			return nil, nil, err
		}
		executables = append(executables, e)
		if es.Complexity > 0 {
			complexities[e.Key()] = es.Complexity
		}
	}

	supertypes := make(map[m.TypeName][]m.TypeName, len(file.Supertypes))
	for name, supers := range file.Supertypes {
		for _, s := range supers {
			supertypes[m.TypeName(name)] = append(supertypes[m.TypeName(name)], m.TypeName(s))
		}
	}

	catalog, err := NewStaticCatalog(m.TypeName(file.Target), types, supertypes, executables)
	if err != nil {
		return nil, nil, err
	}
	return catalog, NewStaticOracle(complexities), nil
}

func parseType(ts typeSpec) (m.Type, error) {
	kinds := map[string]m.TypeKind{
		"object":    m.KindObject,
		"primitive": m.KindPrimitive,
		"wrapper":   m.KindWrapper,
		"array":     m.KindArray,
		"void":      m.KindVoid,
	}
	kind, ok := kinds[ts.Kind]
	if !ok {
		return m.Type{}, fmt.Errorf("type %q has unknown kind %q", ts.Name, ts.Kind)
	}
	if kind == m.KindArray && ts.Elem == "" {
		return m.Type{}, fmt.Errorf("array type %q needs an element type", ts.Name)
	}
	return m.Type{Name: m.TypeName(ts.Name), Kind: kind, Elem: m.TypeName(ts.Elem)}, nil
}

func parseExecutable(es execSpec, resolve func(string) (m.Type, error)) (*m.Executable, error) {
	kinds := map[string]m.ExecKind{
		"method":      m.ExecMethod,
		"constructor": m.ExecConstructor,
		"field":       m.ExecField,
	}
	kind, ok := kinds[es.Kind]
	if !ok {
		return nil, fmt.Errorf("executable %q has unknown kind %q", es.Name, es.Kind)
	}

	ret, err := resolve(es.Returns)
	if err != nil {
		return nil, fmt.Errorf("executable %s: %w", es.Name, err)
	}
	params := make([]m.Type, 0, len(es.Params))
	for _, p := range es.Params {
		pt, err := resolve(p)
		if err != nil {
			return nil, fmt.Errorf("executable %s: %w", es.Name, err)
		}
		params = append(params, pt)
	}

	return &m.Executable{
		Owner:         m.TypeName(es.Owner),
		Name:          es.Name,
		Kind:          kind,
		Static:        es.Static,
		Final:         es.Final,
		Params:        params,
		Return:        ret,
		Environment:   es.Environment,
		BoundsCallee:  es.BoundsCallee,
		PairedWith:    es.PairedWith,
		AssertionOnly: es.AssertionOnly,
		Mock:          es.Mock,
		Distance:      es.Distance,
		Generic:       es.Generic,
	}, nil
}
