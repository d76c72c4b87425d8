package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

var (
	voidType     = m.Void
	intType      = m.Type{Name: "int", Kind: m.KindPrimitive}
	stackType    = m.Type{Name: "Stack", Kind: m.KindObject}
	resourceType = m.Type{Name: "Resource", Kind: m.KindObject}
	arrayType    = m.Type{Name: "int[]", Kind: m.KindArray, Elem: "int"}
)

var (
	stackCtor = &m.Executable{Owner: "Stack", Name: "<init>()V", Kind: m.ExecConstructor, Return: stackType}
	stackPush = &m.Executable{Owner: "Stack", Name: "push(I)V", Kind: m.ExecMethod, Params: []m.Type{intType}, Return: voidType}
	stackPop  = &m.Executable{Owner: "Stack", Name: "pop()I", Kind: m.ExecMethod, Return: intType}
	stackSize = &m.Executable{Owner: "Stack", Name: "size()I", Kind: m.ExecMethod, Return: intType}

	resourceCtor      = &m.Executable{Owner: "Resource", Name: "<init>()V", Kind: m.ExecConstructor, Return: resourceType, Distance: 2}
	resourceConfigure = &m.Executable{Owner: "Resource", Name: "configure(I)V", Kind: m.ExecMethod, Params: []m.Type{intType}, Return: voidType, BoundsCallee: true}
	resourceOpen      = &m.Executable{Owner: "Resource", Name: "open()V", Kind: m.ExecMethod, Return: voidType, PairedWith: "close()V"}
	resourceClose     = &m.Executable{Owner: "Resource", Name: "close()V", Kind: m.ExecMethod, Return: voidType, PairedWith: "open()V"}
	resourcePing      = &m.Executable{Owner: "Resource", Name: "ping()V", Kind: m.ExecMethod, Return: voidType, Environment: true}
	resourceSelf      = &m.Executable{Owner: "Resource", Name: "self()LResource;", Kind: m.ExecMethod, Return: resourceType}
)

func fixtureTypes() []m.Type {
	return []m.Type{
		voidType, intType, stackType, resourceType, arrayType,
		{Name: "boolean", Kind: m.KindPrimitive},
		{Name: m.TypeObject, Kind: m.KindObject},
	}
}

// newStackCatalog covers the full fixture surface: the Stack target plus
// the Resource environment with bounded and paired calls.
func newStackCatalog(t *testing.T) *adapter.StaticCatalog {
	t.Helper()
	catalog, err := adapter.NewStaticCatalog("Stack", fixtureTypes(), nil, []*m.Executable{
		stackCtor, stackPush, stackPop, stackSize,
		resourceCtor, resourceConfigure, resourceOpen, resourceClose, resourcePing, resourceSelf,
	})
	require.NoError(t, err)
	return catalog
}

// newStackCatalogOnly restricts the callable surface to the given
// executables.
func newStackCatalogOnly(t *testing.T, execs ...*m.Executable) (*adapter.StaticCatalog, error) {
	t.Helper()
	return adapter.NewStaticCatalog("Stack", fixtureTypes(), nil, execs)
}

// newEmptyCatalog declares the types but no callable executables.
func newEmptyCatalog(t *testing.T) *adapter.StaticCatalog {
	t.Helper()
	catalog, err := adapter.NewStaticCatalog("Stack", fixtureTypes(), nil, nil)
	require.NoError(t, err)
	return catalog
}

// newCtorOnlyCatalog has a single parameterless constructor as the whole
// callable surface of the target.
func newCtorOnlyCatalog(t *testing.T) *adapter.StaticCatalog {
	t.Helper()
	catalog, err := adapter.NewStaticCatalog("Stack", fixtureTypes(), nil, []*m.Executable{stackCtor})
	require.NoError(t, err)
	return catalog
}

func newFixtureInsertion(t *testing.T, catalog adapter.Catalog, uut, env float64, sortObjects bool) *InsertionEngine {
	t.Helper()
	rng := randx.New(7)
	tracker := NewConstraintTracker()
	return NewInsertionEngine(catalog, tracker, newFactory(catalog, rng, 10), rng, uut, env, sortObjects)
}

// countingExecutor records how often it ran and replays a fixed result.
type countingExecutor struct {
	runs   int
	result *m.ExecutionResult
}

func (e *countingExecutor) Run(_ context.Context, _ *m.TestCase) (*m.ExecutionResult, error) {
	e.runs++
	return e.result, nil
}

func coveringResult(keys ...string) *m.ExecutionResult {
	covered := make(map[string]bool, len(keys))
	for _, k := range keys {
		covered[k] = true
	}
	return &m.ExecutionResult{CoveredMethods: covered, Exceptions: map[int]string{}}
}
