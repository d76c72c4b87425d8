package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

func newFixtureModification(t *testing.T) *ModificationEngine {
	t.Helper()
	return NewModificationEngine(newStackCatalog(t), NewConstraintTracker(), randx.New(11))
}

func TestChangeRandomCallPreservesReturnIdentity(t *testing.T) {
	engine := newFixtureModification(t)
	tc := m.NewTestCase()
	tc.Append(m.NewCallStatement(stackCtor, m.NoVar, nil))
	tc.Append(m.NewCallStatement(stackPop, 0, nil))
	tc.Append(m.NewCallStatement(stackPush, 0, []int{1}))
	require.NoError(t, tc.Verify())

	ok := engine.ChangeRandomCall(tc, 1)

	assert.True(t, ok)
	changed := tc.Statement(1)
	assert.Equal(t, intType.Name, changed.Return.Name, "return type must survive the swap")
	assert.Equal(t, []int{1}, tc.Statement(2).Args, "later references must stay valid")
	assert.NoError(t, tc.Verify())
}

func TestChangeRandomCallFailsWithoutSatisfiableCallee(t *testing.T) {
	engine := newFixtureModification(t)
	tc := m.NewTestCase()
	tc.Append(m.NewPrimitiveStatement(intType, "7"))

	// Every int-returning call needs a Stack callee, and none is visible
	// before position 0.
	ok := engine.ChangeRandomCall(tc, 0)

	assert.False(t, ok)
	assert.Equal(t, m.StmtPrimitive, tc.Statement(0).Kind)
}

func TestChangeRandomCallBoundedReturnAllowsOnlyConstructors(t *testing.T) {
	engine := newFixtureModification(t)

	for trial := 0; trial < 25; trial++ {
		tc := m.NewTestCase()
		tc.Append(m.NewCallStatement(resourceCtor, m.NoVar, nil))
		tc.Append(m.NewPrimitiveStatement(intType, "1"))
		tc.Append(m.NewCallStatement(resourceCtor, m.NoVar, nil))
		tc.Append(m.NewCallStatement(resourceConfigure, 2, []int{1}))
		require.NoError(t, tc.Verify())

		ok := engine.ChangeRandomCall(tc, 2)

		require.True(t, ok)
		assert.True(t, tc.Statement(2).Call.IsConstructor(),
			"trial %d replaced a bounded return value with a non-constructor", trial)
		require.NoError(t, tc.Verify())
	}
}

func TestEligibleObjectsHonorExpiredBoundWindows(t *testing.T) {
	engine := newFixtureModification(t)
	tc := boundedResourceTest(t) // resource at 0 bounded through 2
	tc.Append(m.NewCallStatement(resourceCtor, m.NoVar, nil))

	positionsAt := func(pos int) []int {
		var out []int
		for _, v := range engine.eligibleObjects(tc, pos) {
			out = append(out, v.Position)
		}
		return out
	}

	assert.NotContains(t, positionsAt(2), 0, "the window still reaches position 2")
	assert.Contains(t, positionsAt(3), 0, "a closed window no longer restricts the resource")
}

func TestChangeRandomCallExcludesParameterizedSelf(t *testing.T) {
	catalog, err := newStackCatalogOnly(t, stackCtor, stackPush)
	require.NoError(t, err)
	engine := NewModificationEngine(catalog, NewConstraintTracker(), randx.New(5))

	tc := m.NewTestCase()
	tc.Append(m.NewPrimitiveStatement(intType, "7"))
	tc.Append(m.NewCallStatement(stackCtor, m.NoVar, nil))
	tc.Append(m.NewCallStatement(stackPush, 1, []int{0}))

	// push is the only void-returning call, and a parameterized call may
	// not propose itself.
	ok := engine.ChangeRandomCall(tc, 2)

	assert.False(t, ok)
	assert.Equal(t, stackPush.Key(), tc.Statement(2).Call.Key())
}
