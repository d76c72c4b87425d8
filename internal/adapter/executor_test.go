package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

var (
	simIntType   = m.Type{Name: "int", Kind: m.KindPrimitive}
	simStackType = m.Type{Name: "Stack", Kind: m.KindObject}
	simArrayType = m.Type{Name: "int[]", Kind: m.KindArray, Elem: "int"}

	simCtor = &m.Executable{Owner: "Stack", Name: "<init>()V", Kind: m.ExecConstructor, Return: simStackType}
	simPush = &m.Executable{Owner: "Stack", Name: "push(I)V", Kind: m.ExecMethod, Params: []m.Type{simIntType}, Return: m.Void}
)

func TestSimExecutorCoversCalls(t *testing.T) {
	tc := m.NewTestCase()
	tc.Append(m.NewPrimitiveStatement(simIntType, "1"))
	tc.Append(m.NewCallStatement(simCtor, m.NoVar, nil))
	tc.Append(m.NewCallStatement(simPush, 1, []int{0}))
	require.NoError(t, tc.Verify())

	result, err := NewSimExecutor().Run(context.Background(), tc)

	require.NoError(t, err)
	assert.True(t, result.Covers("Stack.<init>()V"))
	assert.True(t, result.Covers("Stack.push(I)V"))
	assert.Empty(t, result.Exceptions)
	assert.False(t, result.Aborted)
}

func TestSimExecutorRaisesOnNullCallee(t *testing.T) {
	tc := m.NewTestCase()
	tc.Append(m.NewPrimitiveStatement(simIntType, "1"))
	tc.Append(m.NewNullStatement(simStackType))
	tc.Append(m.NewCallStatement(simPush, 1, []int{0}))
	tc.Append(m.NewCallStatement(simCtor, m.NoVar, nil))

	result, err := NewSimExecutor().Run(context.Background(), tc)

	require.NoError(t, err)
	assert.Equal(t, "NullPointerException", result.Exceptions[2])
	assert.False(t, result.Covers("Stack.<init>()V"), "execution stops at the first exception")
}

func TestSimExecutorRaisesOnOutOfBoundsIndex(t *testing.T) {
	tc := m.NewTestCase()
	tc.Append(m.NewArrayStatement(simArrayType, 2))
	tc.Append(m.NewPrimitiveStatement(simIntType, "7"))
	tc.Append(m.NewAssignmentStatement(0, 5, 1, m.NoVar, simIntType))

	result, err := NewSimExecutor().Run(context.Background(), tc)

	require.NoError(t, err)
	assert.Equal(t, "ArrayIndexOutOfBoundsException", result.Exceptions[2])
}

func TestSimExecutorAbortsOnCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := NewSimExecutor().Run(ctx, m.NewTestCase())

	require.NoError(t, err)
	assert.True(t, result.Aborted)
}
