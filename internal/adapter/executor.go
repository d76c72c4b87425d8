package adapter

import (
	"context"
	"fmt"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// Executor runs a test case and reports what happened. The core treats a
// run as a pure function of the test case's current statements, so results
// are cached per individual and re-execution only happens after a
// mutation. Time-bounded cancellation of runaway calls is the executor's
// concern; an aborted result is valid input for fitness computation.
type Executor interface {
	Run(ctx context.Context, tc *m.TestCase) (*m.ExecutionResult, error)
}

// SimExecutor is a local executor that derives a deterministic trace from
// the statement sequence: every call statement marks its executable as
// covered, null callees raise, and execution stops at the first exception.
// It exercises the fitness framework without a sandboxed runtime.
type SimExecutor struct{}

// NewSimExecutor returns a simulating executor.
func NewSimExecutor() *SimExecutor {
	return &SimExecutor{}
}

// Run implements Executor.
func (e *SimExecutor) Run(ctx context.Context, tc *m.TestCase) (*m.ExecutionResult, error) {
	if err := ctx.Err(); err != nil {
		return &m.ExecutionResult{Aborted: true}, nil
	}

	result := &m.ExecutionResult{
		CoveredMethods: make(map[string]bool),
		Exceptions:     make(map[int]string),
	}

	for pos := 0; pos < tc.Size(); pos++ {
		s := tc.Statement(pos)
		switch s.Kind {
		case m.StmtFieldAccess, m.StmtConstructorCall, m.StmtMethodCall:
			if s.Callee != m.NoVar && tc.Statement(s.Callee).Kind == m.StmtNull {
				result.Exceptions[pos] = "NullPointerException"
				return result, nil
			}
			result.CoveredMethods[s.Call.Key()] = true
		case m.StmtAssignment:
			if s.TargetIndex != m.NoVar && s.TargetIndex >= tc.Statement(s.Target).ArrayLen {
				result.Exceptions[pos] = "ArrayIndexOutOfBoundsException"
				return result, nil
			}
			if s.SourceIndex != m.NoVar && s.SourceIndex >= tc.Statement(s.Source).ArrayLen {
				result.Exceptions[pos] = "ArrayIndexOutOfBoundsException"
				return result, nil
			}
		case m.StmtPrimitive, m.StmtNull, m.StmtArrayCreation:
			// no observable effect
		default:
			return nil, fmt.Errorf("unhandled statement kind %d at position %d", s.Kind, pos)
		}
	}
	return result, nil
}
