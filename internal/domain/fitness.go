package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
)

// FitnessFunction scores a single test chromosome against one coverage
// goal. Lower is better; exactly 0 means covered.
type FitnessFunction interface {
	Goal() *m.Goal
	// ID identifies this (kind, goal) pair for per-chromosome fitness
	// bookkeeping.
	ID() string
	// Fitness re-executes the chromosome only when its cached result is
	// absent or stale, then computes the goal distance and records it on
	// the chromosome.
	Fitness(ctx context.Context, c *m.TestChromosome) (float64, error)
	// FitnessFromResult computes the goal distance from an execution
	// result without touching any cache.
	FitnessFromResult(r *m.ExecutionResult) float64
	// IsCovered is monotonic: once a goal is recorded as covered on a
	// chromosome it stays covered without re-execution.
	IsCovered(ctx context.Context, c *m.TestChromosome) (bool, error)
	IsMaximization() bool
	KindName() string
}

// baseFitness carries the goal identity and the cached-execution logic
// shared by all goal kinds.
type baseFitness struct {
	goal *m.Goal
	exec adapter.Executor
	kind string
}

func (b *baseFitness) Goal() *m.Goal { return b.goal }

func (b *baseFitness) KindName() string { return b.kind }

func (b *baseFitness) ID() string { return b.kind + ":" + b.goal.Key() }

// Lower is better for every goal kind in this core.
func (b *baseFitness) IsMaximization() bool { return false }

// runCached returns the chromosome's execution result, re-executing only
// when the chromosome changed since the last run or was never run.
func (b *baseFitness) runCached(ctx context.Context, c *m.TestChromosome) (*m.ExecutionResult, error) {
	if !c.IsChanged() && c.LastExecutionResult() != nil {
		return c.LastExecutionResult(), nil
	}
	r, err := b.exec.Run(ctx, c.Test)
	if err != nil {
		return nil, fmt.Errorf("executing chromosome %s: %w", c.ID, err)
	}
	c.SetLastExecutionResult(r)
	c.SetChanged(false)
	return r, nil
}

// evaluate runs the shared fitness protocol: refresh the cache, compute
// the distance, record it on the chromosome and mark coverage at 0.
func (b *baseFitness) evaluate(ctx context.Context, c *m.TestChromosome, from func(*m.ExecutionResult) float64) (float64, error) {
	r, err := b.runCached(ctx, c)
	if err != nil {
		return 0, err
	}
	fitness := from(r)
	c.UpdateFitness(b.ID(), fitness)
	if fitness == 0 {
		c.RecordCoveredGoal(b.ID())
	}
	return fitness, nil
}

func (b *baseFitness) covered(ctx context.Context, c *m.TestChromosome, from func(*m.ExecutionResult) float64) (bool, error) {
	if c.IsGoalCovered(b.ID()) {
		return true, nil
	}
	fitness, err := b.evaluate(ctx, c, from)
	if err != nil {
		return false, err
	}
	return fitness == 0, nil
}

// MethodCoverageFitness measures the distance to invoking one target
// method: 0 when the method was reached, 0.5 when its class was reached
// through some other method, 1 otherwise.
type MethodCoverageFitness struct {
	baseFitness
}

func NewMethodCoverageFitness(goal *m.Goal, exec adapter.Executor) *MethodCoverageFitness {
	return &MethodCoverageFitness{baseFitness{goal: goal, exec: exec, kind: "MethodCoverageFitness"}}
}

func (f *MethodCoverageFitness) FitnessFromResult(r *m.ExecutionResult) float64 {
	if r == nil {
		return 1
	}
	if r.Covers(f.goal.Key()) {
		return 0
	}
	prefix := f.goal.ClassName() + "."
	for key := range r.CoveredMethods {
		if strings.HasPrefix(key, prefix) {
			return 0.5
		}
	}
	return 1
}

func (f *MethodCoverageFitness) Fitness(ctx context.Context, c *m.TestChromosome) (float64, error) {
	return f.evaluate(ctx, c, f.FitnessFromResult)
}

func (f *MethodCoverageFitness) IsCovered(ctx context.Context, c *m.TestChromosome) (bool, error) {
	return f.covered(ctx, c, f.FitnessFromResult)
}

// ExceptionFreeFitness measures how far a chromosome is from reaching the
// target method without raising any exception on the way.
type ExceptionFreeFitness struct {
	baseFitness
}

func NewExceptionFreeFitness(goal *m.Goal, exec adapter.Executor) *ExceptionFreeFitness {
	return &ExceptionFreeFitness{baseFitness{goal: goal, exec: exec, kind: "ExceptionFreeFitness"}}
}

func (f *ExceptionFreeFitness) FitnessFromResult(r *m.ExecutionResult) float64 {
	if r == nil || !r.Covers(f.goal.Key()) {
		return 1
	}
	n := float64(len(r.Exceptions))
	return n / (n + 1)
}

func (f *ExceptionFreeFitness) Fitness(ctx context.Context, c *m.TestChromosome) (float64, error) {
	return f.evaluate(ctx, c, f.FitnessFromResult)
}

func (f *ExceptionFreeFitness) IsCovered(ctx context.Context, c *m.TestChromosome) (bool, error) {
	return f.covered(ctx, c, f.FitnessFromResult)
}

// CompareFitness is the goal scheduling preorder: goals with a lower
// failure penalty come first, ties broken by kind name and then by goal
// key so the order is total and stable across runs.
func CompareFitness(a, b FitnessFunction) int {
	if d := a.Goal().FailurePenalty() - b.Goal().FailurePenalty(); d != 0 {
		return d
	}
	if d := strings.Compare(a.KindName(), b.KindName()); d != 0 {
		return d
	}
	return strings.Compare(a.Goal().Key(), b.Goal().Key())
}

// SuiteFitnessFunction scores a whole-suite chromosome.
type SuiteFitnessFunction interface {
	Fitness(ctx context.Context, s *m.SuiteChromosome) (float64, error)
	IsMaximization() bool
}

// MaskedFitness exposes a test-level fitness function under the suite
// chromosome type so heterogeneous representations can share one typed
// collection. Evaluating it directly is a programmer error.
type MaskedFitness struct {
	inner FitnessFunction
}

func NewMaskedFitness(inner FitnessFunction) *MaskedFitness {
	return &MaskedFitness{inner: inner}
}

func (f *MaskedFitness) Fitness(ctx context.Context, s *m.SuiteChromosome) (float64, error) {
	return 0, fmt.Errorf("%w: masked fitness function %s evaluated as a suite function", ErrInvariant, f.inner.KindName())
}

func (f *MaskedFitness) IsMaximization() bool { return f.inner.IsMaximization() }

// Unwrap returns the wrapped test-level fitness function.
func (f *MaskedFitness) Unwrap() FitnessFunction { return f.inner }
