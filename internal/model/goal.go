package model

import (
	"fmt"
)

// PenaltyPolicy configures failure-penalty bookkeeping for goals.
type PenaltyPolicy struct {
	Enabled   bool
	Threshold int
}

// Goal identifies one coverage target: a method (or constructor) of the
// target class. Identity is immutable after construction; only the failure
// penalty counter changes over a goal's lifetime. Goals are created once
// per coverage target at the start of a search session and never destroyed
// mid-session.
type Goal struct {
	className  string
	methodName string // name + descriptor
	complexity int
	penalty    int
	policy     PenaltyPolicy
}

// NewGoal builds a goal for the given class and method name + descriptor.
// The cyclomatic complexity comes from the external control-flow-graph
// oracle and must be >= 1; a smaller value indicates a bug in an upstream
// collaborator, as does a malformed descriptor, which catalog construction
// should have rejected.
func NewGoal(className, methodName string, complexity int, policy PenaltyPolicy) (*Goal, error) {
	if className == "" {
		return nil, fmt.Errorf("goal class name cannot be empty")
	}
	if !ValidDescriptor(methodName) {
		return nil, fmt.Errorf("malformed method name or descriptor %q", methodName)
	}
	if complexity < 1 {
		return nil, fmt.Errorf("cyclomatic complexity of %s.%s must be positive, got %d", className, methodName, complexity)
	}
	return &Goal{
		className:  className,
		methodName: methodName,
		complexity: complexity,
		penalty:    -complexity,
		policy:     policy,
	}, nil
}

// ClassName returns the fully qualified name of the target class.
func (g *Goal) ClassName() string { return g.className }

// MethodName returns the target method name + descriptor.
func (g *Goal) MethodName() string { return g.methodName }

// Key identifies the goal across chromosomes and caches.
func (g *Goal) Key() string { return g.className + "." + g.methodName }

// CyclomaticComplexity returns the complexity of the target executable.
func (g *Goal) CyclomaticComplexity() int { return g.complexity }

// FailurePenalty returns the current penalty counter.
func (g *Goal) FailurePenalty() int { return g.penalty }

// IncreaseFailurePenalty bumps the penalty after an observed execution
// failure. No-op when penalties are disabled.
func (g *Goal) IncreaseFailurePenalty() {
	if g.policy.Enabled {
		g.penalty++
	}
}

// ResetFailurePenalty restores the penalty to its default of minus the
// complexity. No-op when penalties are disabled.
func (g *Goal) ResetFailurePenalty() {
	if g.policy.Enabled {
		g.penalty = -g.complexity
	}
}

// FailurePenaltyReached reports whether the penalty exceeded the configured
// threshold, in which case the outer search should deprioritize this goal.
func (g *Goal) FailurePenaltyReached() bool {
	return g.penalty > g.policy.Threshold
}
