package model

// ExecutionResult is the outcome of running a test case. It is produced by
// the external executor and consumed, never mutated, by fitness functions.
// An aborted result (runaway call cut short by the executor) is valid
// input and simply yields non-zero fitness.
type ExecutionResult struct {
	// CoveredMethods holds the executable keys reached during execution.
	CoveredMethods map[string]bool
	// Exceptions maps statement positions to the exception raised there.
	// Execution stops at the first entry.
	Exceptions map[int]string
	// Aborted reports that execution was cut short by the executor's
	// time bound.
	Aborted bool
}

// Covers reports whether the given executable key was reached.
func (r *ExecutionResult) Covers(key string) bool {
	return r != nil && r.CoveredMethods[key]
}

// FirstException returns the earliest position that raised an exception,
// or -1 if execution was exception free.
func (r *ExecutionResult) FirstException() int {
	if r == nil || len(r.Exceptions) == 0 {
		return -1
	}
	first := -1
	for pos := range r.Exceptions {
		if first == -1 || pos < first {
			first = pos
		}
	}
	return first
}
