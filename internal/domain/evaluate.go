package domain

import (
	"context"

	"golang.org/x/sync/errgroup"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// Evaluator scores whole populations. Individuals are independent, so
// they are evaluated in parallel; each chromosome's cached result and
// changed flag are private to it and need no locking. Penalty
// bookkeeping touches shared goal state and runs serially afterwards.
type Evaluator struct {
	funcs   []FitnessFunction
	threads int
}

func NewEvaluator(funcs []FitnessFunction, threads int) *Evaluator {
	return &Evaluator{funcs: funcs, threads: threads}
}

// EvaluateAll evaluates every individual against every active goal.
// Goals whose failure penalty has reached the threshold are skipped
// until the penalty is reset.
func (e *Evaluator) EvaluateAll(ctx context.Context, population []*m.TestChromosome) error {
	g, ctx := errgroup.WithContext(ctx)
	if e.threads > 0 {
		g.SetLimit(e.threads)
	}
	for _, c := range population {
		c := c
		g.Go(func() error {
			for _, f := range e.funcs {
				if f.Goal().FailurePenaltyReached() {
					continue
				}
				if _, err := f.Fitness(ctx, c); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	e.applyPenalties(population)
	return nil
}

// applyPenalties increases the failure penalty of every goal whose
// target executable raised an exception in some individual's run.
func (e *Evaluator) applyPenalties(population []*m.TestChromosome) {
	byKey := make(map[string]*m.Goal, len(e.funcs))
	for _, f := range e.funcs {
		byKey[f.Goal().Key()] = f.Goal()
	}
	for _, c := range population {
		r := c.LastExecutionResult()
		if r == nil {
			continue
		}
		for pos := range r.Exceptions {
			if pos < 0 || pos >= c.Test.Size() {
				continue
			}
			call := c.Test.Statement(pos).Call
			if call == nil {
				continue
			}
			if goal, ok := byKey[call.Key()]; ok {
				goal.IncreaseFailurePenalty()
			}
		}
	}
}
