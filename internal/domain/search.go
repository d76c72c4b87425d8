package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	m "github.com/Bachenbenno/evosuite/internal/model"
)

// SearchArgs parameterizes one generational run.
type SearchArgs struct {
	Population  int
	Generations int
	Elite       int
	Threads     int
	TestLength  int
}

func (a SearchArgs) validate() error {
	if a.Population < 1 {
		return fmt.Errorf("population %d, want >= 1", a.Population)
	}
	if a.Elite < 1 || a.Elite > a.Population {
		return fmt.Errorf("elite %d outside [1,%d]", a.Elite, a.Population)
	}
	if a.Generations < 1 {
		return fmt.Errorf("generations %d, want >= 1", a.Generations)
	}
	return nil
}

// GoalReport summarizes one fitness function after the run.
type GoalReport struct {
	Function    string
	Goal        string
	Complexity  int
	Covered     bool
	BestFitness float64
}

// SearchReport is the outcome of Session.Run.
type SearchReport struct {
	Generations int
	Goals       []GoalReport
}

// CoveredCount returns the number of covered goal functions.
func (r *SearchReport) CoveredCount() int {
	n := 0
	for _, g := range r.Goals {
		if g.Covered {
			n++
		}
	}
	return n
}

// Run executes a small generational loop: evaluate, rank, keep the best,
// refill with mutated clones. It stops early once every goal is covered
// or the context is canceled. The progress callback, if non-nil, is
// invoked once per generation.
func (s *Session) Run(ctx context.Context, args SearchArgs, progress func(generation, covered int)) (*SearchReport, error) {
	if err := args.validate(); err != nil {
		return nil, fmt.Errorf("search args: %w", err)
	}

	population := make([]*m.TestChromosome, 0, args.Population)
	for i := 0; i < args.Population; i++ {
		tc, err := s.RandomTestCase(args.TestLength)
		if err != nil {
			return nil, err
		}
		population = append(population, m.NewTestChromosome(tc))
	}

	eval := NewEvaluator(s.fitness, args.Threads)
	covered := make(map[string]bool)
	generations := 0

	for gen := 0; gen < args.Generations; gen++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := eval.EvaluateAll(ctx, population); err != nil {
			return nil, err
		}
		generations = gen + 1

		for _, f := range s.fitness {
			for _, c := range population {
				if c.IsGoalCovered(f.ID()) {
					covered[f.ID()] = true
					break
				}
			}
		}

		sort.SliceStable(population, func(i, j int) bool {
			return s.totalFitness(population[i]) < s.totalFitness(population[j])
		})

		if progress != nil {
			progress(generations, len(covered))
		}
		slog.Debug("Generation evaluated",
			"generation", generations,
			"covered", len(covered),
			"goals", len(s.fitness),
			"best", s.totalFitness(population[0]))

		if len(covered) == len(s.fitness) {
			break
		}
		if gen == args.Generations-1 {
			break
		}

		elite := s.selection.Select(population, args.Elite)
		next := make([]*m.TestChromosome, 0, args.Population)
		next = append(next, elite...)
		for len(next) < args.Population {
			parent := elite[s.rng.Intn(len(elite))]
			child := parent.Clone()
			for attempts := 0; attempts < 3; attempts++ {
				changed, err := s.Mutate(child)
				if err != nil {
					return nil, err
				}
				if changed {
					break
				}
			}
			next = append(next, child)
		}
		population = next
	}

	return s.report(population, covered, generations), nil
}

// totalFitness is the ranking key of an individual: the sum of its
// recorded per-goal fitness values, counting unevaluated goals as worst.
func (s *Session) totalFitness(c *m.TestChromosome) float64 {
	total := 0.0
	for _, f := range s.fitness {
		if v, ok := c.Fitness(f.ID()); ok {
			total += v
		} else {
			total += 1
		}
	}
	return total
}

func (s *Session) report(population []*m.TestChromosome, covered map[string]bool, generations int) *SearchReport {
	report := &SearchReport{Generations: generations}
	for _, f := range s.fitness {
		best := 1.0
		for _, c := range population {
			if v, ok := c.Fitness(f.ID()); ok && v < best {
				best = v
			}
		}
		report.Goals = append(report.Goals, GoalReport{
			Function:    f.KindName(),
			Goal:        f.Goal().Key(),
			Complexity:  f.Goal().CyclomaticComplexity(),
			Covered:     covered[f.ID()],
			BestFitness: best,
		})
	}
	return report
}
