package domain

import (
	"fmt"
	"math"
	"sort"

	"github.com/Bachenbenno/evosuite/internal/adapter"
	m "github.com/Bachenbenno/evosuite/internal/model"
	"github.com/Bachenbenno/evosuite/pkg/randx"
)

// Config is the tunable surface of a search session. The three insertion
// weights are mutually exclusive branch probabilities and must sum to 1.
type Config struct {
	InsertionUUT            float64
	InsertionEnvironment    float64
	InsertionParameter      float64
	SortObjects             bool
	EnableFailurePenalties  bool
	FailurePenaltyThreshold int
	MaxRecursionDepth       int
	Seed                    int64
}

// DefaultConfig mirrors the tool defaults.
func DefaultConfig() Config {
	return Config{
		InsertionUUT:            0.5,
		InsertionEnvironment:    0.0,
		InsertionParameter:      0.5,
		SortObjects:             true,
		EnableFailurePenalties:  true,
		FailurePenaltyThreshold: 0,
		MaxRecursionDepth:       10,
		Seed:                    1,
	}
}

// Validate rejects malformed configurations at session start. A weight
// sum that deviates from 1.0 is a configuration error, never a runtime
// branch.
func (c Config) Validate() error {
	for _, w := range []struct {
		name  string
		value float64
	}{
		{"insertion_uut", c.InsertionUUT},
		{"insertion_environment", c.InsertionEnvironment},
		{"insertion_parameter", c.InsertionParameter},
	} {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("weight %s = %v outside [0,1]", w.name, w.value)
		}
	}
	sum := c.InsertionUUT + c.InsertionEnvironment + c.InsertionParameter
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("insertion weights sum to %v, want 1.0", sum)
	}
	if c.MaxRecursionDepth < 1 {
		return fmt.Errorf("max_recursion_depth = %d, want >= 1", c.MaxRecursionDepth)
	}
	return nil
}

// Session owns the per-run state of a search: the mutation engines, the
// fitness functions with their goals, and the seeded randomness source.
// Sessions are independent; running several in parallel needs no shared
// state beyond the read-only catalog.
type Session struct {
	cfg       Config
	rng       *randx.Rand
	catalog   adapter.Catalog
	exec      adapter.Executor
	tracker   *ConstraintTracker
	insertion *InsertionEngine
	deletion  *DeletionEngine
	modify    *ModificationEngine
	fitness   []FitnessFunction
	selection *BestKSelection[*m.TestChromosome]
}

// NewSession validates the configuration, resolves one goal per callable
// of the unit under test and wires the mutation engines. The complexity
// oracle is wrapped in a memoizing layer so each target is resolved once.
func NewSession(cfg Config, catalog adapter.Catalog, exec adapter.Executor, oracle adapter.ComplexityOracle) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("session config: %w", err)
	}
	rng := randx.New(cfg.Seed)
	tracker := NewConstraintTracker()
	fac := newFactory(catalog, rng, cfg.MaxRecursionDepth)
	memo := adapter.NewMemoOracle(oracle)

	policy := m.PenaltyPolicy{
		Enabled:   cfg.EnableFailurePenalties,
		Threshold: cfg.FailurePenaltyThreshold,
	}
	var funcs []FitnessFunction
	for _, call := range catalog.TestCalls() {
		complexity, err := memo.CyclomaticComplexity(string(call.Owner), call.Name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		goal, err := m.NewGoal(string(call.Owner), call.Name, complexity, policy)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvariant, err)
		}
		funcs = append(funcs,
			NewMethodCoverageFitness(goal, exec),
			NewExceptionFreeFitness(goal, exec),
		)
	}
	sort.SliceStable(funcs, func(i, j int) bool {
		return CompareFitness(funcs[i], funcs[j]) < 0
	})

	return &Session{
		cfg:       cfg,
		rng:       rng,
		catalog:   catalog,
		exec:      exec,
		tracker:   tracker,
		insertion: NewInsertionEngine(catalog, tracker, fac, rng, cfg.InsertionUUT, cfg.InsertionEnvironment, cfg.SortObjects),
		deletion:  NewDeletionEngine(catalog, tracker, rng),
		modify:    NewModificationEngine(catalog, tracker, rng),
		fitness:   funcs,
		selection: NewBestKSelection[*m.TestChromosome](),
	}, nil
}

// FitnessFunctions returns the session's goal functions in scheduling
// order.
func (s *Session) FitnessFunctions() []FitnessFunction { return s.fitness }

// Selection returns the survivor selection operator.
func (s *Session) Selection() *BestKSelection[*m.TestChromosome] { return s.selection }

// Insertion returns the insertion engine.
func (s *Session) Insertion() *InsertionEngine { return s.insertion }

// Deletion returns the deletion engine.
func (s *Session) Deletion() *DeletionEngine { return s.deletion }

// Modification returns the modification engine.
func (s *Session) Modification() *ModificationEngine { return s.modify }

type mutationOp int

const (
	opInsert mutationOp = iota
	opDelete
	opChange
)

var mutationWeights = []float64{1, 1, 1}

// Mutate applies one random mutation to the chromosome: an insertion, a
// graceful deletion or a call replacement, with equal probability.
// Returns whether the chromosome changed. Recoverable failures leave it
// untouched.
func (s *Session) Mutate(c *m.TestChromosome) (bool, error) {
	tc := c.Test
	op := opInsert
	if !tc.IsEmpty() {
		op = randx.WeightedChoice(s.rng, []mutationOp{opInsert, opDelete, opChange}, mutationWeights)
	}
	changed := false
	switch op {
	case opInsert:
		pos, err := s.insertion.InsertStatement(tc, tc.Size()-1)
		if err != nil {
			return false, err
		}
		changed = pos != InsertionError
	case opDelete:
		ok, err := s.deletion.DeleteGracefully(tc, s.rng.Intn(tc.Size()))
		if err != nil {
			return false, err
		}
		changed = ok
	default:
		changed = s.modify.ChangeRandomCall(tc, s.rng.Intn(tc.Size()))
	}
	if changed {
		c.SetChanged(true)
	}
	return changed, nil
}

// RandomTestCase builds a fresh test case of roughly the requested
// length by repeated insertion. Attempts that fail to construct are
// skipped; the result may be shorter when the catalog is too sparse.
func (s *Session) RandomTestCase(length int) (*m.TestCase, error) {
	tc := m.NewTestCase()
	for attempts := 0; tc.Size() < length && attempts < 3*length; attempts++ {
		if _, err := s.insertion.InsertStatement(tc, tc.Size()-1); err != nil {
			return nil, err
		}
	}
	return tc, nil
}
