package service

import (
	"errors"
	"math/rand"
	"sync"
	"time"
)

// Candidate is one eligible operator with its selection weight.
type Candidate struct {
	OperatorID string
	Weight     int
}

// ErrNoCandidates is returned when Pick is invoked with an empty slice. The
// distribution engine treats an empty candidate set as "no assignment" before
// selection, so this only fires on misuse.
var ErrNoCandidates = errors.New("no candidates to select from")

// Selector picks one candidate with probability proportional to its weight.
// The random source is injected so outcomes are reproducible in tests; a
// process-wide source would make them flaky.
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector creates a selector seeded with the given value. Seed zero means
// seed from the clock.
func NewSelector(seed int64) *Selector {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Selector{rng: rand.New(rand.NewSource(seed))}
}

// Pick selects one candidate. When every weight is zero each candidate is
// equally likely. Otherwise a value r is drawn uniformly from [0, total) and
// the first candidate whose cumulative weight exceeds r wins, so candidate i
// is chosen with probability weight_i/total.
func (s *Selector) Pick(candidates []Candidate) (string, error) {
	if len(candidates) == 0 {
		return "", ErrNoCandidates
	}

	total := 0
	for _, candidate := range candidates {
		total += candidate.Weight
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if total == 0 {
		return candidates[s.rng.Intn(len(candidates))].OperatorID, nil
	}

	r := s.rng.Intn(total)
	cumulative := 0
	for _, candidate := range candidates {
		cumulative += candidate.Weight
		if r < cumulative {
			return candidate.OperatorID, nil
		}
	}
	// r < total always holds, so the loop selects; keep the last candidate as
	// a guard against an out-of-range draw.
	return candidates[len(candidates)-1].OperatorID, nil
}
