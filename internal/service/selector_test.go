package service

import (
	"math"
	"testing"
)

func TestSelector_EmptyCandidates(t *testing.T) {
	s := NewSelector(1)
	if _, err := s.Pick(nil); err != ErrNoCandidates {
		t.Fatalf("expected ErrNoCandidates, got %v", err)
	}
}

func TestSelector_SingleCandidate(t *testing.T) {
	s := NewSelector(1)
	for i := 0; i < 10; i++ {
		id, err := s.Pick([]Candidate{{OperatorID: "op1", Weight: 0}})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if id != "op1" {
			t.Fatalf("expected op1, got %s", id)
		}
	}
}

func TestSelector_Deterministic(t *testing.T) {
	candidates := []Candidate{
		{OperatorID: "a", Weight: 1},
		{OperatorID: "b", Weight: 2},
		{OperatorID: "c", Weight: 3},
	}
	first := NewSelector(42)
	second := NewSelector(42)
	for i := 0; i < 100; i++ {
		got1, _ := first.Pick(candidates)
		got2, _ := second.Pick(candidates)
		if got1 != got2 {
			t.Fatalf("draw %d diverged: %s vs %s", i, got1, got2)
		}
	}
}

func TestSelector_WeightProportionality(t *testing.T) {
	const draws = 20000
	candidates := []Candidate{
		{OperatorID: "a", Weight: 1},
		{OperatorID: "b", Weight: 3},
	}
	s := NewSelector(7)
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		id, err := s.Pick(candidates)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		counts[id]++
	}
	gotA := float64(counts["a"]) / draws
	if math.Abs(gotA-0.25) > 0.02 {
		t.Fatalf("expected a near 0.25, got %.4f", gotA)
	}
}

func TestSelector_ZeroWeightFallbackUniform(t *testing.T) {
	const draws = 30000
	candidates := []Candidate{
		{OperatorID: "a", Weight: 0},
		{OperatorID: "b", Weight: 0},
		{OperatorID: "c", Weight: 0},
	}
	s := NewSelector(11)
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		id, err := s.Pick(candidates)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		counts[id]++
	}
	for _, id := range []string{"a", "b", "c"} {
		got := float64(counts[id]) / draws
		if math.Abs(got-1.0/3.0) > 0.02 {
			t.Fatalf("expected %s near 1/3, got %.4f", id, got)
		}
	}
}

func TestSelector_ZeroWeightRetainedAmongPositive(t *testing.T) {
	// a zero-weight candidate stays eligible but is never drawn while any
	// positive weight exists
	candidates := []Candidate{
		{OperatorID: "zero", Weight: 0},
		{OperatorID: "heavy", Weight: 5},
	}
	s := NewSelector(3)
	for i := 0; i < 1000; i++ {
		id, err := s.Pick(candidates)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if id == "zero" {
			t.Fatalf("zero-weight candidate drawn while positive weights exist")
		}
	}
}
