package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/events"
	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

func newDistributionService(mem *repository.Memory, seed int64) *DistributionService {
	load := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())
	return NewDistributionService(DistributionDependencies{
		ContactRepo:  mem.ContactRepo(),
		WeightRepo:   mem.WeightRepo(),
		OperatorRepo: mem.OperatorRepo(),
		Load:         load,
		Selector:     NewSelector(seed),
		Dispatcher:   events.NewInMemoryDispatcher(),
	})
}

func TestDistribute_NoWeightRowsYieldsUnassignedContact(t *testing.T) {
	mem := repository.NewMemory()
	mem.Sources = []domain.Source{{ID: "s1", Name: "Bot", Code: "bot"}}
	svc := newDistributionService(mem, 1)

	result, err := svc.Distribute(context.Background(), "lead1", "s1", "hello")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Operator != nil {
		t.Fatalf("expected no operator, got %+v", result.Operator)
	}
	if result.Contact.OperatorID != nil || result.Contact.AssignedAt != nil {
		t.Fatalf("expected unassigned contact, got %+v", result.Contact)
	}
	if result.Contact.Status != domain.ContactStatusNew {
		t.Fatalf("expected status new, got %s", result.Contact.Status)
	}
	if len(mem.Contacts) != 1 {
		t.Fatalf("expected contact persisted, got %d", len(mem.Contacts))
	}
}

func TestDistribute_AllIneligibleYieldsUnassignedContact(t *testing.T) {
	mem := repository.NewMemory()
	op := "op1"
	now := time.Now()
	mem.Operators = []domain.Operator{{ID: op, Name: "Ann", Active: true, MaxLoad: 1}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: op, SourceID: "s1", Weight: 10}}
	mem.Contacts = []domain.Contact{{ID: "c0", OperatorID: &op, SourceID: "s1", Status: domain.ContactStatusNew, AssignedAt: &now}}
	svc := newDistributionService(mem, 1)

	result, err := svc.Distribute(context.Background(), "lead1", "s1", "hello")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Operator != nil || result.Contact.OperatorID != nil {
		t.Fatalf("expected unassigned outcome, got %+v", result)
	}
}

func TestDistribute_CapacityExclusion(t *testing.T) {
	mem := repository.NewMemory()
	full := "full"
	now := time.Now()
	mem.Operators = []domain.Operator{
		{ID: full, Name: "Full", Active: true, MaxLoad: 1},
		{ID: "free", Name: "Free", Active: true, MaxLoad: 10},
	}
	mem.Weights = []domain.OperatorSourceWeight{
		{ID: "w1", OperatorID: full, SourceID: "s1", Weight: 1000},
		{ID: "w2", OperatorID: "free", SourceID: "s1", Weight: 1},
	}
	mem.Contacts = []domain.Contact{{ID: "c0", OperatorID: &full, SourceID: "s1", Status: domain.ContactStatusNew, AssignedAt: &now}}
	svc := newDistributionService(mem, 1)

	candidates, err := svc.AvailableCandidates(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(candidates) != 1 || candidates[0].OperatorID != "free" {
		t.Fatalf("expected only the free operator, got %+v", candidates)
	}

	for i := 0; i < 5; i++ {
		result, err := svc.Distribute(context.Background(), "lead1", "s1", "m")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if result.Operator == nil || result.Operator.ID != "free" {
			t.Fatalf("expected free operator, got %+v", result.Operator)
		}
	}
}

func TestDistribute_InactiveExclusion(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{
		{ID: "off", Name: "Off", Active: false, MaxLoad: 10},
		{ID: "on", Name: "On", Active: true, MaxLoad: 10},
	}
	mem.Weights = []domain.OperatorSourceWeight{
		{ID: "w1", OperatorID: "off", SourceID: "s1", Weight: 1000},
		{ID: "w2", OperatorID: "on", SourceID: "s1", Weight: 1},
	}
	svc := newDistributionService(mem, 1)

	candidates, err := svc.AvailableCandidates(context.Background(), "s1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(candidates) != 1 || candidates[0].OperatorID != "on" {
		t.Fatalf("expected only the active operator, got %+v", candidates)
	}
}

func TestDistribute_ZeroWeightCandidateRemainsEligible(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 10}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 0}}
	svc := newDistributionService(mem, 1)

	result, err := svc.Distribute(context.Background(), "lead1", "s1", "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if result.Operator == nil || result.Operator.ID != "op1" {
		t.Fatalf("expected lone zero-weight operator assigned, got %+v", result.Operator)
	}
}

func TestDistribute_AssignmentInvariant(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 10}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 5}}
	svc := newDistributionService(mem, 1)

	assigned, err := svc.Distribute(context.Background(), "lead1", "s1", "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if assigned.Contact.OperatorID == nil || assigned.Contact.AssignedAt == nil {
		t.Fatalf("assigned contact must carry operator and timestamp together: %+v", assigned.Contact)
	}

	unassigned, err := svc.Distribute(context.Background(), "lead1", "unknown-source", "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if unassigned.Contact.OperatorID != nil || unassigned.Contact.AssignedAt != nil {
		t.Fatalf("unassigned contact must carry neither operator nor timestamp: %+v", unassigned.Contact)
	}
}

func TestDistribute_LoadMonotonicity(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 10}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 5}}
	svc := newDistributionService(mem, 1)
	load := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	before, _ := load.CurrentLoad(context.Background(), "op1")
	result, err := svc.Distribute(context.Background(), "lead1", "s1", "m")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	after, _ := load.CurrentLoad(context.Background(), "op1")
	if after != before+1 {
		t.Fatalf("expected load %d after distribute, got %d", before+1, after)
	}

	if _, err := svc.Close(context.Background(), result.Contact.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	final, _ := load.CurrentLoad(context.Background(), "op1")
	if final != before {
		t.Fatalf("expected load %d after close, got %d", before, final)
	}
}

func TestDistribute_CapacityScenario(t *testing.T) {
	// operator with capacity 1: assign, refuse, close, assign again
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 1}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 10}}
	svc := newDistributionService(mem, 1)
	load := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	first, err := svc.Distribute(context.Background(), "lead1", "s1", "m1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if first.Operator == nil || first.Operator.ID != "op1" {
		t.Fatalf("expected op1 assigned, got %+v", first.Operator)
	}
	if got, _ := load.CurrentLoad(context.Background(), "op1"); got != 1 {
		t.Fatalf("expected load 1, got %d", got)
	}

	second, err := svc.Distribute(context.Background(), "lead2", "s1", "m2")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if second.Operator != nil {
		t.Fatalf("expected no assignment at capacity, got %+v", second.Operator)
	}

	if _, err := svc.Close(context.Background(), first.Contact.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got, _ := load.CurrentLoad(context.Background(), "op1"); got != 0 {
		t.Fatalf("expected load 0 after close, got %d", got)
	}

	third, err := svc.Distribute(context.Background(), "lead3", "s1", "m3")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if third.Operator == nil || third.Operator.ID != "op1" {
		t.Fatalf("expected op1 assigned again, got %+v", third.Operator)
	}
}

func TestDistribute_RetriedCallCreatesSecondContact(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 10}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 5}}
	svc := newDistributionService(mem, 1)

	if _, err := svc.Distribute(context.Background(), "lead1", "s1", "m"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := svc.Distribute(context.Background(), "lead1", "s1", "m"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(mem.Contacts) != 2 {
		t.Fatalf("expected two contacts, got %d", len(mem.Contacts))
	}
}

func TestClose_NotFound(t *testing.T) {
	mem := repository.NewMemory()
	svc := newDistributionService(mem, 1)

	_, err := svc.Close(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestClose_UnassignedContactAllowed(t *testing.T) {
	mem := repository.NewMemory()
	mem.Contacts = []domain.Contact{{ID: "c1", LeadID: "lead1", SourceID: "s1", Status: domain.ContactStatusNew}}
	svc := newDistributionService(mem, 1)

	contact, err := svc.Close(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if contact.Status != domain.ContactStatusClosed || contact.ClosedAt == nil {
		t.Fatalf("expected closed contact, got %+v", contact)
	}
}

func TestClose_RecloseRestampsClosedAt(t *testing.T) {
	mem := repository.NewMemory()
	mem.Contacts = []domain.Contact{{ID: "c1", LeadID: "lead1", SourceID: "s1", Status: domain.ContactStatusNew}}
	svc := newDistributionService(mem, 1)

	first, err := svc.Close(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := svc.Close(context.Background(), "c1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !second.ClosedAt.After(*first.ClosedAt) {
		t.Fatalf("expected re-close to re-stamp closed_at: %v vs %v", first.ClosedAt, second.ClosedAt)
	}
}

func TestDistribute_EmitsAssignmentEvents(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 10}}
	mem.Weights = []domain.OperatorSourceWeight{{ID: "w1", OperatorID: "op1", SourceID: "s1", Weight: 5}}

	dispatcher := events.NewInMemoryDispatcher()
	var seen []events.EventType
	record := func(ctx context.Context, event events.Event) error {
		seen = append(seen, event.Type)
		return nil
	}
	dispatcher.Subscribe(events.EventContactCreated, record)
	dispatcher.Subscribe(events.EventContactAssigned, record)

	load := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())
	svc := NewDistributionService(DistributionDependencies{
		ContactRepo:  mem.ContactRepo(),
		WeightRepo:   mem.WeightRepo(),
		OperatorRepo: mem.OperatorRepo(),
		Load:         load,
		Selector:     NewSelector(1),
		Dispatcher:   dispatcher,
	})

	if _, err := svc.Distribute(context.Background(), "lead1", "s1", "m"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(seen) != 2 || seen[0] != events.EventContactCreated || seen[1] != events.EventContactAssigned {
		t.Fatalf("unexpected events: %v", seen)
	}
}
