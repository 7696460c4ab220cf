package service

import (
	"context"
	"testing"
	"time"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/repository"
)

func seedStatsStore() *repository.Memory {
	mem := repository.NewMemory()
	ann := "op1"
	bob := "op2"
	now := time.Now()
	mem.Operators = []domain.Operator{
		{ID: ann, Name: "Ann", Active: true, MaxLoad: 10},
		{ID: bob, Name: "Bob", Active: true, MaxLoad: 10},
	}
	mem.Sources = []domain.Source{
		{ID: "s1", Name: "Bot", Code: "bot"},
		{ID: "s2", Name: "Site", Code: "site"},
	}
	mem.Weights = []domain.OperatorSourceWeight{
		{ID: "w1", OperatorID: ann, SourceID: "s1", Weight: 3},
		{ID: "w2", OperatorID: bob, SourceID: "s1", Weight: 1},
		{ID: "w3", OperatorID: ann, SourceID: "s2", Weight: 2},
	}
	mem.Contacts = []domain.Contact{
		{ID: "c1", LeadID: "l1", SourceID: "s1", OperatorID: &ann, Status: domain.ContactStatusNew, AssignedAt: &now},
		{ID: "c2", LeadID: "l2", SourceID: "s1", OperatorID: &ann, Status: domain.ContactStatusClosed, AssignedAt: &now, ClosedAt: &now},
		{ID: "c3", LeadID: "l3", SourceID: "s1", OperatorID: &bob, Status: domain.ContactStatusNew, AssignedAt: &now},
		{ID: "c4", LeadID: "l4", SourceID: "s1", Status: domain.ContactStatusNew},
	}
	return mem
}

func TestStatsService_AllSources(t *testing.T) {
	mem := seedStatsStore()
	svc := NewStatsService(mem.WeightRepo())

	rows, err := svc.Distribution(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected a row per weight pair, got %d", len(rows))
	}

	byPair := map[[2]string]repository.DistributionStatRow{}
	for _, row := range rows {
		byPair[[2]string{row.OperatorID, row.SourceID}] = row
	}

	ann := byPair[[2]string{"op1", "s1"}]
	if ann.AssignedCount != 2 || ann.Weight != 3 || ann.OperatorName != "Ann" || ann.SourceName != "Bot" {
		t.Fatalf("unexpected row for op1/s1: %+v", ann)
	}
	bob := byPair[[2]string{"op2", "s1"}]
	if bob.AssignedCount != 1 {
		t.Fatalf("unexpected row for op2/s1: %+v", bob)
	}
	idle := byPair[[2]string{"op1", "s2"}]
	if idle.AssignedCount != 0 {
		t.Fatalf("expected zero assignments for op1/s2, got %+v", idle)
	}
}

func TestStatsService_FilterBySource(t *testing.T) {
	mem := seedStatsStore()
	svc := NewStatsService(mem.WeightRepo())

	source := "s2"
	rows, err := svc.Distribution(context.Background(), &source)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(rows) != 1 || rows[0].SourceID != "s2" {
		t.Fatalf("expected only s2 rows, got %+v", rows)
	}
}

func TestStatsService_UnassignedContactsNotCounted(t *testing.T) {
	mem := seedStatsStore()
	svc := NewStatsService(mem.WeightRepo())

	rows, err := svc.Distribution(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	total := 0
	for _, row := range rows {
		total += row.AssignedCount
	}
	// c4 has no operator and must not appear in any pair
	if total != 3 {
		t.Fatalf("expected 3 assigned contacts across rows, got %d", total)
	}
}
