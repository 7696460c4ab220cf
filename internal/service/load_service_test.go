package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

func TestLoadService_ZeroLoadOperator(t *testing.T) {
	mem := repository.NewMemory()
	mem.Operators = []domain.Operator{{ID: "op1", Name: "Ann", Active: true, MaxLoad: 5}}
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	load, err := svc.CurrentLoad(context.Background(), "op1")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if load != 0 {
		t.Fatalf("expected load 0, got %d", load)
	}
}

func TestLoadService_CountsOnlyNonClosedContacts(t *testing.T) {
	mem := repository.NewMemory()
	op := "op1"
	now := time.Now()
	mem.Operators = []domain.Operator{{ID: op, Name: "Ann", Active: true, MaxLoad: 5}}
	mem.Contacts = []domain.Contact{
		{ID: "c1", OperatorID: &op, Status: domain.ContactStatusNew, AssignedAt: &now},
		{ID: "c2", OperatorID: &op, Status: domain.ContactStatusInProgress, AssignedAt: &now},
		{ID: "c3", OperatorID: &op, Status: domain.ContactStatusClosed, AssignedAt: &now, ClosedAt: &now},
	}
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	load, err := svc.CurrentLoad(context.Background(), op)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if load != 2 {
		t.Fatalf("expected load 2, got %d", load)
	}
}

func TestLoadService_AvailabilityBoundary(t *testing.T) {
	mem := repository.NewMemory()
	op := "op1"
	now := time.Now()
	operator := domain.Operator{ID: op, Name: "Ann", Active: true, MaxLoad: 1}
	mem.Operators = []domain.Operator{operator}
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	available, err := svc.IsAvailable(context.Background(), &operator)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !available {
		t.Fatalf("expected operator under capacity to be available")
	}

	mem.Contacts = []domain.Contact{{ID: "c1", OperatorID: &op, Status: domain.ContactStatusNew, AssignedAt: &now}}
	available, err = svc.IsAvailable(context.Background(), &operator)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if available {
		t.Fatalf("expected operator at capacity to be unavailable")
	}
}

func TestLoadService_InactiveNeverAvailable(t *testing.T) {
	mem := repository.NewMemory()
	operator := domain.Operator{ID: "op1", Name: "Ann", Active: false, MaxLoad: 10}
	mem.Operators = []domain.Operator{operator}
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	available, err := svc.IsAvailable(context.Background(), &operator)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if available {
		t.Fatalf("expected inactive operator to be unavailable")
	}
}

func TestLoadService_InfoNotFound(t *testing.T) {
	mem := repository.NewMemory()
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	_, err := svc.Info(context.Background(), "missing")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestLoadService_Info(t *testing.T) {
	mem := repository.NewMemory()
	op := "op1"
	now := time.Now()
	mem.Operators = []domain.Operator{{ID: op, Name: "Ann", Active: true, MaxLoad: 3}}
	mem.Contacts = []domain.Contact{{ID: "c1", OperatorID: &op, Status: domain.ContactStatusNew, AssignedAt: &now}}
	svc := NewLoadService(mem.OperatorRepo(), mem.ContactRepo())

	info, err := svc.Info(context.Background(), op)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.CurrentLoad != 1 || info.MaxLoad != 3 || !info.IsAvailable {
		t.Fatalf("unexpected info: %+v", info)
	}
}
