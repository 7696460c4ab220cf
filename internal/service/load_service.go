package service

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// LoadService computes operator load and availability. Load is always
// recounted from persisted contacts, never cached, so it cannot drift.
type LoadService struct {
	operators repository.OperatorRepository
	contacts  repository.ContactRepository
}

// NewLoadService creates the service.
func NewLoadService(operators repository.OperatorRepository, contacts repository.ContactRepository) *LoadService {
	return &LoadService{operators: operators, contacts: contacts}
}

// LoadInfo reports an operator's current workload.
type LoadInfo struct {
	OperatorID   string
	OperatorName string
	CurrentLoad  int
	MaxLoad      int
	IsAvailable  bool
}

// CurrentLoad counts the operator's non-closed contacts. An operator with no
// contacts has load zero.
func (s *LoadService) CurrentLoad(ctx context.Context, operatorID string) (int, error) {
	count, err := s.contacts.CountActiveByOperator(ctx, operatorID)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	return count, nil
}

// IsAvailable reports whether the operator can take another contact: active
// and below its maximum concurrent load.
func (s *LoadService) IsAvailable(ctx context.Context, operator *domain.Operator) (bool, error) {
	if !operator.Active {
		return false, nil
	}
	load, err := s.CurrentLoad(ctx, operator.ID)
	if err != nil {
		return false, err
	}
	return load < operator.MaxLoad, nil
}

// Info returns load details for one operator.
func (s *LoadService) Info(ctx context.Context, operatorID string) (*LoadInfo, error) {
	operator, err := s.operators.GetByID(ctx, operatorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operator", map[string]any{"operator_id": operatorID})
		}
		return nil, apperrors.MapError(err)
	}
	load, err := s.CurrentLoad(ctx, operatorID)
	if err != nil {
		return nil, err
	}
	return &LoadInfo{
		OperatorID:   operator.ID,
		OperatorName: operator.Name,
		CurrentLoad:  load,
		MaxLoad:      operator.MaxLoad,
		IsAvailable:  operator.Active && load < operator.MaxLoad,
	}, nil
}
