package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// OperatorService manages the operator roster and per-source weights.
type OperatorService struct {
	operators repository.OperatorRepository
	sources   repository.SourceRepository
	weights   repository.WeightRepository
	load      *LoadService
}

// OperatorDependencies bundles repositories.
type OperatorDependencies struct {
	OperatorRepo repository.OperatorRepository
	SourceRepo   repository.SourceRepository
	WeightRepo   repository.WeightRepository
	Load         *LoadService
}

// NewOperatorService creates the service.
func NewOperatorService(deps OperatorDependencies) *OperatorService {
	return &OperatorService{
		operators: deps.OperatorRepo,
		sources:   deps.SourceRepo,
		weights:   deps.WeightRepo,
		load:      deps.Load,
	}
}

// OperatorCreateInput describes operator creation payload.
type OperatorCreateInput struct {
	Name    string
	Email   string
	Active  bool
	MaxLoad int
}

// OperatorUpdateInput carries partial updates; nil fields stay unchanged.
type OperatorUpdateInput struct {
	Name    *string
	Email   *string
	Active  *bool
	MaxLoad *int
}

// OperatorWithLoad pairs an operator with its current load.
type OperatorWithLoad struct {
	Operator    domain.Operator
	CurrentLoad int
}

// Create registers a new operator. Email must be unused; MaxLoad must not be
// negative.
func (s *OperatorService) Create(ctx context.Context, input OperatorCreateInput) (*domain.Operator, error) {
	email := strings.TrimSpace(input.Email)
	if input.Name == "" || email == "" {
		return nil, apperrors.NewValidationError("name and email required", nil)
	}
	if input.MaxLoad < 0 {
		return nil, apperrors.NewValidationError("max_load must not be negative", nil)
	}
	if _, err := s.operators.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewConflict("operator already exists", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	operator := &domain.Operator{
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Active:  input.Active,
		MaxLoad: input.MaxLoad,
	}
	if err := s.operators.Create(ctx, operator); err != nil {
		return nil, apperrors.MapError(err)
	}
	return operator, nil
}

// Update applies a partial update to an operator.
func (s *OperatorService) Update(ctx context.Context, id string, input OperatorUpdateInput) (*domain.Operator, error) {
	operator, err := s.operators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operator", map[string]any{"operator_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if input.Name != nil {
		operator.Name = strings.TrimSpace(*input.Name)
	}
	if input.Email != nil {
		operator.Email = strings.TrimSpace(*input.Email)
	}
	if input.Active != nil {
		operator.Active = *input.Active
	}
	if input.MaxLoad != nil {
		if *input.MaxLoad < 0 {
			return nil, apperrors.NewValidationError("max_load must not be negative", nil)
		}
		operator.MaxLoad = *input.MaxLoad
	}
	if err := s.operators.Update(ctx, operator); err != nil {
		return nil, apperrors.MapError(err)
	}
	return operator, nil
}

// Get returns one operator with its current load.
func (s *OperatorService) Get(ctx context.Context, id string) (*OperatorWithLoad, error) {
	operator, err := s.operators.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operator", map[string]any{"operator_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	load, err := s.load.CurrentLoad(ctx, operator.ID)
	if err != nil {
		return nil, err
	}
	return &OperatorWithLoad{Operator: *operator, CurrentLoad: load}, nil
}

// List returns operators with their current loads.
func (s *OperatorService) List(ctx context.Context, filter repository.OperatorFilter) ([]OperatorWithLoad, error) {
	operators, err := s.operators.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]OperatorWithLoad, 0, len(operators))
	for i := range operators {
		load, err := s.load.CurrentLoad(ctx, operators[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, OperatorWithLoad{Operator: operators[i], CurrentLoad: load})
	}
	return result, nil
}

// UpsertWeight sets the operator's weight for a source, replacing any
// previous value for the pair.
func (s *OperatorService) UpsertWeight(ctx context.Context, operatorID, sourceID string, value int) (*domain.OperatorSourceWeight, error) {
	if value < 0 {
		return nil, apperrors.NewValidationError("weight must not be negative", nil)
	}
	if _, err := s.operators.GetByID(ctx, operatorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("operator", map[string]any{"operator_id": operatorID})
		}
		return nil, apperrors.MapError(err)
	}
	if _, err := s.sources.GetByID(ctx, sourceID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("source", map[string]any{"source_id": sourceID})
		}
		return nil, apperrors.MapError(err)
	}

	weight := &domain.OperatorSourceWeight{
		OperatorID: operatorID,
		SourceID:   sourceID,
		Weight:     value,
	}
	if err := s.weights.Upsert(ctx, weight); err != nil {
		return nil, apperrors.MapError(err)
	}
	return weight, nil
}
