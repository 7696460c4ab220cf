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

// SourceService manages contact sources.
type SourceService struct {
	sources   repository.SourceRepository
	weights   repository.WeightRepository
	operators repository.OperatorRepository
}

// NewSourceService creates the service.
func NewSourceService(sources repository.SourceRepository, weights repository.WeightRepository, operators repository.OperatorRepository) *SourceService {
	return &SourceService{sources: sources, weights: weights, operators: operators}
}

// SourceOperator is one roster entry for a source: the operator, its weight
// and whether it is currently active. Unlike the distribution candidate set,
// the roster is not filtered by availability.
type SourceOperator struct {
	OperatorID   string
	OperatorName string
	Weight       int
	Active       bool
}

// Create registers a new source. Code must be unused.
func (s *SourceService) Create(ctx context.Context, name, code string) (*domain.Source, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" || code == "" {
		return nil, apperrors.NewValidationError("name and code required", nil)
	}
	if _, err := s.sources.GetByCode(ctx, code); err == nil {
		return nil, apperrors.NewConflict("source already exists", map[string]any{"code": code})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	source := &domain.Source{Name: name, Code: code}
	if err := s.sources.Create(ctx, source); err != nil {
		return nil, apperrors.MapError(err)
	}
	return source, nil
}

// Get returns a source by id.
func (s *SourceService) Get(ctx context.Context, id string) (*domain.Source, error) {
	source, err := s.sources.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("source", map[string]any{"source_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return source, nil
}

// GetByCode returns a source by its routing code.
func (s *SourceService) GetByCode(ctx context.Context, code string) (*domain.Source, error) {
	source, err := s.sources.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("source", map[string]any{"code": code})
		}
		return nil, apperrors.MapError(err)
	}
	return source, nil
}

// List returns sources with pagination.
func (s *SourceService) List(ctx context.Context, limit, offset int) ([]domain.Source, error) {
	sources, err := s.sources.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return sources, nil
}

// Roster lists every weighted operator for a source regardless of load.
func (s *SourceService) Roster(ctx context.Context, sourceID string) ([]SourceOperator, error) {
	if _, err := s.Get(ctx, sourceID); err != nil {
		return nil, err
	}
	rows, err := s.weights.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	result := make([]SourceOperator, 0, len(rows))
	for _, row := range rows {
		operator, err := s.operators.GetByID(ctx, row.OperatorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				continue
			}
			return nil, apperrors.MapError(err)
		}
		result = append(result, SourceOperator{
			OperatorID:   operator.ID,
			OperatorName: operator.Name,
			Weight:       row.Weight,
			Active:       operator.Active,
		})
	}
	return result, nil
}
