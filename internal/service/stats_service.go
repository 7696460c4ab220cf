package service

import (
	"context"

	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// StatsService reports historical assignment counts per (operator, source)
// weight pair. Always recomputed from persisted rows; nothing is cached.
type StatsService struct {
	weights repository.WeightRepository
}

// NewStatsService creates the service.
func NewStatsService(weights repository.WeightRepository) *StatsService {
	return &StatsService{weights: weights}
}

// Distribution aggregates contact and assignment counts for every weight
// pair, optionally narrowed to one source.
func (s *StatsService) Distribution(ctx context.Context, sourceID *string) ([]repository.DistributionStatRow, error) {
	rows, err := s.weights.DistributionStats(ctx, sourceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return rows, nil
}
