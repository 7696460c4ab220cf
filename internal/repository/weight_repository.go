package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-distribution/internal/domain"
)

// DistributionStatRow aggregates distribution history for one
// (operator, source) weight pair.
type DistributionStatRow struct {
	OperatorID    string
	OperatorName  string
	SourceID      string
	SourceName    string
	Weight        int
	ContactCount  int
	AssignedCount int
}

// WeightRepository handles persistence for operator/source weights.
type WeightRepository interface {
	Upsert(ctx context.Context, weight *domain.OperatorSourceWeight) error
	ListBySource(ctx context.Context, sourceID string) ([]domain.OperatorSourceWeight, error)
	DistributionStats(ctx context.Context, sourceID *string) ([]DistributionStatRow, error)
}

type weightRepository struct {
	pool *pgxpool.Pool
}

// NewWeightRepository instantiates the repository.
func NewWeightRepository(pool *pgxpool.Pool) WeightRepository {
	return &weightRepository{pool: pool}
}

func (r *weightRepository) Upsert(ctx context.Context, weight *domain.OperatorSourceWeight) error {
	const query = `
        INSERT INTO operator_source_weights (operator_id, source_id, weight)
        VALUES ($1,$2,$3)
        ON CONFLICT (operator_id, source_id)
        DO UPDATE SET weight=EXCLUDED.weight, updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		weight.OperatorID,
		weight.SourceID,
		weight.Weight,
	).Scan(&weight.ID, &weight.CreatedAt, &weight.UpdatedAt)
}

func (r *weightRepository) ListBySource(ctx context.Context, sourceID string) ([]domain.OperatorSourceWeight, error) {
	const query = `
        SELECT id, operator_id, source_id, weight, created_at, updated_at
        FROM operator_source_weights WHERE source_id=$1`

	rows, err := r.pool.Query(ctx, query, sourceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.OperatorSourceWeight
	for rows.Next() {
		var weight domain.OperatorSourceWeight
		if err := rows.Scan(
			&weight.ID,
			&weight.OperatorID,
			&weight.SourceID,
			&weight.Weight,
			&weight.CreatedAt,
			&weight.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, weight)
	}
	return result, rows.Err()
}

func (r *weightRepository) DistributionStats(ctx context.Context, sourceID *string) ([]DistributionStatRow, error) {
	query := `
        SELECT o.id, o.name, s.id, s.name, w.weight,
               COUNT(c.id),
               COUNT(c.id) FILTER (WHERE c.operator_id IS NOT NULL)
        FROM operator_source_weights w
        JOIN operators o ON o.id = w.operator_id
        JOIN sources s ON s.id = w.source_id
        LEFT JOIN contacts c ON c.operator_id = o.id AND c.source_id = s.id`
	args := []any{}
	if sourceID != nil {
		args = append(args, *sourceID)
		query += ` WHERE s.id=$1`
	}
	query += ` GROUP BY o.id, o.name, s.id, s.name, w.weight`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DistributionStatRow
	for rows.Next() {
		var row DistributionStatRow
		if err := rows.Scan(
			&row.OperatorID,
			&row.OperatorName,
			&row.SourceID,
			&row.SourceName,
			&row.Weight,
			&row.ContactCount,
			&row.AssignedCount,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
