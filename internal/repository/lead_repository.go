package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-distribution/internal/domain"
)

// LeadRepository handles persistence for leads.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) error
	GetByID(ctx context.Context, id string) (*domain.Lead, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.Lead, error)
	List(ctx context.Context, limit, offset int) ([]domain.Lead, error)
}

type leadRepository struct {
	pool *pgxpool.Pool
}

// NewLeadRepository instantiates the repository.
func NewLeadRepository(pool *pgxpool.Pool) LeadRepository {
	return &leadRepository{pool: pool}
}

func (r *leadRepository) Create(ctx context.Context, lead *domain.Lead) error {
	const query = `
        INSERT INTO leads (external_id, phone, email, first_name, last_name)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		lead.ExternalID,
		lead.Phone,
		lead.Email,
		lead.FirstName,
		lead.LastName,
	).Scan(&lead.ID, &lead.CreatedAt, &lead.UpdatedAt)
}

func (r *leadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	const query = `
        SELECT id, external_id, phone, email, first_name, last_name, created_at, updated_at
        FROM leads WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *leadRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.Lead, error) {
	const query = `
        SELECT id, external_id, phone, email, first_name, last_name, created_at, updated_at
        FROM leads WHERE external_id=$1`
	return r.fetchSingle(ctx, query, externalID)
}

func (r *leadRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Lead, error) {
	var lead domain.Lead
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&lead.ID,
		&lead.ExternalID,
		&lead.Phone,
		&lead.Email,
		&lead.FirstName,
		&lead.LastName,
		&lead.CreatedAt,
		&lead.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *leadRepository) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf(`
        SELECT id, external_id, phone, email, first_name, last_name, created_at, updated_at
        FROM leads ORDER BY created_at DESC LIMIT %d OFFSET %d`, limit, offset)

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Lead
	for rows.Next() {
		var lead domain.Lead
		if err := rows.Scan(
			&lead.ID,
			&lead.ExternalID,
			&lead.Phone,
			&lead.Email,
			&lead.FirstName,
			&lead.LastName,
			&lead.CreatedAt,
			&lead.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, lead)
	}
	return result, rows.Err()
}
