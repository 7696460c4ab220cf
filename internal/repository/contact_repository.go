package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/lead-distribution/internal/domain"
)

// ContactFilter captures contact search parameters.
type ContactFilter struct {
	OperatorID *string
	SourceID   *string
	LeadID     *string
	Limit      int
	Offset     int
}

// ContactRepository encapsulates contact persistence.
type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	UpdateStatus(ctx context.Context, contact *domain.Contact) error
	GetByID(ctx context.Context, id string) (*domain.Contact, error)
	CountActiveByOperator(ctx context.Context, operatorID string) (int, error)
	ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.Contact, error)
}

type contactRepository struct {
	pool *pgxpool.Pool
}

// NewContactRepository instantiates repository.
func NewContactRepository(pool *pgxpool.Pool) ContactRepository {
	return &contactRepository{pool: pool}
}

func (r *contactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
        INSERT INTO contacts (lead_id, source_id, operator_id, message, status, assigned_at)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		contact.LeadID,
		contact.SourceID,
		contact.OperatorID,
		contact.Message,
		contact.Status,
		contact.AssignedAt,
	).Scan(&contact.ID, &contact.CreatedAt)
}

func (r *contactRepository) UpdateStatus(ctx context.Context, contact *domain.Contact) error {
	const query = `
        UPDATE contacts SET status=$1, closed_at=$2
        WHERE id=$3`
	cmd, err := r.pool.Exec(ctx, query,
		contact.Status,
		contact.ClosedAt,
		contact.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	const query = `
        SELECT id, lead_id, source_id, operator_id, message, status, assigned_at, closed_at, created_at
        FROM contacts WHERE id=$1`
	var contact domain.Contact
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&contact.ID,
		&contact.LeadID,
		&contact.SourceID,
		&contact.OperatorID,
		&contact.Message,
		&contact.Status,
		&contact.AssignedAt,
		&contact.ClosedAt,
		&contact.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &contact, nil
}

// CountActiveByOperator computes current load by scanning contacts instead of
// maintaining a counter. Recompute-from-source is the source of truth.
func (r *contactRepository) CountActiveByOperator(ctx context.Context, operatorID string) (int, error) {
	const query = `
        SELECT COUNT(id) FROM contacts
        WHERE operator_id=$1 AND status <> 'closed'`
	var count int
	if err := r.pool.QueryRow(ctx, query, operatorID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *contactRepository) ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.Contact, error) {
	base := `SELECT id, lead_id, source_id, operator_id, message, status, assigned_at, closed_at, created_at
             FROM contacts`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.OperatorID != nil {
		args = append(args, *filter.OperatorID)
		clauses = append(clauses, fmt.Sprintf("operator_id=$%d", len(args)))
	}
	if filter.SourceID != nil {
		args = append(args, *filter.SourceID)
		clauses = append(clauses, fmt.Sprintf("source_id=$%d", len(args)))
	}
	if filter.LeadID != nil {
		args = append(args, *filter.LeadID)
		clauses = append(clauses, fmt.Sprintf("lead_id=$%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanContacts(rows)
}

func scanContacts(rows pgx.Rows) ([]domain.Contact, error) {
	var result []domain.Contact
	for rows.Next() {
		var contact domain.Contact
		if err := rows.Scan(
			&contact.ID,
			&contact.LeadID,
			&contact.SourceID,
			&contact.OperatorID,
			&contact.Message,
			&contact.Status,
			&contact.AssignedAt,
			&contact.ClosedAt,
			&contact.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, contact)
	}
	return result, rows.Err()
}
