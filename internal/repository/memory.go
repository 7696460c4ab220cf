package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-distribution/internal/domain"
)

// Memory is an in-memory store backing every repository interface, for tests
// and early development. Missing rows are reported as pgx.ErrNoRows so
// services classify them the same way as with the postgres repositories.
type Memory struct {
	mu sync.Mutex

	Operators []domain.Operator
	Leads     []domain.Lead
	Sources   []domain.Source
	Weights   []domain.OperatorSourceWeight
	Contacts  []domain.Contact
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// OperatorRepo returns an OperatorRepository view over the store.
func (m *Memory) OperatorRepo() OperatorRepository { return &memoryOperators{m} }

// LeadRepo returns a LeadRepository view over the store.
func (m *Memory) LeadRepo() LeadRepository { return &memoryLeads{m} }

// SourceRepo returns a SourceRepository view over the store.
func (m *Memory) SourceRepo() SourceRepository { return &memorySources{m} }

// WeightRepo returns a WeightRepository view over the store.
func (m *Memory) WeightRepo() WeightRepository { return &memoryWeights{m} }

// ContactRepo returns a ContactRepository view over the store.
func (m *Memory) ContactRepo() ContactRepository { return &memoryContacts{m} }

type memoryOperators struct{ store *Memory }

func (r *memoryOperators) Create(ctx context.Context, operator *domain.Operator) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	operator.ID = uuid.NewString()
	operator.CreatedAt = time.Now()
	operator.UpdatedAt = operator.CreatedAt
	r.store.Operators = append(r.store.Operators, *operator)
	return nil
}

func (r *memoryOperators) Update(ctx context.Context, operator *domain.Operator) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Operators {
		if r.store.Operators[i].ID == operator.ID {
			operator.UpdatedAt = time.Now()
			r.store.Operators[i] = *operator
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryOperators) GetByID(ctx context.Context, id string) (*domain.Operator, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Operators {
		if r.store.Operators[i].ID == id {
			operator := r.store.Operators[i]
			return &operator, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryOperators) GetByEmail(ctx context.Context, email string) (*domain.Operator, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Operators {
		if r.store.Operators[i].Email == email {
			operator := r.store.Operators[i]
			return &operator, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryOperators) List(ctx context.Context, filter OperatorFilter) ([]domain.Operator, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Operator, 0)
	for _, operator := range r.store.Operators {
		if filter.Active != nil && operator.Active != *filter.Active {
			continue
		}
		out = append(out, operator)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

type memoryLeads struct{ store *Memory }

func (r *memoryLeads) Create(ctx context.Context, lead *domain.Lead) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	lead.ID = uuid.NewString()
	lead.CreatedAt = time.Now()
	lead.UpdatedAt = lead.CreatedAt
	r.store.Leads = append(r.store.Leads, *lead)
	return nil
}

func (r *memoryLeads) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Leads {
		if r.store.Leads[i].ID == id {
			lead := r.store.Leads[i]
			return &lead, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryLeads) GetByExternalID(ctx context.Context, externalID string) (*domain.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Leads {
		if r.store.Leads[i].ExternalID == externalID {
			lead := r.store.Leads[i]
			return &lead, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryLeads) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return paginate(append([]domain.Lead{}, r.store.Leads...), limit, offset), nil
}

type memorySources struct{ store *Memory }

func (r *memorySources) Create(ctx context.Context, source *domain.Source) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	source.ID = uuid.NewString()
	source.CreatedAt = time.Now()
	r.store.Sources = append(r.store.Sources, *source)
	return nil
}

func (r *memorySources) GetByID(ctx context.Context, id string) (*domain.Source, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Sources {
		if r.store.Sources[i].ID == id {
			source := r.store.Sources[i]
			return &source, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memorySources) GetByCode(ctx context.Context, code string) (*domain.Source, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Sources {
		if r.store.Sources[i].Code == code {
			source := r.store.Sources[i]
			return &source, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memorySources) List(ctx context.Context, limit, offset int) ([]domain.Source, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return paginate(append([]domain.Source{}, r.store.Sources...), limit, offset), nil
}

type memoryWeights struct{ store *Memory }

func (r *memoryWeights) Upsert(ctx context.Context, weight *domain.OperatorSourceWeight) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Weights {
		if r.store.Weights[i].OperatorID == weight.OperatorID && r.store.Weights[i].SourceID == weight.SourceID {
			r.store.Weights[i].Weight = weight.Weight
			r.store.Weights[i].UpdatedAt = time.Now()
			*weight = r.store.Weights[i]
			return nil
		}
	}
	weight.ID = uuid.NewString()
	weight.CreatedAt = time.Now()
	weight.UpdatedAt = weight.CreatedAt
	r.store.Weights = append(r.store.Weights, *weight)
	return nil
}

func (r *memoryWeights) ListBySource(ctx context.Context, sourceID string) ([]domain.OperatorSourceWeight, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.OperatorSourceWeight, 0)
	for _, weight := range r.store.Weights {
		if weight.SourceID == sourceID {
			out = append(out, weight)
		}
	}
	return out, nil
}

func (r *memoryWeights) DistributionStats(ctx context.Context, sourceID *string) ([]DistributionStatRow, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]DistributionStatRow, 0)
	for _, weight := range r.store.Weights {
		if sourceID != nil && weight.SourceID != *sourceID {
			continue
		}
		row := DistributionStatRow{
			OperatorID: weight.OperatorID,
			SourceID:   weight.SourceID,
			Weight:     weight.Weight,
		}
		for i := range r.store.Operators {
			if r.store.Operators[i].ID == weight.OperatorID {
				row.OperatorName = r.store.Operators[i].Name
			}
		}
		for i := range r.store.Sources {
			if r.store.Sources[i].ID == weight.SourceID {
				row.SourceName = r.store.Sources[i].Name
			}
		}
		for _, contact := range r.store.Contacts {
			if contact.SourceID != weight.SourceID {
				continue
			}
			if contact.OperatorID == nil || *contact.OperatorID != weight.OperatorID {
				continue
			}
			row.ContactCount++
			row.AssignedCount++
		}
		out = append(out, row)
	}
	return out, nil
}

type memoryContacts struct{ store *Memory }

func (r *memoryContacts) Create(ctx context.Context, contact *domain.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	contact.ID = uuid.NewString()
	contact.CreatedAt = time.Now()
	r.store.Contacts = append(r.store.Contacts, *contact)
	return nil
}

func (r *memoryContacts) UpdateStatus(ctx context.Context, contact *domain.Contact) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Contacts {
		if r.store.Contacts[i].ID == contact.ID {
			r.store.Contacts[i].Status = contact.Status
			r.store.Contacts[i].ClosedAt = contact.ClosedAt
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryContacts) GetByID(ctx context.Context, id string) (*domain.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i := range r.store.Contacts {
		if r.store.Contacts[i].ID == id {
			contact := r.store.Contacts[i]
			return &contact, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryContacts) CountActiveByOperator(ctx context.Context, operatorID string) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, contact := range r.store.Contacts {
		if contact.OperatorID != nil && *contact.OperatorID == operatorID && contact.Status != domain.ContactStatusClosed {
			count++
		}
	}
	return count, nil
}

func (r *memoryContacts) ListWithFilter(ctx context.Context, filter ContactFilter) ([]domain.Contact, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.Contact, 0)
	for _, contact := range r.store.Contacts {
		if filter.OperatorID != nil && (contact.OperatorID == nil || *contact.OperatorID != *filter.OperatorID) {
			continue
		}
		if filter.SourceID != nil && contact.SourceID != *filter.SourceID {
			continue
		}
		if filter.LeadID != nil && contact.LeadID != *filter.LeadID {
			continue
		}
		out = append(out, contact)
	}
	return paginate(out, filter.Limit, filter.Offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
