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

// LeadService manages leads, deduplicated by their external identifier.
type LeadService struct {
	leads repository.LeadRepository
}

// NewLeadService creates the service.
func NewLeadService(leads repository.LeadRepository) *LeadService {
	return &LeadService{leads: leads}
}

// LeadCreateInput describes lead creation payload.
type LeadCreateInput struct {
	ExternalID string
	Phone      string
	Email      *string
	FirstName  *string
	LastName   *string
}

// Create registers a new lead. The external identifier must be unused.
func (s *LeadService) Create(ctx context.Context, input LeadCreateInput) (*domain.Lead, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, apperrors.NewValidationError("external_id required", nil)
	}
	if _, err := s.leads.GetByExternalID(ctx, externalID); err == nil {
		return nil, apperrors.NewConflict("lead already exists", map[string]any{"external_id": externalID})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}

	lead := &domain.Lead{
		ExternalID: externalID,
		Phone:      strings.TrimSpace(input.Phone),
		Email:      input.Email,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
	}
	if err := s.leads.Create(ctx, lead); err != nil {
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

// FindOrCreate returns the lead for the external identifier, creating it on
// first contact.
func (s *LeadService) FindOrCreate(ctx context.Context, input LeadCreateInput) (*domain.Lead, error) {
	externalID := strings.TrimSpace(input.ExternalID)
	if externalID == "" {
		return nil, apperrors.NewValidationError("external_id required", nil)
	}
	lead, err := s.leads.GetByExternalID(ctx, externalID)
	if err == nil {
		return lead, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.MapError(err)
	}
	return s.Create(ctx, input)
}

// Get returns a lead by id.
func (s *LeadService) Get(ctx context.Context, id string) (*domain.Lead, error) {
	lead, err := s.leads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("lead", map[string]any{"lead_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return lead, nil
}

// List returns leads with pagination.
func (s *LeadService) List(ctx context.Context, limit, offset int) ([]domain.Lead, error) {
	leads, err := s.leads.List(ctx, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return leads, nil
}
