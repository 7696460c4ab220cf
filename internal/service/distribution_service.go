package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lead-distribution/internal/domain"
	"github.com/spec-kit/lead-distribution/internal/events"
	"github.com/spec-kit/lead-distribution/internal/repository"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// DistributionService routes inbound contacts to operators. Every Distribute
// call persists exactly one contact, assigned or not; retried calls create a
// second contact, deduplication is the caller's concern.
//
// The resolve, select and persist steps run without any cross-step lock.
// Two concurrent calls may read the same load before either commits and push
// an operator transiently past its maximum. That skew is accepted: the cap is
// a soft limit, and tightening it belongs in the data layer, not here.
type DistributionService struct {
	contacts   repository.ContactRepository
	weights    repository.WeightRepository
	operators  repository.OperatorRepository
	load       *LoadService
	selector   *Selector
	dispatcher events.Dispatcher
}

// DistributionDependencies bundles collaborators.
type DistributionDependencies struct {
	ContactRepo  repository.ContactRepository
	WeightRepo   repository.WeightRepository
	OperatorRepo repository.OperatorRepository
	Load         *LoadService
	Selector     *Selector
	Dispatcher   events.Dispatcher
}

// NewDistributionService creates the service.
func NewDistributionService(deps DistributionDependencies) *DistributionService {
	return &DistributionService{
		contacts:   deps.ContactRepo,
		weights:    deps.WeightRepo,
		operators:  deps.OperatorRepo,
		load:       deps.Load,
		selector:   deps.Selector,
		dispatcher: deps.Dispatcher,
	}
}

// DistributionResult is the outcome of one distribution. Operator is nil when
// no candidate qualified.
type DistributionResult struct {
	Contact  *domain.Contact
	Operator *domain.Operator
}

// AvailableCandidates returns the weighted roster for a source narrowed to
// operators that can take another contact. Zero-weight entries stay in: weight
// only shapes probability, not eligibility. An empty result is a legitimate
// "no distribution possible" outcome, not an error.
func (s *DistributionService) AvailableCandidates(ctx context.Context, sourceID string) ([]Candidate, error) {
	resolved, err := s.resolveCandidates(ctx, sourceID)
	if err != nil {
		return nil, err
	}
	candidates := make([]Candidate, 0, len(resolved))
	for _, entry := range resolved {
		candidates = append(candidates, Candidate{OperatorID: entry.operator.ID, Weight: entry.weight})
	}
	return candidates, nil
}

type resolvedCandidate struct {
	operator *domain.Operator
	weight   int
}

func (s *DistributionService) resolveCandidates(ctx context.Context, sourceID string) ([]resolvedCandidate, error) {
	rows, err := s.weights.ListBySource(ctx, sourceID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]resolvedCandidate, 0, len(rows))
	for _, row := range rows {
		operator, err := s.operators.GetByID(ctx, row.OperatorID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				// weight row pointing at a deleted operator; skip it
				continue
			}
			return nil, apperrors.MapError(err)
		}
		available, err := s.load.IsAvailable(ctx, operator)
		if err != nil {
			return nil, err
		}
		if available {
			result = append(result, resolvedCandidate{operator: operator, weight: row.Weight})
		}
	}
	return result, nil
}

// Distribute assigns the inbound contact to an operator selected from the
// source's available roster, or records it unassigned when nobody qualifies.
func (s *DistributionService) Distribute(ctx context.Context, leadID, sourceID, message string) (*DistributionResult, error) {
	resolved, err := s.resolveCandidates(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	contact := &domain.Contact{
		LeadID:   leadID,
		SourceID: sourceID,
		Message:  message,
		Status:   domain.ContactStatusNew,
	}

	var chosen *domain.Operator
	var chosenWeight int
	if len(resolved) > 0 {
		candidates := make([]Candidate, 0, len(resolved))
		byID := make(map[string]resolvedCandidate, len(resolved))
		for _, entry := range resolved {
			candidates = append(candidates, Candidate{OperatorID: entry.operator.ID, Weight: entry.weight})
			byID[entry.operator.ID] = entry
		}
		operatorID, err := s.selector.Pick(candidates)
		if err != nil {
			return nil, apperrors.NewInternalError(err)
		}
		entry := byID[operatorID]
		chosen = entry.operator
		chosenWeight = entry.weight

		now := time.Now()
		contact.OperatorID = &chosen.ID
		contact.AssignedAt = &now
	}

	if err := s.contacts.Create(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactCreated,
		ContactID: contact.ID,
		Payload: events.ContactCreatedPayload{
			LeadID:   leadID,
			SourceID: sourceID,
			Assigned: contact.Assigned(),
		},
	})
	if chosen != nil {
		s.publishEvent(ctx, events.Event{
			Type:      events.EventContactAssigned,
			ContactID: contact.ID,
			Payload: events.ContactAssignedPayload{
				OperatorID: chosen.ID,
				SourceID:   sourceID,
				Weight:     chosenWeight,
			},
		})
	}

	return &DistributionResult{Contact: contact, Operator: chosen}, nil
}

// Close marks the contact closed and stamps the closing time. Closing an
// already-closed contact re-stamps ClosedAt rather than failing; callers that
// retry a close see the later timestamp.
func (s *DistributionService) Close(ctx context.Context, contactID string) (*domain.Contact, error) {
	contact, err := s.contacts.GetByID(ctx, contactID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("contact", map[string]any{"contact_id": contactID})
		}
		return nil, apperrors.MapError(err)
	}

	now := time.Now()
	contact.Status = domain.ContactStatusClosed
	contact.ClosedAt = &now
	if err := s.contacts.UpdateStatus(ctx, contact); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:      events.EventContactClosed,
		ContactID: contact.ID,
		Payload: events.ContactClosedPayload{
			OperatorID: contact.OperatorID,
		},
	})
	return contact, nil
}

func (s *DistributionService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
