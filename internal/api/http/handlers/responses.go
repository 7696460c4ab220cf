package handlers

import (
	"strconv"

	"github.com/spec-kit/lead-distribution/internal/api/dto"
	"github.com/spec-kit/lead-distribution/internal/domain"
)

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func contactResponse(contact *domain.Contact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:         contact.ID,
		LeadID:     contact.LeadID,
		SourceID:   contact.SourceID,
		OperatorID: contact.OperatorID,
		Message:    contact.Message,
		Status:     contact.Status,
		AssignedAt: contact.AssignedAt,
		ClosedAt:   contact.ClosedAt,
		CreatedAt:  contact.CreatedAt,
	}
}

func leadResponse(lead *domain.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:         lead.ID,
		ExternalID: lead.ExternalID,
		Phone:      lead.Phone,
		Email:      lead.Email,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}

func sourceResponse(source *domain.Source) dto.SourceResponse {
	return dto.SourceResponse{
		ID:        source.ID,
		Name:      source.Name,
		Code:      source.Code,
		CreatedAt: source.CreatedAt,
	}
}

func operatorResponse(operator *domain.Operator, currentLoad int) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:          operator.ID,
		Name:        operator.Name,
		Email:       operator.Email,
		Active:      operator.Active,
		MaxLoad:     operator.MaxLoad,
		CurrentLoad: currentLoad,
		CreatedAt:   operator.CreatedAt,
		UpdatedAt:   operator.UpdatedAt,
	}
}

func weightResponse(weight *domain.OperatorSourceWeight) dto.WeightResponse {
	return dto.WeightResponse{
		ID:         weight.ID,
		OperatorID: weight.OperatorID,
		SourceID:   weight.SourceID,
		Weight:     weight.Weight,
		CreatedAt:  weight.CreatedAt,
		UpdatedAt:  weight.UpdatedAt,
	}
}
