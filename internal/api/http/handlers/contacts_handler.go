package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-distribution/internal/api/dto"
	"github.com/spec-kit/lead-distribution/internal/repository"
	"github.com/spec-kit/lead-distribution/internal/service"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// ContactsHandler manages contact intake, listing, closing and stats.
type ContactsHandler struct {
	distribution *service.DistributionService
	stats        *service.StatsService
	leads        *service.LeadService
	sources      *service.SourceService
	load         *service.LoadService
	contacts     repository.ContactRepository
}

// NewContactsHandler constructs handler.
func NewContactsHandler(
	distribution *service.DistributionService,
	stats *service.StatsService,
	leads *service.LeadService,
	sources *service.SourceService,
	load *service.LoadService,
	contacts repository.ContactRepository,
) *ContactsHandler {
	return &ContactsHandler{
		distribution: distribution,
		stats:        stats,
		leads:        leads,
		sources:      sources,
		load:         load,
		contacts:     contacts,
	}
}

// CreateContact POST /contacts. Finds or creates the lead, resolves the
// source by code and distributes the contact among operators.
func (h *ContactsHandler) CreateContact(c *fiber.Ctx) error {
	var req dto.CreateContactRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ExternalLeadID) == "" || strings.TrimSpace(req.SourceCode) == "" {
		return apperrors.NewValidationError("external_lead_id and source_code required", nil)
	}

	lead, err := h.leads.FindOrCreate(c.UserContext(), service.LeadCreateInput{
		ExternalID: req.ExternalLeadID,
		Phone:      req.Phone,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		return err
	}

	source, err := h.sources.GetByCode(c.UserContext(), req.SourceCode)
	if err != nil {
		return err
	}

	result, err := h.distribution.Distribute(c.UserContext(), lead.ID, source.ID, req.Message)
	if err != nil {
		return err
	}

	response := dto.DistributionResponse{
		Contact: contactResponse(result.Contact),
		Lead:    leadResponse(lead),
		Source:  sourceResponse(source),
	}
	if result.Operator != nil {
		load, err := h.load.CurrentLoad(c.UserContext(), result.Operator.ID)
		if err != nil {
			return err
		}
		op := operatorResponse(result.Operator, load)
		response.Operator = &op
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": response})
}

// ListContacts GET /contacts.
func (h *ContactsHandler) ListContacts(c *fiber.Ctx) error {
	filter := repository.ContactFilter{}
	if operatorID := c.Query("operator_id"); operatorID != "" {
		filter.OperatorID = &operatorID
	}
	if sourceID := c.Query("source_id"); sourceID != "" {
		filter.SourceID = &sourceID
	}
	if leadID := c.Query("lead_id"); leadID != "" {
		filter.LeadID = &leadID
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	contacts, err := h.contacts.ListWithFilter(c.UserContext(), filter)
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contactResponse(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// CloseContact PUT /contacts/:id/close.
func (h *ContactsHandler) CloseContact(c *fiber.Ctx) error {
	contact, err := h.distribution.Close(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": contactResponse(contact)})
}

// DistributionStats GET /contacts/stats/distribution.
func (h *ContactsHandler) DistributionStats(c *fiber.Ctx) error {
	var sourceID *string
	if val := c.Query("source_id"); val != "" {
		sourceID = &val
	}
	rows, err := h.stats.Distribution(c.UserContext(), sourceID)
	if err != nil {
		return err
	}
	items := make([]dto.DistributionStatRow, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.DistributionStatRow{
			OperatorID:    row.OperatorID,
			OperatorName:  row.OperatorName,
			SourceID:      row.SourceID,
			SourceName:    row.SourceName,
			Weight:        row.Weight,
			ContactCount:  row.ContactCount,
			AssignedCount: row.AssignedCount,
		})
	}
	return c.JSON(fiber.Map{"data": dto.DistributionStatsResponse{Stats: items}})
}

// LeadContacts GET /contacts/leads/:lead_id.
func (h *ContactsHandler) LeadContacts(c *fiber.Ctx) error {
	lead, err := h.leads.Get(c.UserContext(), c.Params("lead_id"))
	if err != nil {
		return err
	}
	contacts, err := h.contacts.ListWithFilter(c.UserContext(), repository.ContactFilter{
		LeadID: &lead.ID,
		Limit:  100,
	})
	if err != nil {
		return apperrors.MapError(err)
	}
	items := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		items = append(items, contactResponse(&contacts[i]))
	}
	return c.JSON(fiber.Map{"data": dto.LeadContactsResponse{
		Lead:     leadResponse(lead),
		Contacts: items,
	}})
}
