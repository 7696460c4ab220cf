package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-distribution/internal/api/dto"
	"github.com/spec-kit/lead-distribution/internal/service"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// LeadsHandler manages lead administration endpoints.
type LeadsHandler struct {
	leads *service.LeadService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leads *service.LeadService) *LeadsHandler {
	return &LeadsHandler{leads: leads}
}

// CreateLead POST /leads.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	lead, err := h.leads.Create(c.UserContext(), service.LeadCreateInput{
		ExternalID: req.ExternalID,
		Phone:      req.Phone,
		Email:      req.Email,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": leadResponse(lead)})
}

// GetLead GET /leads/:id.
func (h *LeadsHandler) GetLead(c *fiber.Ctx) error {
	lead, err := h.leads.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": leadResponse(lead)})
}

// ListLeads GET /leads.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	leads, err := h.leads.List(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.LeadResponse, 0, len(leads))
	for i := range leads {
		items = append(items, leadResponse(&leads[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
