package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-distribution/internal/api/dto"
	"github.com/spec-kit/lead-distribution/internal/service"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// SourcesHandler manages source administration endpoints.
type SourcesHandler struct {
	sources *service.SourceService
}

// NewSourcesHandler constructs handler.
func NewSourcesHandler(sources *service.SourceService) *SourcesHandler {
	return &SourcesHandler{sources: sources}
}

// CreateSource POST /sources.
func (h *SourcesHandler) CreateSource(c *fiber.Ctx) error {
	var req dto.CreateSourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	source, err := h.sources.Create(c.UserContext(), req.Name, req.Code)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sourceResponse(source)})
}

// GetSource GET /sources/:id.
func (h *SourcesHandler) GetSource(c *fiber.Ctx) error {
	source, err := h.sources.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sourceResponse(source)})
}

// ListSources GET /sources.
func (h *SourcesHandler) ListSources(c *fiber.Ctx) error {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	sources, err := h.sources.List(c.UserContext(), pageSize, (page-1)*pageSize)
	if err != nil {
		return err
	}
	items := make([]dto.SourceResponse, 0, len(sources))
	for i := range sources {
		items = append(items, sourceResponse(&sources[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// SourceOperators GET /sources/:id/operators.
func (h *SourcesHandler) SourceOperators(c *fiber.Ctx) error {
	source, err := h.sources.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	roster, err := h.sources.Roster(c.UserContext(), source.ID)
	if err != nil {
		return err
	}
	entries := make([]dto.SourceOperatorEntry, 0, len(roster))
	for _, entry := range roster {
		entries = append(entries, dto.SourceOperatorEntry{
			OperatorID:   entry.OperatorID,
			OperatorName: entry.OperatorName,
			Weight:       entry.Weight,
			Active:       entry.Active,
		})
	}
	return c.JSON(fiber.Map{"data": dto.SourceOperatorsResponse{
		SourceID:   source.ID,
		SourceName: source.Name,
		Operators:  entries,
	}})
}
