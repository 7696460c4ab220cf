package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lead-distribution/internal/api/dto"
	"github.com/spec-kit/lead-distribution/internal/repository"
	"github.com/spec-kit/lead-distribution/internal/service"
	apperrors "github.com/spec-kit/lead-distribution/pkg/util"
)

// OperatorsHandler manages operator administration endpoints.
type OperatorsHandler struct {
	operators *service.OperatorService
	load      *service.LoadService
}

// NewOperatorsHandler constructs handler.
func NewOperatorsHandler(operators *service.OperatorService, load *service.LoadService) *OperatorsHandler {
	return &OperatorsHandler{operators: operators, load: load}
}

// CreateOperator POST /operators.
func (h *OperatorsHandler) CreateOperator(c *fiber.Ctx) error {
	var req dto.CreateOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	input := service.OperatorCreateInput{
		Name:    req.Name,
		Email:   req.Email,
		Active:  true,
		MaxLoad: 10,
	}
	if req.Active != nil {
		input.Active = *req.Active
	}
	if req.MaxLoad != nil {
		input.MaxLoad = *req.MaxLoad
	}
	operator, err := h.operators.Create(c.UserContext(), input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": operatorResponse(operator, 0)})
}

// GetOperator GET /operators/:id.
func (h *OperatorsHandler) GetOperator(c *fiber.Ctx) error {
	result, err := h.operators.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": operatorResponse(&result.Operator, result.CurrentLoad)})
}

// ListOperators GET /operators.
func (h *OperatorsHandler) ListOperators(c *fiber.Ctx) error {
	filter := repository.OperatorFilter{}
	if activeOnly, err := strconv.ParseBool(c.Query("active_only", "false")); err == nil && activeOnly {
		active := true
		filter.Active = &active
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 50)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	operators, err := h.operators.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.OperatorResponse, 0, len(operators))
	for i := range operators {
		items = append(items, operatorResponse(&operators[i].Operator, operators[i].CurrentLoad))
	}
	return c.JSON(fiber.Map{"data": items})
}

// UpdateOperator PUT /operators/:id.
func (h *OperatorsHandler) UpdateOperator(c *fiber.Ctx) error {
	var req dto.UpdateOperatorRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	operator, err := h.operators.Update(c.UserContext(), c.Params("id"), service.OperatorUpdateInput{
		Name:    req.Name,
		Email:   req.Email,
		Active:  req.Active,
		MaxLoad: req.MaxLoad,
	})
	if err != nil {
		return err
	}
	load, err := h.load.CurrentLoad(c.UserContext(), operator.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": operatorResponse(operator, load)})
}

// UpsertWeight POST /operators/:id/weights.
func (h *OperatorsHandler) UpsertWeight(c *fiber.Ctx) error {
	var req dto.UpsertWeightRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.SourceID == "" {
		return apperrors.NewValidationError("source_id required", nil)
	}
	weight, err := h.operators.UpsertWeight(c.UserContext(), c.Params("id"), req.SourceID, req.Weight)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": weightResponse(weight)})
}

// OperatorLoad GET /operators/:id/load.
func (h *OperatorsHandler) OperatorLoad(c *fiber.Ctx) error {
	info, err := h.load.Info(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoadInfoResponse{
		OperatorID:   info.OperatorID,
		OperatorName: info.OperatorName,
		CurrentLoad:  info.CurrentLoad,
		MaxLoad:      info.MaxLoad,
		IsAvailable:  info.IsAvailable,
	}})
}
