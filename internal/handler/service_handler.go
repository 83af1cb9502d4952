package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/service"
	"github.com/zagros-construction/zagros-api/internal/utils"
)

// ServiceHandler exposes the method-routed service resource.
type ServiceHandler struct {
	service service.ServiceCatalogService
	logger  zerolog.Logger
}

// NewServiceHandler constructs a service catalog handler.
func NewServiceHandler(service service.ServiceCatalogService, logger zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{
		service: service,
		logger:  logger.With().Str("component", "service_handler").Logger(),
	}
}

// Register wires service catalog routes.
func (h *ServiceHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Options("", h.options)
	router.Get("", h.list)
	router.Post("", protect, h.create)
	router.Put("", protect, h.update)
	router.Delete("", protect, h.delete)
	router.Post("/bulk-delete", protect, h.bulkDelete)
	router.Get("/export", protect, h.exportCSV)
	router.Post("/import", protect, h.importCSV)
}

func (h *ServiceHandler) options(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func (h *ServiceHandler) list(c *fiber.Ctx) error {
	query, err := parseListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list services")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list services")
	}

	meta := fiber.Map{
		"pagination": result.Pagination,
		"filters": fiber.Map{
			"search":   query.Search,
			"category": query.Category,
		},
	}

	return utils.OK(c, result.Items, "services retrieved", meta)
}

func (h *ServiceHandler) create(c *fiber.Ctx) error {
	var payload dto.ServiceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	item, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create service")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create service")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "service created", item)
}

func (h *ServiceHandler) update(c *fiber.Ctx) error {
	var payload dto.ServiceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.ID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "id is required")
	}

	item, err := h.service.Update(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrServiceNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "service not found")
		default:
			h.logger.Error().Err(err).Uint("service_id", payload.ID).Msg("failed to update service")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update service")
		}
	}

	return utils.SendSuccess(c, "service updated", item)
}

func (h *ServiceHandler) delete(c *fiber.Ctx) error {
	var payload struct {
		ID uint `json:"id"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.ID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "id is required")
	}

	if err := h.service.Delete(c.Context(), payload.ID); err != nil {
		h.logger.Error().Err(err).Uint("service_id", payload.ID).Msg("failed to delete service")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete service")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ServiceHandler) bulkDelete(c *fiber.Ctx) error {
	var payload dto.BulkDeleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if len(payload.IDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "ids are required")
	}

	result, err := h.service.BulkDelete(c.Context(), payload.IDs)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to bulk delete services")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to bulk delete services")
	}

	return utils.SendSuccess(c, "bulk delete completed", result)
}

func (h *ServiceHandler) exportCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export services")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export services")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="services.csv"`)
	return c.Send(data)
}

func (h *ServiceHandler) importCSV(c *fiber.Ctx) error {
	body := c.Body()
	if len(body) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "csv body is required")
	}

	result, err := h.service.ImportCSV(c.Context(), bytes.NewReader(body))
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "failed to parse csv")
	}

	return utils.SendSuccess(c, "import completed", result)
}
