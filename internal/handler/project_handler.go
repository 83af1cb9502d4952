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

// ProjectHandler exposes the method-routed project resource. GET and OPTIONS
// are public; mutating methods require the admin session middleware supplied
// at registration.
type ProjectHandler struct {
	service service.ProjectService
	logger  zerolog.Logger
}

// NewProjectHandler constructs a project handler.
func NewProjectHandler(service service.ProjectService, logger zerolog.Logger) *ProjectHandler {
	return &ProjectHandler{
		service: service,
		logger:  logger.With().Str("component", "project_handler").Logger(),
	}
}

// Register wires project routes.
func (h *ProjectHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Options("", h.options)
	router.Get("", h.list)
	router.Post("", protect, h.create)
	router.Put("", protect, h.update)
	router.Delete("", protect, h.delete)
	router.Post("/bulk-delete", protect, h.bulkDelete)
	router.Get("/export", protect, h.exportCSV)
	router.Post("/import", protect, h.importCSV)
}

func (h *ProjectHandler) options(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusOK)
}

func (h *ProjectHandler) list(c *fiber.Ctx) error {
	query, err := parseListQuery(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.service.List(c.Context(), query)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to list projects")
	}

	meta := fiber.Map{
		"pagination": result.Pagination,
		"filters": fiber.Map{
			"search":   query.Search,
			"category": query.Category,
		},
	}

	return utils.OK(c, result.Items, "projects retrieved", meta)
}

func (h *ProjectHandler) create(c *fiber.Ctx) error {
	var payload dto.ProjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	project, err := h.service.Create(c.Context(), payload)
	if err != nil {
		if isValidationError(err) {
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		}
		h.logger.Error().Err(err).Msg("failed to create project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to create project")
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "project created", project)
}

func (h *ProjectHandler) update(c *fiber.Ctx) error {
	var payload dto.ProjectRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if payload.ID == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "id is required")
	}

	project, err := h.service.Update(c.Context(), payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProjectNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "project not found")
		default:
			h.logger.Error().Err(err).Uint("project_id", payload.ID).Msg("failed to update project")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to update project")
		}
	}

	return utils.SendSuccess(c, "project updated", project)
}

func (h *ProjectHandler) delete(c *fiber.Ctx) error {
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
		h.logger.Error().Err(err).Uint("project_id", payload.ID).Msg("failed to delete project")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to delete project")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProjectHandler) bulkDelete(c *fiber.Ctx) error {
	var payload dto.BulkDeleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}
	if len(payload.IDs) == 0 {
		return utils.SendError(c, fiber.StatusBadRequest, "ids are required")
	}

	result, err := h.service.BulkDelete(c.Context(), payload.IDs)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to bulk delete projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to bulk delete projects")
	}

	return utils.SendSuccess(c, "bulk delete completed", result)
}

func (h *ProjectHandler) exportCSV(c *fiber.Ctx) error {
	data, err := h.service.ExportCSV(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export projects")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export projects")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="projects.csv"`)
	return c.Send(data)
}

func (h *ProjectHandler) importCSV(c *fiber.Ctx) error {
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
