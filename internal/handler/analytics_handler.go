package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/service"
	"github.com/zagros-construction/zagros-api/internal/utils"
)

// AnalyticsHandler exposes the dashboard summary and its CSV export.
type AnalyticsHandler struct {
	service service.AnalyticsService
	logger  zerolog.Logger
}

// NewAnalyticsHandler constructs an analytics handler.
func NewAnalyticsHandler(service service.AnalyticsService, logger zerolog.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service: service,
		logger:  logger.With().Str("component", "analytics_handler").Logger(),
	}
}

// Register wires analytics routes.
func (h *AnalyticsHandler) Register(router fiber.Router) {
	router.Get("", h.summary)
	router.Get("/export", h.exportCSV)
}

func (h *AnalyticsHandler) summary(c *fiber.Ctx) error {
	filter, err := parseAnalyticsFilter(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	summary, err := h.service.GetSummary(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to build analytics summary")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build analytics summary")
	}

	return utils.SendSuccess(c, "analytics summary retrieved", summary)
}

func (h *AnalyticsHandler) exportCSV(c *fiber.Ctx) error {
	filter, err := parseAnalyticsFilter(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	data, err := h.service.ExportCSV(c.Context(), filter)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to export analytics")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to export analytics")
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="analytics.csv"`)
	return c.Send(data)
}

func parseAnalyticsFilter(c *fiber.Ctx) (dto.AnalyticsFilter, error) {
	from, err := parseQueryDate(c, "from", false)
	if err != nil {
		return dto.AnalyticsFilter{}, errInvalidFrom
	}
	to, err := parseQueryDate(c, "to", true)
	if err != nil {
		return dto.AnalyticsFilter{}, errInvalidTo
	}

	return dto.AnalyticsFilter{
		Category: strings.TrimSpace(c.Query("category")),
		Action:   strings.TrimSpace(c.Query("action")),
		From:     from,
		To:       to,
	}, nil
}
