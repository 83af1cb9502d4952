package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/service"
	"github.com/zagros-construction/zagros-api/internal/utils"
)

// SettingsHandler exposes the settings singleton: public read, gated write.
type SettingsHandler struct {
	service service.SettingsService
	logger  zerolog.Logger
}

// NewSettingsHandler constructs a settings handler.
func NewSettingsHandler(service service.SettingsService, logger zerolog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: service,
		logger:  logger.With().Str("component", "settings_handler").Logger(),
	}
}

// Register wires settings routes.
func (h *SettingsHandler) Register(router fiber.Router, protect fiber.Handler) {
	router.Options("", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })
	router.Get("", h.get)
	router.Post("", protect, h.save)
}

func (h *SettingsHandler) get(c *fiber.Ctx) error {
	settings, err := h.service.Get(c.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to load settings")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load settings")
	}

	return utils.SendSuccess(c, "settings retrieved", settings)
}

func (h *SettingsHandler) save(c *fiber.Ctx) error {
	var payload dto.SettingsSaveRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	settings, err := h.service.Save(c.Context(), payload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingsInvalid):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSettingsConflict):
			return utils.SendError(c, fiber.StatusConflict, "settings were modified concurrently")
		default:
			h.logger.Error().Err(err).Msg("failed to save settings")
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to save settings")
		}
	}

	return utils.SendSuccess(c, "settings saved", settings)
}
