package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/zagros-construction/zagros-api/internal/service"
)

var (
	errInvalidFrom = errors.New("invalid from date")
	errInvalidTo   = errors.New("invalid to date")
)

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}

// parseQueryDate accepts RFC 3339 timestamps or bare YYYY-MM-DD dates. A bare
// "to" date is pushed to the end of its day so the range stays inclusive.
func parseQueryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}

	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// parseListQuery extracts the shared catalog filter parameters.
func parseListQuery(c *fiber.Ctx) (service.ListQuery, error) {
	page, err := parseQueryInt(c, "page")
	if err != nil {
		return service.ListQuery{}, errors.New("invalid page")
	}
	pageSize, err := parseQueryInt(c, "pageSize")
	if err != nil {
		return service.ListQuery{}, errors.New("invalid page size")
	}
	from, err := parseQueryDate(c, "from", false)
	if err != nil {
		return service.ListQuery{}, errInvalidFrom
	}
	to, err := parseQueryDate(c, "to", true)
	if err != nil {
		return service.ListQuery{}, errInvalidTo
	}

	return service.ListQuery{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		From:     from,
		To:       to,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func isValidationError(err error) bool {
	var validationErrors validator.ValidationErrors
	return errors.As(err, &validationErrors)
}
