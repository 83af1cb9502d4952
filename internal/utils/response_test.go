package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func performRequest(t *testing.T, handler fiber.Handler) (*http.Response, APIResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	var body APIResponse
	require.NoError(t, json.Unmarshal(data, &body))
	return resp, body
}

func TestSendSuccess(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccess(c, "record created", fiber.Map{"id": 1})
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	require.Equal(t, "record created", body.Message)
	require.NotNil(t, body.Data)
}

func TestSendSuccessWithStatus(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendSuccessWithStatus(c, fiber.StatusCreated, "", fiber.Map{"id": 1})
	})

	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, "success", body.Message)
}

func TestOKIncludesMeta(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return OK(c, []int{1, 2}, "retrieved", fiber.Map{"pagination": fiber.Map{"page": 1}})
	})

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.True(t, body.Success)
	require.NotNil(t, body.Meta)
}

func TestSendError(t *testing.T) {
	resp, body := performRequest(t, func(c *fiber.Ctx) error {
		return SendError(c, fiber.StatusNotFound, "record not found")
	})

	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	require.False(t, body.Success)
	require.Equal(t, "record not found", body.Message)
	require.Nil(t, body.Data)
}
