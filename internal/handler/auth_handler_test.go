package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/handler"
	"github.com/zagros-construction/zagros-api/internal/service"
)

type mockAuthService struct {
	lastPayload dto.LoginRequest
	resp        dto.LoginResponse
	err         error
}

func (m *mockAuthService) Login(_ context.Context, payload dto.LoginRequest) (dto.LoginResponse, error) {
	m.lastPayload = payload
	return m.resp, m.err
}

func newAuthApp(svc *mockAuthService) *fiber.App {
	app := fiber.New()
	handler.NewAuthHandler(svc, testLogger()).Register(app.Group("/api/admin"))
	return app
}

func TestAuthHandlerLoginSuccess(t *testing.T) {
	svc := &mockAuthService{resp: dto.LoginResponse{Token: "signed-token", ExpiresAt: time.Now().Add(time.Hour)}}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"s3cret"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Success bool              `json:"success"`
		Data    dto.LoginResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.True(t, body.Success)
	require.Equal(t, "signed-token", body.Data.Token)
	require.Equal(t, "admin", svc.lastPayload.Username)
}

func TestAuthHandlerLoginRejected(t *testing.T) {
	svc := &mockAuthService{err: service.ErrInvalidCredentials}
	app := newAuthApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{"username":"admin","password":"wrong"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandlerLoginBadPayload(t *testing.T) {
	app := newAuthApp(&mockAuthService{})

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", strings.NewReader(`{not json`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
