package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/handler"
	"github.com/zagros-construction/zagros-api/internal/service"
)

type mockSettingsService struct {
	lastSave dto.SettingsSaveRequest
	getResp  dto.SettingsResponse
	saveResp dto.SettingsResponse
	saveErr  error
}

func (m *mockSettingsService) Get(_ context.Context) (dto.SettingsResponse, error) {
	return m.getResp, nil
}

func (m *mockSettingsService) Save(_ context.Context, payload dto.SettingsSaveRequest) (dto.SettingsResponse, error) {
	m.lastSave = payload
	if m.saveErr != nil {
		return dto.SettingsResponse{}, m.saveErr
	}
	return m.saveResp, nil
}

func newSettingsApp(svc *mockSettingsService, protect fiber.Handler) *fiber.App {
	app := fiber.New()
	handler.NewSettingsHandler(svc, testLogger()).Register(app.Group("/api/settings"), protect)
	return app
}

func TestSettingsHandlerGetIsPublic(t *testing.T) {
	svc := &mockSettingsService{getResp: dto.SettingsResponse{
		Document: json.RawMessage(`{"company":{"name":"Zagros"}}`),
		Version:  3,
	}}
	app := newSettingsApp(svc, denyAll)

	req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Data dto.SettingsResponse `json:"data"`
	}
	decodeResponse(t, resp, &body)
	require.Equal(t, uint(3), body.Data.Version)
}

func TestSettingsHandlerSaveRequiresSession(t *testing.T) {
	svc := &mockSettingsService{}
	app := newSettingsApp(svc, denyAll)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"document":{}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, svc.lastSave.Document)
}

func TestSettingsHandlerSave(t *testing.T) {
	svc := &mockSettingsService{saveResp: dto.SettingsResponse{Version: 4}}
	app := newSettingsApp(svc, allowAll)

	payload := `{"document":{"company":{"name":"Zagros"}},"version":3}`
	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(payload))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	require.NotNil(t, svc.lastSave.Version)
	require.Equal(t, uint(3), *svc.lastSave.Version)
}

func TestSettingsHandlerSaveConflict(t *testing.T) {
	svc := &mockSettingsService{saveErr: service.ErrSettingsConflict}
	app := newSettingsApp(svc, allowAll)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"document":{},"version":1}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestSettingsHandlerSaveInvalidDocument(t *testing.T) {
	svc := &mockSettingsService{saveErr: service.ErrSettingsInvalid}
	app := newSettingsApp(svc, allowAll)

	req := httptest.NewRequest(http.MethodPost, "/api/settings", strings.NewReader(`{"document":{"bad":true}}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
