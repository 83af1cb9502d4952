package service

import (
	"context"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/models"
)

func newCatalogService(repo *serviceRepoStub, recorder ActivityRecorder) ServiceCatalogService {
	return NewServiceCatalogService(repo, recorder, validator.New(validator.WithRequiredStructEnabled()), testLogger())
}

func TestServiceCatalogCreateAndUpdate(t *testing.T) {
	repo := &serviceRepoStub{}
	recorder := &recorderStub{}
	svc := newCatalogService(repo, recorder)

	created, err := svc.Create(context.Background(), dto.ServiceRequest{
		Name:     "Road Construction",
		Category: "Infrastructure",
	})
	require.NoError(t, err)
	require.Equal(t, uint(1), created.ID)
	require.Equal(t, models.EntityService, recorder.entries[0].EntityType)

	updated, err := svc.Update(context.Background(), dto.ServiceRequest{
		ID:       created.ID,
		Name:     "Road and Bridge Construction",
		Category: "Infrastructure",
	})
	require.NoError(t, err)
	require.Equal(t, "Road and Bridge Construction", updated.Name)

	_, err = svc.Update(context.Background(), dto.ServiceRequest{ID: 42, Name: "Ghost"})
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestServiceCatalogSearch(t *testing.T) {
	repo := &serviceRepoStub{}
	svc := newCatalogService(repo, nil)

	_, err := svc.Create(context.Background(), dto.ServiceRequest{Name: "Land Surveying", Category: "Surveying"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), dto.ServiceRequest{Name: "Road Construction", Category: "Infrastructure"})
	require.NoError(t, err)

	resp, err := svc.List(context.Background(), ListQuery{Search: "survey"})
	require.NoError(t, err)
	require.Len(t, resp.Items, 1)
	require.Equal(t, "Land Surveying", resp.Items[0].Name)
}

func TestServiceCatalogCSVRoundTrip(t *testing.T) {
	repo := &serviceRepoStub{}
	svc := newCatalogService(repo, nil)

	_, err := svc.Create(context.Background(), dto.ServiceRequest{
		Name:        "Land Surveying",
		Description: "Topographic surveys",
		Images:      []string{"survey.jpg"},
		Category:    "Surveying",
	})
	require.NoError(t, err)

	exported, err := svc.ExportCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(exported)), "\n")
	require.Equal(t, "Name,Description,Images,Category", lines[0])

	target := &serviceRepoStub{}
	targetSvc := newCatalogService(target, nil)

	result, err := targetSvc.ImportCSV(context.Background(), strings.NewReader(string(exported)))
	require.NoError(t, err)
	require.Equal(t, 1, result.Succeeded)
	require.Equal(t, "Land Surveying", target.items[0].Name)
	require.Equal(t, []string{"survey.jpg"}, target.items[0].Images)
}
