package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zagros-construction/zagros-api/internal/dto"
	"github.com/zagros-construction/zagros-api/internal/models"
)

func TestActivityRecordNormalisesFields(t *testing.T) {
	repo := &activityRepoStub{}
	svc := NewActivityService(repo, testLogger())

	id := uint(7)
	err := svc.Record(context.Background(), ActivityEntry{
		EntityType: "  Project ",
		Action:     " ADD ",
		EntityID:   &id,
		Metadata:   map[string]interface{}{"name": "Bridge"},
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)
	require.Equal(t, models.EntityProject, repo.entries[0].EntityType)
	require.Equal(t, models.ActionAdd, repo.entries[0].Action)
	require.Equal(t, uint(7), *repo.entries[0].EntityID)
}

func TestActivityRecordRejectsBlankFields(t *testing.T) {
	svc := NewActivityService(&activityRepoStub{}, testLogger())

	require.Error(t, svc.Record(context.Background(), ActivityEntry{EntityType: models.EntityProject}))
	require.Error(t, svc.Record(context.Background(), ActivityEntry{Action: models.ActionAdd}))
}

func TestActivityList(t *testing.T) {
	repo := &activityRepoStub{}
	svc := NewActivityService(repo, testLogger())

	for _, action := range []string{models.ActionAdd, models.ActionUpdate, models.ActionAdd} {
		require.NoError(t, svc.Record(context.Background(), ActivityEntry{
			EntityType: models.EntityProject,
			Action:     action,
		}))
	}

	resp, err := svc.List(context.Background(), dto.ActivityListRequest{Action: models.ActionAdd, Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, resp.Items, 2)
	require.Equal(t, int64(2), resp.Pagination.TotalItems)
	for _, item := range resp.Items {
		require.Equal(t, models.ActionAdd, item.Action)
		require.NotNil(t, item.Metadata)
	}
}
