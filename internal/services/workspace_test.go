package services

import (
	"context"
	"testing"

	"github.com/lecompagnon/boamp-companion/internal/cache"
	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

type mockWorkspaceReader struct {
	interactions []models.Interaction
}

func (m mockWorkspaceReader) GetWorkspace(ctx context.Context, userID string) ([]models.Interaction, error) {
	return m.interactions, nil
}

type mapTenderCache map[string]models.Tender

func (m mapTenderCache) Get(id string) (*models.Tender, error) {
	tender, found := m[id]
	if !found {
		return nil, cache.ErrNotFound
	}
	return &tender, nil
}

func Test_GetEntries_PairsInteractionsWithCachedTenders(t *testing.T) {

	reader := mockWorkspaceReader{interactions: []models.Interaction{
		{UserID: "user-1", TenderID: "A", Status: models.StatusSaved, Notes: "à relire"},
	}}
	tenderCache := mapTenderCache{"A": {ID: "A", Title: "Rénovation de toiture"}}

	workspace := NewWorkspace(reader, tenderCache)

	entries, err := workspace.GetEntries(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "Rénovation de toiture", entries[0].Tender.Title)
	assert.Equal(t, "à relire", entries[0].Interaction.Notes)
}

func Test_GetEntries_OmitsEntriesMissingFromCache(t *testing.T) {

	reader := mockWorkspaceReader{interactions: []models.Interaction{
		{UserID: "user-1", TenderID: "A", Status: models.StatusSaved},
		{UserID: "user-1", TenderID: "B", Status: models.StatusWon},
	}}
	tenderCache := mapTenderCache{"B": {ID: "B", Title: "Entretien des espaces verts"}}

	workspace := NewWorkspace(reader, tenderCache)

	entries, err := workspace.GetEntries(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, "B", entries[0].Tender.ID)
}

func Test_GetEntries_EmptyCacheYieldsEmptyBoard(t *testing.T) {

	reader := mockWorkspaceReader{interactions: []models.Interaction{
		{UserID: "user-1", TenderID: "A", Status: models.StatusSaved},
	}}

	workspace := NewWorkspace(reader, mapTenderCache{})

	entries, err := workspace.GetEntries(context.Background(), "user-1")

	assert.NoError(t, err)
	assert.Empty(t, entries)
}
