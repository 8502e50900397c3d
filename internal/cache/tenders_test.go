package cache

import (
	"testing"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Tenders_PutThenGet_RoundTrips(t *testing.T) {

	tenders := NewTenders(0)
	tender := models.Tender{
		ID:          "24-101234",
		Title:       "Rénovation énergétique du lycée",
		Budget:      lo.ToPtr(1250000.0),
		Departments: []string{"33"},
		Lots:        []models.Lot{{Number: 1, Title: "Isolation"}},
	}

	tenders.Put(tender)

	got, err := tenders.Get("24-101234")
	assert.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, tender, *got)
}

func Test_Tenders_Get_MissingReturnsNotFound(t *testing.T) {

	tenders := NewTenders(0)

	got, err := tenders.Get("does-not-exist")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, got)
}

func Test_Tenders_Put_ReplacesExistingEntry(t *testing.T) {

	tenders := NewTenders(0)

	tenders.Put(models.Tender{ID: "24-101234", Title: "old title", Score: 50})
	tenders.Put(models.Tender{ID: "24-101234", Title: "new title", Score: 70})

	assert.Equal(t, 1, tenders.Len())

	got, err := tenders.Get("24-101234")
	assert.NoError(t, err)
	assert.Equal(t, "new title", got.Title)
	assert.Equal(t, 70, got.Score)
}

func Test_Tenders_SeedIfEmpty_OnlySeedsOnce(t *testing.T) {

	tenders := NewTenders(0)

	tenders.SeedIfEmpty()
	assert.Equal(t, len(sampleTenders), tenders.Len())

	tenders.Put(models.Tender{ID: "24-101234", Title: "real tender"})
	before := tenders.Len()

	tenders.SeedIfEmpty()
	assert.Equal(t, before, tenders.Len())
}

func Test_Tenders_SeedIfEmpty_SkippedWhenPopulated(t *testing.T) {

	tenders := NewTenders(0)
	tenders.Put(models.Tender{ID: "24-101234"})

	tenders.SeedIfEmpty()

	assert.Equal(t, 1, tenders.Len())
	_, err := tenders.Get(sampleTenders[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
