package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T) *DbContext {
	t.Helper()

	dbContext, err := NewDbContext(":memory:")
	require.NoError(t, err)
	require.NoError(t, dbContext.Migrate())

	t.Cleanup(func() { _ = dbContext.Close() })
	return dbContext
}

func Test_Interactions_Upsert_IsIdempotent(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	err := repo.Upsert(ctx, "user-1", "24-101234", models.StatusSaved, lo.ToPtr("first note"))
	assert.NoError(t, err)
	err = repo.Upsert(ctx, "user-1", "24-101234", models.StatusSaved, lo.ToPtr("second note"))
	assert.NoError(t, err)

	interactions, err := repo.GetByUser(ctx, "user-1")
	assert.NoError(t, err)
	require.Len(t, interactions, 1)
	assert.Equal(t, models.StatusSaved, interactions[0].Status)
	assert.Equal(t, "second note", interactions[0].Notes)
}

func Test_Interactions_Upsert_NilNotesKeepsExistingNotes(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "24-101234", models.StatusSaved, lo.ToPtr("keep me")))
	require.NoError(t, repo.Upsert(ctx, "user-1", "24-101234", models.StatusWon, nil))

	interaction, err := repo.GetByUserAndTender(ctx, "user-1", "24-101234")
	assert.NoError(t, err)
	require.NotNil(t, interaction)
	assert.Equal(t, models.StatusWon, interaction.Status)
	assert.Equal(t, "keep me", interaction.Notes)
}

func Test_Interactions_Upsert_SeparateUsersGetSeparateRows(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "24-101234", models.StatusSaved, nil))
	require.NoError(t, repo.Upsert(ctx, "user-2", "24-101234", models.StatusBlacklisted, nil))

	first, err := repo.GetByUser(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := repo.GetByUser(ctx, "user-2")
	assert.NoError(t, err)
	assert.Len(t, second, 1)
	assert.Equal(t, models.StatusBlacklisted, second[0].Status)
}

func Test_Interactions_TriagedIDs_ExcludesToQualify(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "A", models.StatusBlacklisted, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "B", models.StatusSaved, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "C", models.StatusToQualify, nil))

	ids, err := repo.TriagedIDs(ctx, "user-1")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"A", "B"}, ids)
}

func Test_Interactions_GetWorkspace_ReturnsSavedWonLostOnly(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "A", models.StatusSaved, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "B", models.StatusBlacklisted, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "C", models.StatusWon, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "D", models.StatusLost, nil))

	workspace, err := repo.GetWorkspace(ctx, "user-1")
	assert.NoError(t, err)

	ids := lo.Map(workspace, func(i models.Interaction, _ int) string { return i.TenderID })
	assert.ElementsMatch(t, []string{"A", "C", "D"}, ids)
}

func Test_Interactions_Reminders_SetAndSweep(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "A", models.StatusSaved, nil))
	require.NoError(t, repo.Upsert(ctx, "user-1", "B", models.StatusSaved, nil))

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(24 * time.Hour)
	require.NoError(t, repo.SetReminder(ctx, "user-1", "A", past))
	require.NoError(t, repo.SetReminder(ctx, "user-1", "B", future))

	due, err := repo.GetDueReminders(ctx, time.Now())
	assert.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "A", due[0].TenderID)

	require.NoError(t, repo.ClearReminder(ctx, "user-1", "A"))
	due, err = repo.GetDueReminders(ctx, time.Now())
	assert.NoError(t, err)
	assert.Empty(t, due)
}

func Test_Interactions_SaveAnalysis_RoundTrip(t *testing.T) {

	repo := NewInteractionsRepository(newTestContext(t).DB)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "user-1", "A", models.StatusSaved, nil))
	require.NoError(t, repo.SaveAnalysis(ctx, "user-1", "A",
		`{"risks":["délai court"],"strengths":["périmètre connu"],"workload":"3 semaines","questions":[]}`))

	interaction, err := repo.GetByUserAndTender(ctx, "user-1", "A")
	assert.NoError(t, err)
	require.NotNil(t, interaction)

	analysis, err := interaction.AnalysisResult()
	assert.NoError(t, err)
	require.NotNil(t, analysis)
	assert.Equal(t, []string{"délai court"}, analysis.Risks)
	assert.Equal(t, "3 semaines", analysis.Workload)
}
