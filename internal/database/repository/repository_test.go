package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestCampaignRepository_CreateUpdateSummary(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	found, err := repos.Campaigns.FindByID(ctx, "X1")
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{
		ID:       "X1",
		Label:    "first",
		Metadata: datatypes.JSON(`{}`),
	}))

	exists, err := repos.Campaigns.ExistsByID(ctx, "X1")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repos.Campaigns.Update(ctx, &models.Campaign{
		ID:       "X1",
		Label:    "second",
		Metadata: datatypes.JSON(`{"a":1}`),
	}))

	found, err = repos.Campaigns.FindByID(ctx, "X1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "second", found.Label)
	assert.JSONEq(t, `{"a":1}`, string(found.Metadata))

	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID: "Q2", Label: "q2", Value: datatypes.JSON(`{}`), CampaignID: strPtr("X1"),
	}))
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID: "Q1", Label: "q1", Value: datatypes.JSON(`{}`), CampaignID: strPtr("X1"),
	}))

	summary, err := repos.Campaigns.GetSummary(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, "second", summary.Label)
	assert.Equal(t, []string{"Q1", "Q2"}, summary.QuestionnaireIDs)
	assert.True(t, summary.HasQuestionnaire("Q1"))
	assert.False(t, summary.HasQuestionnaire("Q3"))

	_, err = repos.Campaigns.GetSummary(ctx, "UNKNOWN")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestQuestionnaireModelRepository_ReplaceNomenclatures(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	for _, id := range []string{"N1", "N2", "N3"} {
		require.NoError(t, repos.Nomenclatures.Create(ctx, &models.Nomenclature{
			ID: id, Label: id, Value: datatypes.JSON(`[]`),
		}))
	}
	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{ID: "X1", Metadata: datatypes.JSON(`{}`)}))

	noms, err := repos.Nomenclatures.GetByIDs(ctx, []string{"N1", "N2"})
	require.NoError(t, err)
	require.Len(t, noms, 2)

	qm := &models.QuestionnaireModel{
		ID:            "Q1",
		Label:         "first",
		Value:         datatypes.JSON(`{"k":"v"}`),
		CampaignID:    strPtr("X1"),
		Nomenclatures: noms,
	}
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, qm))

	ids, err := repos.QuestionnaireModels.RequiredNomenclatureIDs(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, []string{"N1", "N2"}, ids)

	noms, err = repos.Nomenclatures.GetByIDs(ctx, []string{"N3"})
	require.NoError(t, err)
	require.NoError(t, repos.QuestionnaireModels.Update(ctx, &models.QuestionnaireModel{
		ID:            "Q1",
		Label:         "second",
		Value:         datatypes.JSON(`{"k":"w"}`),
		CampaignID:    strPtr("X1"),
		Nomenclatures: noms,
	}))

	found, err := repos.QuestionnaireModels.FindByID(ctx, "Q1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "second", found.Label)
	assert.JSONEq(t, `{"k":"w"}`, string(found.Value))
	assert.Equal(t, []string{"N3"}, found.NomenclatureIDs())

	require.NoError(t, repos.QuestionnaireModels.Update(ctx, &models.QuestionnaireModel{
		ID: "Q1", Label: "third", Value: datatypes.JSON(`{}`), CampaignID: strPtr("X1"),
	}))
	ids, err = repos.QuestionnaireModels.RequiredNomenclatureIDs(ctx, "Q1")
	require.NoError(t, err)
	assert.Empty(t, ids)

	// the referenced nomenclature is untouched by the link updates
	n3, err := repos.Nomenclatures.FindByID(ctx, "N3")
	require.NoError(t, err)
	require.NotNil(t, n3)
	assert.Equal(t, "N3", n3.Label)
}

func TestSurveyUnitRepository_CreateBatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repos := NewRepositories(db)
	ctx := context.Background()

	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{ID: "X1", Metadata: datatypes.JSON(`{}`)}))

	units := []models.SurveyUnit{
		{ID: "SU1", CampaignID: "X1", QuestionnaireModelID: "Q1", Data: datatypes.JSON(`{}`), Comment: datatypes.JSON(`{}`)},
		{ID: "SU2", CampaignID: "X1", QuestionnaireModelID: "Q1", Data: datatypes.JSON(`{}`), Comment: datatypes.JSON(`{}`)},
	}
	require.NoError(t, repos.SurveyUnits.CreateBatch(ctx, units))

	existing, err := repos.SurveyUnits.ExistingIDs(ctx, []string{"SU2", "SU3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"SU2"}, existing)

	count, err := repos.SurveyUnits.CountByCampaignID(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	stored, err := repos.SurveyUnits.GetByCampaignID(ctx, "X1")
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, "SU1", stored[0].ID)
}

func TestUnitOfWork_RollsBackOnError(t *testing.T) {
	db := testutil.NewTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.Do(ctx, func(repos *Repositories) error {
		if err := repos.Campaigns.Create(ctx, &models.Campaign{ID: "X1", Metadata: datatypes.JSON(`{}`)}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	exists, err := NewCampaignRepository(db).ExistsByID(ctx, "X1")
	require.NoError(t, err)
	assert.False(t, exists)
}
