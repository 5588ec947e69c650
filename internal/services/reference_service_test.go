package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/testutil"
)

func seedReferenceData(t *testing.T, db *gorm.DB) {
	t.Helper()
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	campaignID := "VQS2021X00"
	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{
		ID:       campaignID,
		Label:    "quality survey",
		Metadata: datatypes.JSON(`{"variables":{"Year":"2021"}}`),
	}))
	for _, id := range []string{"cities2019", "regions2019"} {
		require.NoError(t, repos.Nomenclatures.Create(ctx, &models.Nomenclature{
			ID:    id,
			Label: id,
			Value: datatypes.JSON(`[{"id":"1","label":"one"}]`),
		}))
	}
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID:            "Q1",
		Label:         "first",
		Value:         datatypes.JSON(`{"components":[]}`),
		CampaignID:    &campaignID,
		Nomenclatures: []models.Nomenclature{{ID: "regions2019"}, {ID: "cities2019"}},
	}))
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID:            "Q2",
		Label:         "second",
		Value:         datatypes.JSON(`{}`),
		CampaignID:    &campaignID,
		Nomenclatures: []models.Nomenclature{{ID: "cities2019"}},
	}))
}

func newReferenceService(t *testing.T) (*ReferenceService, *miniredis.Miniredis, *redis.Client, *gorm.DB) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	db := testutil.NewTestDB(t)
	seedReferenceData(t, db)
	return NewReferenceService(db, cache.NewReadThrough(client, "queen", time.Minute)), mr, client, db
}

func TestReferenceService_Nomenclature(t *testing.T) {
	svc, mr, _, _ := newReferenceService(t)
	ctx := context.Background()

	nomenclature, err := svc.GetNomenclature(ctx, "cities2019")
	require.NoError(t, err)
	assert.Equal(t, "cities2019", nomenclature.ID)
	assert.JSONEq(t, `[{"id":"1","label":"one"}]`, string(nomenclature.Value))
	assert.True(t, mr.Exists("queen:nomenclature:cities2019"))

	_, err = svc.GetNomenclature(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.False(t, mr.Exists("queen:nomenclature:unknown"))
}

func TestReferenceService_QuestionnaireNomenclatures(t *testing.T) {
	svc, _, _, _ := newReferenceService(t)
	ctx := context.Background()

	ids, err := svc.GetQuestionnaireNomenclatureIDs(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, []string{"cities2019", "regions2019"}, ids)

	_, err = svc.GetQuestionnaireNomenclatureIDs(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNotFound)

	campaignIDs, err := svc.GetCampaignNomenclatureIDs(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.Equal(t, []string{"cities2019", "regions2019"}, campaignIDs)

	_, err = svc.GetCampaignNomenclatureIDs(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReferenceService_NewQuestionnaireIsVisibleWithoutEviction(t *testing.T) {
	svc, mr, _, db := newReferenceService(t)
	ctx := context.Background()

	exists, err := svc.QuestionnaireExists(ctx, "Q3")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.False(t, mr.Exists("queen:questionnaire_exist:Q3"))

	_, err = svc.GetCampaignNomenclatureIDs(ctx, "VQS2021X00")
	require.NoError(t, err)

	campaignID := "VQS2021X00"
	repos := repository.NewRepositories(db)
	require.NoError(t, repos.Nomenclatures.Create(ctx, &models.Nomenclature{
		ID:    "countries2019",
		Label: "countries",
		Value: datatypes.JSON(`[]`),
	}))
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID:            "Q3",
		Label:         "third",
		Value:         datatypes.JSON(`{}`),
		CampaignID:    &campaignID,
		Nomenclatures: []models.Nomenclature{{ID: "countries2019"}},
	}))

	exists, err = svc.QuestionnaireExists(ctx, "Q3")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.True(t, mr.Exists("queen:questionnaire_exist:Q3"))

	ids, err := svc.GetCampaignNomenclatureIDs(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.Equal(t, []string{"cities2019", "countries2019", "regions2019"}, ids)
}

func TestReferenceService_CampaignSurveyUnits(t *testing.T) {
	svc, _, _, db := newReferenceService(t)
	ctx := context.Background()

	empty, err := svc.GetCampaignSurveyUnits(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.Equal(t, int64(0), empty.Total)
	assert.Empty(t, empty.SurveyUnits)

	require.NoError(t, repository.NewSurveyUnitRepository(db).CreateBatch(ctx, []models.SurveyUnit{
		{ID: "SU2", CampaignID: "VQS2021X00", QuestionnaireModelID: "Q1", Data: datatypes.JSON(`{}`), Comment: datatypes.JSON(`{}`)},
		{ID: "SU1", CampaignID: "VQS2021X00", QuestionnaireModelID: "Q2", Data: datatypes.JSON(`{}`), Comment: datatypes.JSON(`{}`)},
	}))

	listed, err := svc.GetCampaignSurveyUnits(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.Equal(t, int64(2), listed.Total)
	require.Len(t, listed.SurveyUnits, 2)
	assert.Equal(t, "SU1", listed.SurveyUnits[0].ID)
	assert.Equal(t, "Q2", listed.SurveyUnits[0].QuestionnaireModelID)

	_, err = svc.GetCampaignSurveyUnits(ctx, "UNKNOWN")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReferenceService_MetadataIsServedFromCacheUntilEvicted(t *testing.T) {
	svc, _, client, db := newReferenceService(t)
	ctx := context.Background()

	metadata, err := svc.GetCampaignMetadata(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":{"Year":"2021"}}`, string(metadata.Value))

	byQuestionnaire, err := svc.GetQuestionnaireMetadata(ctx, "Q2")
	require.NoError(t, err)
	assert.Equal(t, "VQS2021X00", byQuestionnaire.CampaignID)

	require.NoError(t, repository.NewCampaignRepository(db).Update(ctx, &models.Campaign{
		ID:       "VQS2021X00",
		Label:    "quality survey",
		Metadata: datatypes.JSON(`{"variables":{"Year":"2022"}}`),
	}))

	cached, err := svc.GetCampaignMetadata(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":{"Year":"2021"}}`, string(cached.Value))

	invalidator := cache.NewRedisInvalidator(client, "queen")
	require.NoError(t, invalidator.Apply(ctx, cache.CampaignUpserted("VQS2021X00")))

	fresh, err := svc.GetCampaignMetadata(ctx, "VQS2021X00")
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":{"Year":"2022"}}`, string(fresh.Value))

	freshByQuestionnaire, err := svc.GetQuestionnaireMetadata(ctx, "Q2")
	require.NoError(t, err)
	assert.JSONEq(t, `{"variables":{"Year":"2022"}}`, string(freshByQuestionnaire.Value))
}

func TestReferenceService_WithoutCache(t *testing.T) {
	db := testutil.NewTestDB(t)
	seedReferenceData(t, db)
	svc := NewReferenceService(db, nil)

	questionnaire, err := svc.GetQuestionnaire(context.Background(), "Q1")
	require.NoError(t, err)
	assert.Equal(t, "first", questionnaire.Label)
	require.NotNil(t, questionnaire.CampaignID)
	assert.Equal(t, "VQS2021X00", *questionnaire.CampaignID)
}
