package sample

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/testutil"
	"github.com/jeandelest/Queen-Back-Office/internal/xmljson"
)

func TestService_Ingest(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{ID: "X1", Label: "Test", Metadata: datatypes.JSON(`{}`)}))
	for _, id := range []string{"Q1", "Q2"} {
		campaignID := "X1"
		require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
			ID: id, Label: id, Value: datatypes.JSON(`{}`), CampaignID: &campaignID,
		}))
	}

	reader := newTestReader(t, repos.Campaigns, xmljson.NewLunaticDataConverter(t.TempDir()))
	svc := NewService(db, reader)
	path := writeSample(t, validSample)

	resp, err := svc.Ingest(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "X1", resp.CampaignID)
	assert.Equal(t, 2, resp.SurveyUnits)

	count, err := repos.SurveyUnits.CountByCampaignID(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// loading the same file again hits the stored ids and creates nothing
	_, err = svc.Ingest(ctx, path)
	var dupErr *DuplicateIdentifierError
	require.True(t, errors.As(err, &dupErr))
	assert.True(t, dupErr.Stored)
	assert.Equal(t, "SU1", dupErr.ID)

	count, err = repos.SurveyUnits.CountByCampaignID(ctx, "X1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestService_IngestDuplicateInFileCreatesNothing(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	repos := repository.NewRepositories(db)

	require.NoError(t, repos.Campaigns.Create(ctx, &models.Campaign{ID: "X1", Metadata: datatypes.JSON(`{}`)}))
	campaignID := "X1"
	require.NoError(t, repos.QuestionnaireModels.Create(ctx, &models.QuestionnaireModel{
		ID: "Q1", Value: datatypes.JSON(`{}`), CampaignID: &campaignID,
	}))

	svc := NewService(db, newTestReader(t, repos.Campaigns, &countingConverter{}))
	_, err := svc.Ingest(ctx, writeSample(t, `<Campaign><Id>X1</Id><SurveyUnits>
		<SurveyUnit><Id>SU1</Id><QuestionnaireModelId>Q1</QuestionnaireModelId><Data><A/></Data></SurveyUnit>
		<SurveyUnit><Id>SU1</Id><QuestionnaireModelId>Q1</QuestionnaireModelId><Data><A/></Data></SurveyUnit>
	</SurveyUnits></Campaign>`))
	require.Error(t, err)

	count, err := repos.SurveyUnits.CountByCampaignID(ctx, "X1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
