package excel

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

func TestWriteIntegrationResult(t *testing.T) {
	result := models.NewIntegrationResult()
	campaign := models.Success("X1", models.IntegrationCreated)
	result.Campaign = &campaign
	result.Nomenclatures = append(result.Nomenclatures,
		models.Success("N1", models.IntegrationCreated),
		models.Failure("N2", "A nomenclature with this id already exists"),
	)
	result.QuestionnaireModels = append(result.QuestionnaireModels, models.Success("Q1", models.IntegrationUpdated))

	var buf bytes.Buffer
	require.NoError(t, NewReportService().WriteIntegrationResult(&buf, result))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(reportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, reportColumns, rows[0])
	assert.Equal(t, []string{"campaign", "X1", "CREATED"}, rows[1])
	assert.Equal(t, []string{"nomenclatures", "N2", "ERROR", "A nomenclature with this id already exists"}, rows[3])
	assert.Equal(t, []string{"questionnaireModels", "Q1", "UPDATED"}, rows[4])
}

func TestWriteIntegrationResult_Nil(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, NewReportService().WriteIntegrationResult(&buf, nil))
}

func TestColumnToLetter(t *testing.T) {
	assert.Equal(t, "A", columnToLetter(1))
	assert.Equal(t, "Z", columnToLetter(26))
	assert.Equal(t, "AA", columnToLetter(27))
}
