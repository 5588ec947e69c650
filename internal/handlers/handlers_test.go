package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/services/excel"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
	"github.com/jeandelest/Queen-Back-Office/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeIntegrator struct {
	result  *models.IntegrationResult
	events  []cache.Event
	err     error
	content []byte
}

func (f *fakeIntegrator) IntegrateContext(_ context.Context, path string) (*models.IntegrationResult, []cache.Event, error) {
	f.content, _ = os.ReadFile(path)
	return f.result, f.events, f.err
}

type recordingInvalidator struct {
	applied []cache.Event
	err     error
}

func (r *recordingInvalidator) Apply(_ context.Context, events []cache.Event) error {
	r.applied = append(r.applied, events...)
	return r.err
}

type fakeIngester struct {
	response *models.SampleIngestionResponse
	err      error
}

func (f *fakeIngester) Ingest(context.Context, string) (*models.SampleIngestionResponse, error) {
	return f.response, f.err
}

func multipartRequest(t *testing.T, target, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func sampleResult() *models.IntegrationResult {
	result := models.NewIntegrationResult()
	campaign := models.Success("VQS2021X00", models.IntegrationCreated)
	result.Campaign = &campaign
	result.Nomenclatures = append(result.Nomenclatures, models.Failure("cities2019", "A nomenclature with this id already exists"))
	return result
}

func newIntegrationEngine(t *testing.T, integrator ContextIntegrator, invalidator cache.Invalidator) (*gin.Engine, string) {
	t.Helper()
	dir := t.TempDir()
	h := NewIntegrationHandler(integrator, invalidator, services.NewFileService(dir), excel.NewReportService())
	r := gin.New()
	r.POST("/context", h.IntegrateContext)
	return r, dir
}

func TestIntegrateContext_ReturnsResultAndAppliesEvents(t *testing.T) {
	integrator := &fakeIntegrator{
		result: sampleResult(),
		events: cache.CampaignUpserted("VQS2021X00"),
	}
	invalidator := &recordingInvalidator{}
	r, dir := newIntegrationEngine(t, integrator, invalidator)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/context", "context.zip", []byte("zip-bytes")))

	require.Equal(t, http.StatusOK, w.Code)
	var got models.IntegrationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.NotNil(t, got.Campaign)
	assert.Equal(t, models.IntegrationCreated, got.Campaign.Status)
	require.Len(t, got.Nomenclatures, 1)
	assert.Equal(t, models.IntegrationError, got.Nomenclatures[0].Status)

	assert.Equal(t, []byte("zip-bytes"), integrator.content)
	assert.Equal(t, cache.CampaignUpserted("VQS2021X00"), invalidator.applied)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "spooled upload must be removed")
}

func TestIntegrateContext_InvalidationFailureIsNotFatal(t *testing.T) {
	integrator := &fakeIntegrator{result: sampleResult(), events: cache.QuestionnaireUpserted("Q1")}
	r, _ := newIntegrationEngine(t, integrator, &recordingInvalidator{err: errors.New("redis down")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/context", "context.zip", []byte("zip")))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIntegrateContext_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"unreadable archive", fmt.Errorf("%w: unsupported content type text/plain", integration.ErrArchiveRead), http.StatusBadRequest},
		{"transaction failure", errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invalidator := &recordingInvalidator{}
			r, _ := newIntegrationEngine(t, &fakeIntegrator{err: tt.err}, invalidator)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, "/context", "context.zip", []byte("zip")))

			assert.Equal(t, tt.status, w.Code)
			assert.Empty(t, invalidator.applied)
		})
	}
}

func TestIntegrateContext_MissingFile(t *testing.T) {
	r, _ := newIntegrationEngine(t, &fakeIntegrator{}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/context", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestIntegrateContext_XLSXReport(t *testing.T) {
	r, _ := newIntegrationEngine(t, &fakeIntegrator{result: sampleResult()}, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, multipartRequest(t, "/context?format=xlsx", "context.zip", []byte("zip")))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, excel.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "integration-VQS2021X00.xlsx")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Integration")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestIngestSample_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"created", nil, http.StatusCreated},
		{"duplicate unit", &sample.DuplicateIdentifierError{ID: "11", Stored: true}, http.StatusBadRequest},
		{"unknown campaign", sample.ErrCampaignNotResolved, http.StatusBadRequest},
		{"schema", &integration.SchemaValidationError{Schema: integration.SampleSchema, Detail: "bad"}, http.StatusBadRequest},
		{"database", errors.New("connection refused"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ingester := &fakeIngester{err: tt.err}
			if tt.err == nil {
				ingester.response = &models.SampleIngestionResponse{CampaignID: "VQS2021X00", SurveyUnits: 2}
			}
			h := NewSampleHandler(ingester, services.NewFileService(t.TempDir()))
			r := gin.New()
			r.POST("/samples", h.IngestSample)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, multipartRequest(t, "/samples", "sample.xml", []byte("<Campaign/>")))

			assert.Equal(t, tt.status, w.Code)
			if tt.err == nil {
				assert.JSONEq(t, `{"campaign_id":"VQS2021X00","survey_units":2}`, w.Body.String())
			}
		})
	}
}

func TestReferenceHandler_NotFoundAndFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	require.NoError(t, db.Create(&models.Nomenclature{ID: "cities2019", Label: "cities", Value: []byte(`[]`)}).Error)

	h := NewReferenceHandler(services.NewReferenceService(db, nil))
	r := gin.New()
	r.GET("/nomenclatures/:id", h.GetNomenclature)
	r.GET("/campaigns/:id/metadata", h.GetCampaignMetadata)
	r.GET("/campaigns/:id/survey-units", h.GetCampaignSurveyUnits)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nomenclatures/cities2019", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":"cities2019","label":"cities","value":[]}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nomenclatures/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/campaigns/unknown/metadata", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/campaigns/unknown/survey-units", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.NoError(t, db.Create(&models.Campaign{ID: "VQS2021X00", Label: "quality"}).Error)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/campaigns/vqs2021x00/survey-units", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"campaign_id":"VQS2021X00","total":0,"survey_units":[]}`, w.Body.String())
}
