package handlers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
	"github.com/jeandelest/Queen-Back-Office/internal/services/excel"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
	"github.com/jeandelest/Queen-Back-Office/internal/utils"
)

// ContextIntegrator integrates a context archive stored on disk
type ContextIntegrator interface {
	IntegrateContext(ctx context.Context, path string) (*models.IntegrationResult, []cache.Event, error)
}

// IntegrationHandler handles context archive uploads
type IntegrationHandler struct {
	integrator  ContextIntegrator
	invalidator cache.Invalidator
	files       *services.FileService
	reports     *excel.ReportService
}

// NewIntegrationHandler creates a new IntegrationHandler instance.
// invalidator may be nil when no cache is configured.
func NewIntegrationHandler(integrator ContextIntegrator, invalidator cache.Invalidator, files *services.FileService, reports *excel.ReportService) *IntegrationHandler {
	return &IntegrationHandler{
		integrator:  integrator,
		invalidator: invalidator,
		files:       files,
		reports:     reports,
	}
}

// IntegrateContext handles POST /api/v1/admin/campaign/context
// @Summary Integrate a campaign context
// @Description Integrate a zip holding campaign.xml, nomenclatures.xml, questionnaireModels.xml and the referenced json files. Entity errors are reported in the result, not as HTTP errors.
// @Tags integration
// @Accept multipart/form-data
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param file formData file true "Context archive"
// @Param format query string false "Set to xlsx to download the report as a workbook"
// @Success 200 {object} models.IntegrationResult
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/campaign/context [post]
func (h *IntegrationHandler) IntegrateContext(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided", "details": err.Error()})
		return
	}

	path, err := h.files.SpoolUpload(fileHeader)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store uploaded file", "details": err.Error()})
		return
	}
	defer h.files.Remove(path)

	result, events, err := h.integrator.IntegrateContext(c.Request.Context(), path)
	if err != nil {
		if errors.Is(err, integration.ErrArchiveRead) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid context archive", "details": err.Error()})
			return
		}
		utils.CaptureError(err, map[string]string{"pipeline": "context", "file": fileHeader.Filename})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Context integration failed", "details": err.Error()})
		return
	}

	h.applyCacheEvents(c.Request.Context(), events)

	if c.Query("format") == "xlsx" {
		h.writeReport(c, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *IntegrationHandler) applyCacheEvents(ctx context.Context, events []cache.Event) {
	if h.invalidator == nil || len(events) == 0 {
		return
	}
	if err := h.invalidator.Apply(ctx, events); err != nil {
		logrus.WithError(err).WithField("events", len(events)).Warn("Cache invalidation failed after context integration")
	}
}

func (h *IntegrationHandler) writeReport(c *gin.Context, result *models.IntegrationResult) {
	var buf bytes.Buffer
	if err := h.reports.WriteIntegrationResult(&buf, result); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build report", "details": err.Error()})
		return
	}

	fileName := "integration-result.xlsx"
	if result.Campaign != nil && result.Campaign.ID != "" {
		fileName = fmt.Sprintf("integration-%s.xlsx", result.Campaign.ID)
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, fileName))
	c.Data(http.StatusOK, excel.ContentType, buf.Bytes())
}
