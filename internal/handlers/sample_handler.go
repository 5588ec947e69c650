package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services"
	"github.com/jeandelest/Queen-Back-Office/internal/services/integration"
	"github.com/jeandelest/Queen-Back-Office/internal/services/sample"
	"github.com/jeandelest/Queen-Back-Office/internal/utils"
)

// SampleIngester loads a sample file stored on disk
type SampleIngester interface {
	Ingest(ctx context.Context, path string) (*models.SampleIngestionResponse, error)
}

// SampleHandler handles sample uploads
type SampleHandler struct {
	ingester SampleIngester
	files    *services.FileService
}

func NewSampleHandler(ingester SampleIngester, files *services.FileService) *SampleHandler {
	return &SampleHandler{ingester: ingester, files: files}
}

// IngestSample handles POST /api/v1/admin/campaign/samples
// @Summary Load a sample
// @Description Create the survey units of a sample XML file. The whole file is rejected on the first invalid survey unit.
// @Tags integration
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Sample XML file"
// @Success 201 {object} models.SampleIngestionResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/admin/campaign/samples [post]
func (h *SampleHandler) IngestSample(c *gin.Context) {
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

	response, err := h.ingester.Ingest(c.Request.Context(), path)
	if err != nil {
		var sve *integration.SchemaValidationError
		if errors.As(err, &sve) || sample.IsContentError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		utils.CaptureError(err, map[string]string{"pipeline": "sample", "file": fileHeader.Filename})
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Sample ingestion failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, response)
}
