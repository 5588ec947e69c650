package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/services"
)

// ReferenceHandler serves the reference data loaded by context integrations
type ReferenceHandler struct {
	references *services.ReferenceService
}

func NewReferenceHandler(references *services.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{references: references}
}

func (h *ReferenceHandler) respond(c *gin.Context, value interface{}, err error) {
	if err == nil {
		c.JSON(http.StatusOK, value)
		return
	}
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Failed to read reference data")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read reference data"})
}

// GetNomenclature godoc
// @Summary Get a nomenclature
// @Tags nomenclatures
// @Produce json
// @Security BearerAuth
// @Param id path string true "Nomenclature ID"
// @Success 200 {object} models.NomenclatureResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/nomenclatures/{id} [get]
func (h *ReferenceHandler) GetNomenclature(c *gin.Context) {
	nomenclature, err := h.references.GetNomenclature(c.Request.Context(), c.Param("id"))
	h.respond(c, nomenclature, err)
}

// GetQuestionnaire godoc
// @Summary Get a questionnaire model
// @Tags questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire model ID"
// @Success 200 {object} models.QuestionnaireModelResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/questionnaires/{id} [get]
func (h *ReferenceHandler) GetQuestionnaire(c *gin.Context) {
	questionnaire, err := h.references.GetQuestionnaire(c.Request.Context(), c.Param("id"))
	h.respond(c, questionnaire, err)
}

// GetQuestionnaireNomenclatures godoc
// @Summary List the nomenclatures required by a questionnaire model
// @Tags questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire model ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/questionnaires/{id}/required-nomenclatures [get]
func (h *ReferenceHandler) GetQuestionnaireNomenclatures(c *gin.Context) {
	ids, err := h.references.GetQuestionnaireNomenclatureIDs(c.Request.Context(), c.Param("id"))
	h.respond(c, ids, err)
}

// GetQuestionnaireMetadata godoc
// @Summary Get the metadata of the campaign owning a questionnaire model
// @Tags questionnaires
// @Produce json
// @Security BearerAuth
// @Param id path string true "Questionnaire model ID"
// @Success 200 {object} models.CampaignMetadataResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/questionnaires/{id}/metadata [get]
func (h *ReferenceHandler) GetQuestionnaireMetadata(c *gin.Context) {
	metadata, err := h.references.GetQuestionnaireMetadata(c.Request.Context(), c.Param("id"))
	h.respond(c, metadata, err)
}

// GetCampaignMetadata godoc
// @Summary Get the metadata of a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignMetadataResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/metadata [get]
func (h *ReferenceHandler) GetCampaignMetadata(c *gin.Context) {
	metadata, err := h.references.GetCampaignMetadata(c.Request.Context(), strings.ToUpper(c.Param("id")))
	h.respond(c, metadata, err)
}

// GetCampaignNomenclatures godoc
// @Summary List the nomenclatures required by the questionnaire models of a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {array} string
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/required-nomenclatures [get]
func (h *ReferenceHandler) GetCampaignNomenclatures(c *gin.Context) {
	ids, err := h.references.GetCampaignNomenclatureIDs(c.Request.Context(), strings.ToUpper(c.Param("id")))
	h.respond(c, ids, err)
}

// GetCampaignSurveyUnits godoc
// @Summary List the survey units loaded for a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path string true "Campaign ID"
// @Success 200 {object} models.CampaignSurveyUnitsResponse
// @Failure 404 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/campaigns/{id}/survey-units [get]
func (h *ReferenceHandler) GetCampaignSurveyUnits(c *gin.Context) {
	units, err := h.references.GetCampaignSurveyUnits(c.Request.Context(), strings.ToUpper(c.Param("id")))
	h.respond(c, units, err)
}
