package integration

import (
	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

// section identifies one manifest and the part of the report it fills
type section struct {
	manifest string
	schema   string
	record   func(r *models.IntegrationResult, unit models.IntegrationResultUnit)
}

var (
	campaignSection = section{
		manifest: CampaignManifest,
		schema:   CampaignSchema,
		record: func(r *models.IntegrationResult, unit models.IntegrationResultUnit) {
			r.Campaign = &unit
		},
	}
	nomenclatureSection = section{
		manifest: NomenclaturesManifest,
		schema:   NomenclaturesSchema,
		record: func(r *models.IntegrationResult, unit models.IntegrationResultUnit) {
			r.Nomenclatures = append(r.Nomenclatures, unit)
		},
	}
	questionnaireSection = section{
		manifest: QuestionnaireModelsManifest,
		schema:   QuestionnaireModelsSchema,
		record: func(r *models.IntegrationResult, unit models.IntegrationResultUnit) {
			r.QuestionnaireModels = append(r.QuestionnaireModels, unit)
		},
	}
)

// fail records a section-level error keyed by the manifest name
func (s section) fail(pc *parseContext, message string) {
	s.record(pc.result, models.Failure(s.manifest, message))
}

// outcome records the result of one entity of the section
func (s section) outcome(pc *parseContext, id string, status models.IntegrationStatus, err error) {
	if err != nil {
		s.record(pc.result, models.Failure(id, err.Error()))
		return
	}
	s.record(pc.result, models.Success(id, status))
}
