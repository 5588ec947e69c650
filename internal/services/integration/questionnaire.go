package integration

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
)

type questionnaireDescriptor struct {
	ID              string
	Label           string
	FileName        string
	CampaignID      string
	NomenclatureIDs []string
}

func readQuestionnaireDescriptor(node *xmlquery.Node) questionnaireDescriptor {
	d := questionnaireDescriptor{
		ID:         childText(node, "Id"),
		Label:      childText(node, "Label"),
		FileName:   childText(node, "FileName"),
		CampaignID: strings.ToUpper(childText(node, "CampaignId")),
	}
	seen := make(map[string]bool)
	for _, n := range xmlquery.Find(node, ".//Nomenclature") {
		id := strings.TrimSpace(n.InnerText())
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		d.NomenclatureIDs = append(d.NomenclatureIDs, id)
	}
	return d
}

// processQuestionnaireModels creates or updates every questionnaire model of
// questionnaireModels.xml. A failing descriptor is reported and its siblings still run.
func (s *Service) processQuestionnaireModels(pc *parseContext) error {
	doc, err := s.loadManifest(pc, questionnaireSection)
	if err != nil || doc == nil {
		return err
	}

	for _, node := range xmlquery.Find(doc, "/QuestionnaireModels/*") {
		d := readQuestionnaireDescriptor(node)

		status, err := s.integrateQuestionnaireModel(pc, d)
		if err != nil && !isUnitError(err) {
			return err
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"questionnaire_id": d.ID,
				"campaign_id":      d.CampaignID,
			}).Infof("Questionnaire model rejected: %v", err)
		}
		questionnaireSection.outcome(pc, d.ID, status, err)
	}
	return nil
}

func (s *Service) integrateQuestionnaireModel(pc *parseContext, d questionnaireDescriptor) (models.IntegrationStatus, error) {
	refErr, err := s.checkQuestionnaireReferences(pc, d)
	if err != nil {
		return "", err
	}
	if refErr != nil {
		return "", refErr
	}

	payload, found, err := pc.archive.QuestionnairePayload(d.FileName)
	if err != nil {
		return "", err
	}
	if !found {
		return "", &PayloadNotFoundError{Kind: "Questionnaire model", FileName: d.FileName}
	}

	value, err := parseJSONObject(payload)
	if err != nil {
		return "", &PayloadParseError{FileName: d.FileName, Err: err}
	}

	nomenclatures, err := pc.gateways.Nomenclatures.GetByIDs(pc.ctx, d.NomenclatureIDs)
	if err != nil {
		return "", fmt.Errorf("failed to load nomenclatures of questionnaire model %s: %w", d.ID, err)
	}

	res, err := resolveOrCreate(pc.ctx, pc.gateways.QuestionnaireModels.FindByID, d.ID, func() *models.QuestionnaireModel {
		return &models.QuestionnaireModel{ID: d.ID}
	})
	if err != nil {
		return "", err
	}

	campaignID := d.CampaignID
	qm := res.Entity
	qm.Label = d.Label
	qm.Value = value
	qm.CampaignID = &campaignID
	qm.Nomenclatures = nomenclatures

	logger := logrus.WithFields(logrus.Fields{
		"questionnaire_id": d.ID,
		"campaign_id":      d.CampaignID,
	})
	status := models.IntegrationUpdated
	if res.IsNew {
		logger.Info("Creating questionnaire model")
		if err := pc.gateways.QuestionnaireModels.Create(pc.ctx, qm); err != nil {
			return "", fmt.Errorf("failed to create questionnaire model %s: %w", d.ID, err)
		}
		status = models.IntegrationCreated
	} else {
		logger.Info("Updating questionnaire model")
		if err := pc.gateways.QuestionnaireModels.Update(pc.ctx, qm); err != nil {
			return "", fmt.Errorf("failed to update questionnaire model %s: %w", d.ID, err)
		}
	}

	pc.emit(cache.QuestionnaireUpserted(d.ID)...)
	return status, nil
}
