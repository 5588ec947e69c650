package integration

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type nomenclatureDescriptor struct {
	ID       string
	Label    string
	FileName string
}

// processNomenclatures creates every nomenclature of nomenclatures.xml.
// A failing descriptor is reported and its siblings still run.
func (s *Service) processNomenclatures(pc *parseContext) error {
	doc, err := s.loadManifest(pc, nomenclatureSection)
	if err != nil || doc == nil {
		return err
	}

	for _, node := range xmlquery.Find(doc, "/Nomenclatures/*") {
		d := nomenclatureDescriptor{
			ID:       childText(node, "Id"),
			Label:    childText(node, "Label"),
			FileName: childText(node, "FileName"),
		}

		err := s.integrateNomenclature(pc, d)
		if err != nil && !isUnitError(err) {
			return err
		}
		if err != nil {
			logrus.WithField("nomenclature_id", d.ID).Infof("Nomenclature rejected: %v", err)
		}
		nomenclatureSection.outcome(pc, d.ID, models.IntegrationCreated, err)
	}
	return nil
}

func (s *Service) integrateNomenclature(pc *parseContext, d nomenclatureDescriptor) error {
	res, err := resolveOrCreate(pc.ctx, pc.gateways.Nomenclatures.FindByID, d.ID, func() *models.Nomenclature {
		return &models.Nomenclature{ID: d.ID, Label: d.Label}
	})
	if err != nil {
		return err
	}
	if !res.IsNew {
		return &DuplicateEntityError{Kind: "nomenclature", ID: d.ID}
	}

	payload, found, err := pc.archive.NomenclaturePayload(d.FileName)
	if err != nil {
		return err
	}
	if !found {
		return &PayloadNotFoundError{Kind: "Nomenclature", FileName: d.FileName}
	}

	value, err := parseJSONArray(payload)
	if err != nil {
		return &PayloadParseError{FileName: d.FileName, Err: err}
	}

	nomenclature := res.Entity
	nomenclature.Value = value
	logrus.WithField("nomenclature_id", d.ID).Info("Creating nomenclature")
	if err := pc.gateways.Nomenclatures.Create(pc.ctx, nomenclature); err != nil {
		return fmt.Errorf("failed to create nomenclature %s: %w", d.ID, err)
	}
	return nil
}
