// Package integration loads a context archive (campaign, nomenclatures and
// questionnaire models) into the database and reports the outcome per entity.
package integration

import (
	"context"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
)

type Service struct {
	transactor Transactor
	validator  Validator
}

func NewService(transactor Transactor, validator Validator) *Service {
	return &Service{
		transactor: transactor,
		validator:  validator,
	}
}

// IntegrateContext integrates the archive at path in one transaction.
// Nomenclatures run first so questionnaire models can reference them, then the
// campaign, then questionnaire models.
//
// Entity-level failures are reported in the result. An error means nothing was
// committed. The returned cache events must be applied once the call returns.
func (s *Service) IntegrateContext(ctx context.Context, path string) (*models.IntegrationResult, []cache.Event, error) {
	archive, err := OpenArchive(path)
	if err != nil {
		return nil, nil, err
	}
	defer archive.Close()

	logger := logrus.WithField("archive", filepath.Base(path))
	logger.Info("Integrating context archive")

	var pc *parseContext
	err = s.transactor.WithinTransaction(ctx, func(g Gateways) error {
		pc = newParseContext(ctx, archive, g)
		if err := s.processNomenclatures(pc); err != nil {
			return err
		}
		if err := s.processCampaign(pc); err != nil {
			return err
		}
		return s.processQuestionnaireModels(pc)
	})
	if err != nil {
		logger.WithError(err).Error("Context integration aborted")
		return nil, nil, err
	}

	logger.WithFields(logrus.Fields{
		"nomenclatures":        len(pc.result.Nomenclatures),
		"questionnaire_models": len(pc.result.QuestionnaireModels),
	}).Info("Context archive integrated")
	return pc.result, pc.events, nil
}
