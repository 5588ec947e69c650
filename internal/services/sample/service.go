package sample

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

// Service loads sample files and stores their survey units
type Service struct {
	reader *Reader
	uow    *repository.UnitOfWork
}

func NewService(db *gorm.DB, reader *Reader) *Service {
	return &Service{
		reader: reader,
		uow:    repository.NewUnitOfWork(db),
	}
}

// Ingest reads the sample at path and creates all its survey units in one
// transaction. A unit id already stored fails the whole sample.
func (s *Service) Ingest(ctx context.Context, path string) (*models.SampleIngestionResponse, error) {
	sample, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(sample.SurveyUnits))
	for _, unit := range sample.SurveyUnits {
		ids = append(ids, unit.ID)
	}

	err = s.uow.Do(ctx, func(repos *repository.Repositories) error {
		existing, err := repos.SurveyUnits.ExistingIDs(ctx, ids)
		if err != nil {
			return fmt.Errorf("failed to check survey units: %w", err)
		}
		if len(existing) > 0 {
			return &DuplicateIdentifierError{ID: existing[0], Stored: true}
		}
		if err := repos.SurveyUnits.CreateBatch(ctx, sample.SurveyUnits); err != nil {
			return fmt.Errorf("failed to create survey units: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":  sample.Campaign.ID,
		"survey_units": len(sample.SurveyUnits),
	}).Info("Sample ingested")

	return &models.SampleIngestionResponse{
		CampaignID:  sample.Campaign.ID,
		SurveyUnits: len(sample.SurveyUnits),
	}, nil
}
