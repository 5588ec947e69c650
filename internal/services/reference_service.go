package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/database/repository"
	"github.com/jeandelest/Queen-Back-Office/internal/models"
	"github.com/jeandelest/Queen-Back-Office/internal/services/cache"
)

// ErrNotFound is returned when the requested reference data does not exist
var ErrNotFound = errors.New("not found")

// ReferenceService serves the integrated reference data through the read-through cache.
// Its cache keys are the ones the ingestion pipeline invalidates.
type ReferenceService struct {
	repos *repository.Repositories
	cache *cache.ReadThrough
}

func NewReferenceService(db *gorm.DB, readThrough *cache.ReadThrough) *ReferenceService {
	return &ReferenceService{
		repos: repository.NewRepositories(db),
		cache: readThrough,
	}
}

// GetNomenclature returns the value of a nomenclature
func (s *ReferenceService) GetNomenclature(ctx context.Context, id string) (*models.NomenclatureResponse, error) {
	return cache.Fetch(ctx, s.cache, cache.Nomenclature, id, func(ctx context.Context) (*models.NomenclatureResponse, error) {
		nomenclature, err := s.repos.Nomenclatures.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load nomenclature %s: %w", id, err)
		}
		if nomenclature == nil {
			return nil, fmt.Errorf("nomenclature %s: %w", id, ErrNotFound)
		}
		return &models.NomenclatureResponse{
			ID:    nomenclature.ID,
			Label: nomenclature.Label,
			Value: nomenclature.Value,
		}, nil
	})
}

// QuestionnaireExists reports whether a questionnaire model is stored.
// Only positive answers are cached: questionnaire upserts do not evict this cache.
func (s *ReferenceService) QuestionnaireExists(ctx context.Context, id string) (bool, error) {
	exists, err := cache.Fetch(ctx, s.cache, cache.QuestionnaireExist, id, func(ctx context.Context) (bool, error) {
		exists, err := s.repos.QuestionnaireModels.ExistsByID(ctx, id)
		if err == nil && !exists {
			err = ErrNotFound
		}
		return exists, err
	})
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return exists, err
}

// GetQuestionnaire returns a questionnaire model definition
func (s *ReferenceService) GetQuestionnaire(ctx context.Context, id string) (*models.QuestionnaireModelResponse, error) {
	return cache.Fetch(ctx, s.cache, cache.Questionnaire, id, func(ctx context.Context) (*models.QuestionnaireModelResponse, error) {
		qm, err := s.repos.QuestionnaireModels.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load questionnaire %s: %w", id, err)
		}
		if qm == nil {
			return nil, fmt.Errorf("questionnaire %s: %w", id, ErrNotFound)
		}
		return &models.QuestionnaireModelResponse{
			ID:         qm.ID,
			Label:      qm.Label,
			CampaignID: qm.CampaignID,
			Value:      qm.Value,
		}, nil
	})
}

// GetQuestionnaireNomenclatureIDs returns the ids of the nomenclatures a questionnaire model requires
func (s *ReferenceService) GetQuestionnaireNomenclatureIDs(ctx context.Context, id string) ([]string, error) {
	exists, err := s.QuestionnaireExists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to check questionnaire %s: %w", id, err)
	}
	if !exists {
		return nil, fmt.Errorf("questionnaire %s: %w", id, ErrNotFound)
	}

	return cache.Fetch(ctx, s.cache, cache.QuestionnaireNomenclatures, id, func(ctx context.Context) ([]string, error) {
		return s.repos.QuestionnaireModels.RequiredNomenclatureIDs(ctx, id)
	})
}

// GetCampaignNomenclatureIDs returns the sorted ids of the nomenclatures required by
// any questionnaire model of the campaign. The questionnaire list is read from the
// database, each questionnaire's requirements through the cache.
func (s *ReferenceService) GetCampaignNomenclatureIDs(ctx context.Context, campaignID string) ([]string, error) {
	summary, err := s.repos.Campaigns.GetSummary(ctx, campaignID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", campaignID, err)
	}

	seen := make(map[string]bool)
	ids := []string{}
	for _, questionnaireID := range summary.QuestionnaireIDs {
		required, err := cache.Fetch(ctx, s.cache, cache.QuestionnaireNomenclatures, questionnaireID, func(ctx context.Context) ([]string, error) {
			return s.repos.QuestionnaireModels.RequiredNomenclatureIDs(ctx, questionnaireID)
		})
		if err != nil {
			return nil, err
		}
		for _, id := range required {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// GetCampaignMetadata returns the metadata document of a campaign
func (s *ReferenceService) GetCampaignMetadata(ctx context.Context, campaignID string) (*models.CampaignMetadataResponse, error) {
	return cache.Fetch(ctx, s.cache, cache.CampaignMetadata, campaignID, func(ctx context.Context) (*models.CampaignMetadataResponse, error) {
		return s.loadCampaignMetadata(ctx, campaignID)
	})
}

// GetQuestionnaireMetadata returns the metadata document of the campaign owning a questionnaire model
func (s *ReferenceService) GetQuestionnaireMetadata(ctx context.Context, questionnaireID string) (*models.CampaignMetadataResponse, error) {
	return cache.Fetch(ctx, s.cache, cache.MetadataByQuestionnaire, questionnaireID, func(ctx context.Context) (*models.CampaignMetadataResponse, error) {
		qm, err := s.repos.QuestionnaireModels.FindByID(ctx, questionnaireID)
		if err != nil {
			return nil, fmt.Errorf("failed to load questionnaire %s: %w", questionnaireID, err)
		}
		if qm == nil || qm.CampaignID == nil {
			return nil, fmt.Errorf("questionnaire %s: %w", questionnaireID, ErrNotFound)
		}
		return s.loadCampaignMetadata(ctx, *qm.CampaignID)
	})
}

// GetCampaignSurveyUnits lists the survey units of a campaign. Samples emit no
// cache events, so this is always read from the database.
func (s *ReferenceService) GetCampaignSurveyUnits(ctx context.Context, campaignID string) (*models.CampaignSurveyUnitsResponse, error) {
	exists, err := s.repos.Campaigns.ExistsByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to check campaign %s: %w", campaignID, err)
	}
	if !exists {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, ErrNotFound)
	}

	total, err := s.repos.SurveyUnits.CountByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to count survey units of %s: %w", campaignID, err)
	}
	units, err := s.repos.SurveyUnits.GetByCampaignID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load survey units of %s: %w", campaignID, err)
	}
	if units == nil {
		units = []models.SurveyUnit{}
	}
	return &models.CampaignSurveyUnitsResponse{
		CampaignID:  campaignID,
		Total:       total,
		SurveyUnits: units,
	}, nil
}

func (s *ReferenceService) loadCampaignMetadata(ctx context.Context, campaignID string) (*models.CampaignMetadataResponse, error) {
	campaign, err := s.repos.Campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return nil, fmt.Errorf("failed to load campaign %s: %w", campaignID, err)
	}
	if campaign == nil {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, ErrNotFound)
	}

	value := campaign.Metadata
	if len(value) == 0 {
		value = datatypes.JSON("{}")
	}
	return &models.CampaignMetadataResponse{CampaignID: campaign.ID, Value: value}, nil
}
