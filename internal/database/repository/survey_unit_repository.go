package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type SurveyUnitRepository struct {
	db *gorm.DB
}

func NewSurveyUnitRepository(db *gorm.DB) *SurveyUnitRepository {
	return &SurveyUnitRepository{db: db}
}

// ExistingIDs returns which of the given ids are already stored
func (r *SurveyUnitRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	existing := []string{}
	if len(ids) == 0 {
		return existing, nil
	}
	err := r.db.WithContext(ctx).
		Model(&models.SurveyUnit{}).
		Where("id IN ?", ids).
		Order("id").
		Pluck("id", &existing).Error
	return existing, err
}

// CreateBatch creates multiple survey units in batch
func (r *SurveyUnitRepository) CreateBatch(ctx context.Context, units []models.SurveyUnit) error {
	if len(units) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).CreateInBatches(units, 100).Error
}

// GetByCampaignID retrieves all survey units of a campaign
func (r *SurveyUnitRepository) GetByCampaignID(ctx context.Context, campaignID string) ([]models.SurveyUnit, error) {
	var units []models.SurveyUnit
	err := r.db.WithContext(ctx).Where("campaign_id = ?", campaignID).Order("id").Find(&units).Error
	return units, err
}

// CountByCampaignID counts the survey units of a campaign
func (r *SurveyUnitRepository) CountByCampaignID(ctx context.Context, campaignID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.SurveyUnit{}).Where("campaign_id = ?", campaignID).Count(&count).Error
	return count, err
}
