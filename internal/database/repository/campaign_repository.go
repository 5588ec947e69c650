package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type CampaignRepository struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) *CampaignRepository {
	return &CampaignRepository{db: db}
}

// FindByID returns the campaign or nil when it does not exist
func (r *CampaignRepository) FindByID(ctx context.Context, id string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// ExistsByID checks whether a campaign with this id is stored
func (r *CampaignRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Campaign{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// Create creates a new campaign without touching its questionnaire models
func (r *CampaignRepository) Create(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(campaign).Error
}

// Update overwrites the label and metadata of an existing campaign
func (r *CampaignRepository) Update(ctx context.Context, campaign *models.Campaign) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{ID: campaign.ID}).
		Select("label", "metadata", "updated_at").
		Omit(clause.Associations).
		Updates(campaign).Error
}

// GetSummary loads the campaign label and the ids of its questionnaire models.
// Returns gorm.ErrRecordNotFound when the campaign does not exist.
func (r *CampaignRepository) GetSummary(ctx context.Context, id string) (*models.CampaignSummary, error) {
	var campaign models.Campaign
	err := r.db.WithContext(ctx).
		Preload("QuestionnaireModels", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "campaign_id").Order("id")
		}).
		First(&campaign, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &models.CampaignSummary{
		ID:               campaign.ID,
		Label:            campaign.Label,
		QuestionnaireIDs: campaign.QuestionnaireIDs(),
	}, nil
}
