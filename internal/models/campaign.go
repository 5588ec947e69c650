package models

import (
	"time"

	"gorm.io/datatypes"
)

// Campaign represents a survey-data-collection operation
type Campaign struct {
	ID       string         `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Label    string         `json:"label" gorm:"type:varchar(255)"`
	Metadata datatypes.JSON `json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	QuestionnaireModels []QuestionnaireModel `json:"questionnaire_models,omitempty" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
	SurveyUnits         []SurveyUnit         `json:"-" gorm:"foreignKey:CampaignID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// QuestionnaireIDs returns the ids of the loaded questionnaire models
func (c *Campaign) QuestionnaireIDs() []string {
	ids := make([]string, 0, len(c.QuestionnaireModels))
	for _, qm := range c.QuestionnaireModels {
		ids = append(ids, qm.ID)
	}
	return ids
}

// CampaignSummary is the light projection of a campaign used when loading samples
type CampaignSummary struct {
	ID               string   `json:"id" example:"VQS2021X00"`
	Label            string   `json:"label" example:"Enquête qualité"`
	QuestionnaireIDs []string `json:"questionnaire_ids"`
}

// HasQuestionnaire reports whether the questionnaire model belongs to the campaign
func (s *CampaignSummary) HasQuestionnaire(questionnaireID string) bool {
	for _, id := range s.QuestionnaireIDs {
		if id == questionnaireID {
			return true
		}
	}
	return false
}

// CampaignMetadataResponse represents the metadata document of a campaign
type CampaignMetadataResponse struct {
	CampaignID string         `json:"campaign_id" example:"VQS2021X00"`
	Value      datatypes.JSON `json:"value" swaggertype:"object"`
}
