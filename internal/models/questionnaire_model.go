package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionnaireModel is the definition of a questionnaire and its reference-list dependencies
type QuestionnaireModel struct {
	ID         string         `json:"id" gorm:"primaryKey;type:varchar(255)"`
	Label      string         `json:"label" gorm:"type:varchar(255)"`
	Value      datatypes.JSON `json:"value"`
	CampaignID *string        `json:"campaign_id" gorm:"index;type:varchar(255)"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Nomenclatures []Nomenclature `json:"nomenclatures,omitempty" gorm:"many2many:required_nomenclature;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for the QuestionnaireModel model
func (QuestionnaireModel) TableName() string {
	return "questionnaire_models"
}

// NomenclatureIDs returns the ids of the required nomenclatures
func (q *QuestionnaireModel) NomenclatureIDs() []string {
	ids := make([]string, 0, len(q.Nomenclatures))
	for _, n := range q.Nomenclatures {
		ids = append(ids, n.ID)
	}
	return ids
}

// QuestionnaireModelResponse represents the response for questionnaire read operations
type QuestionnaireModelResponse struct {
	ID         string         `json:"id" example:"simpsons"`
	Label      string         `json:"label" example:"Questionnaire about the Simpsons tv show"`
	CampaignID *string        `json:"campaign_id" example:"SIMPSONS2020X00"`
	Value      datatypes.JSON `json:"value" swaggertype:"object"`
}
