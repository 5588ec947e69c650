package models

import (
	"time"

	"gorm.io/datatypes"
)

// StateType is the collection status of a survey unit
type StateType string

const (
	StateInit        StateType = "INIT"
	StateCompleted   StateType = "COMPLETED"
	StateValidated   StateType = "VALIDATED"
	StateToExtract   StateType = "TOEXTRACT"
	StateExtracted   StateType = "EXTRACTED"
	StateWaitingSync StateType = "WAITING_SYNCHRONIZATION"
)

// SurveyUnitState holds the optional collection state of a survey unit
type SurveyUnitState struct {
	StateType   StateType `json:"state" gorm:"column:state_type;type:varchar(50)"`
	Date        int64     `json:"date" gorm:"column:state_date"`
	CurrentPage string    `json:"current_page" gorm:"column:state_current_page;type:varchar(50)"`
}

// SurveyUnit is one respondent's response record
type SurveyUnit struct {
	ID                   string         `json:"id" gorm:"primaryKey;type:varchar(255)"`
	CampaignID           string         `json:"campaign_id" gorm:"not null;index;type:varchar(255)"`
	QuestionnaireModelID string         `json:"questionnaire_id" gorm:"not null;index;type:varchar(255)"`
	Personalization      datatypes.JSON `json:"personalization,omitempty"`
	Data                 datatypes.JSON `json:"data"`
	Comment              datatypes.JSON `json:"comment"`

	State *SurveyUnitState `json:"state_data,omitempty" gorm:"embedded"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the SurveyUnit model
func (SurveyUnit) TableName() string {
	return "survey_units"
}

// CampaignSurveyUnitsResponse lists the survey units loaded for a campaign
type CampaignSurveyUnitsResponse struct {
	CampaignID  string       `json:"campaign_id" example:"VQS2021X00"`
	Total       int64        `json:"total" example:"2"`
	SurveyUnits []SurveyUnit `json:"survey_units"`
}
