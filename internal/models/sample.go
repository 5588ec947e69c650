package models

// Sample is the transient aggregate built from one sample file
type Sample struct {
	SourceName  string          `json:"source_name"`
	Campaign    CampaignSummary `json:"campaign"`
	SurveyUnits []SurveyUnit    `json:"survey_units"`
}

// SampleIngestionResponse represents the response of a sample upload
type SampleIngestionResponse struct {
	CampaignID  string `json:"campaign_id" example:"VQS2021X00"`
	SurveyUnits int    `json:"survey_units" example:"42"`
}
