package models

// IntegrationStatus is the outcome of integrating one entity
type IntegrationStatus string

const (
	IntegrationCreated IntegrationStatus = "CREATED"
	IntegrationUpdated IntegrationStatus = "UPDATED"
	IntegrationError   IntegrationStatus = "ERROR"
)

// IntegrationResultUnit is the result of one integrated entity or of a whole manifest section
type IntegrationResultUnit struct {
	ID      string            `json:"id" example:"VQS2021X00"`
	Status  IntegrationStatus `json:"status" example:"CREATED"`
	Message *string           `json:"message,omitempty" example:"A nomenclature with this id already exists"`
}

// IntegrationResult is the report returned by a context integration
type IntegrationResult struct {
	Campaign            *IntegrationResultUnit  `json:"campaign"`
	Nomenclatures       []IntegrationResultUnit `json:"nomenclatures"`
	QuestionnaireModels []IntegrationResultUnit `json:"questionnaireModels"`
}

// NewIntegrationResult returns an empty report with non-nil lists
func NewIntegrationResult() *IntegrationResult {
	return &IntegrationResult{
		Nomenclatures:       []IntegrationResultUnit{},
		QuestionnaireModels: []IntegrationResultUnit{},
	}
}

// Success builds a result unit without message
func Success(id string, status IntegrationStatus) IntegrationResultUnit {
	return IntegrationResultUnit{ID: id, Status: status}
}

// Failure builds an error result unit
func Failure(id, message string) IntegrationResultUnit {
	return IntegrationResultUnit{ID: id, Status: IntegrationError, Message: &message}
}
