package sample

import (
	"errors"
	"fmt"
)

// ErrCampaignNotResolved is returned when the sample does not name exactly one known campaign
var ErrCampaignNotResolved = errors.New("need to have exactly one known campaign in sample file")

// DuplicateIdentifierError reports a survey unit id seen twice, in the file or in the database
type DuplicateIdentifierError struct {
	ID     string
	Stored bool
}

func (e *DuplicateIdentifierError) Error() string {
	if e.Stored {
		return fmt.Sprintf("Survey unit with id : %s already exists", e.ID)
	}
	return fmt.Sprintf("Survey unit with id : %s is duplicated", e.ID)
}

// DataIntegrityError reports a survey unit whose questionnaire model is not part of the campaign
type DataIntegrityError struct {
	SurveyUnitID    string
	QuestionnaireID string
	CampaignID      string
}

func (e *DataIntegrityError) Error() string {
	return fmt.Sprintf("Error on find questionnaire by id %s : questionnaire not in campaign %s", e.QuestionnaireID, e.CampaignID)
}

// MissingDataError reports a survey unit without Data block
type MissingDataError struct {
	SurveyUnitID string
}

func (e *MissingDataError) Error() string {
	return fmt.Sprintf("Survey unit with id : %s does not have data", e.SurveyUnitID)
}

// IsContentError reports whether err comes from the sample content rather than
// from the infrastructure
func IsContentError(err error) bool {
	var (
		dupErr    *DuplicateIdentifierError
		integrity *DataIntegrityError
		missing   *MissingDataError
	)
	return errors.Is(err, ErrCampaignNotResolved) ||
		errors.As(err, &dupErr) ||
		errors.As(err, &integrity) ||
		errors.As(err, &missing)
}
