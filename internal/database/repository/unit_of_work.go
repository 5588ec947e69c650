package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repositories groups the repositories sharing one connection or transaction
type Repositories struct {
	Campaigns           *CampaignRepository
	Nomenclatures       *NomenclatureRepository
	QuestionnaireModels *QuestionnaireModelRepository
	SurveyUnits         *SurveyUnitRepository
}

func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Campaigns:           NewCampaignRepository(db),
		Nomenclatures:       NewNomenclatureRepository(db),
		QuestionnaireModels: NewQuestionnaireModelRepository(db),
		SurveyUnits:         NewSurveyUnitRepository(db),
	}
}

type UnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) *UnitOfWork {
	return &UnitOfWork{db: db}
}

// Do runs fn inside one transaction. Returning an error rolls everything back.
func (u *UnitOfWork) Do(ctx context.Context, fn func(repos *Repositories) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx))
	})
}
