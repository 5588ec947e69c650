package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jeandelest/Queen-Back-Office/internal/models"
)

type QuestionnaireModelRepository struct {
	db *gorm.DB
}

func NewQuestionnaireModelRepository(db *gorm.DB) *QuestionnaireModelRepository {
	return &QuestionnaireModelRepository{db: db}
}

// FindByID returns the questionnaire model with its required nomenclatures,
// or nil when it does not exist
func (r *QuestionnaireModelRepository) FindByID(ctx context.Context, id string) (*models.QuestionnaireModel, error) {
	var qm models.QuestionnaireModel
	err := r.db.WithContext(ctx).Preload("Nomenclatures").First(&qm, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &qm, nil
}

// Create creates the questionnaire model then links its required nomenclatures.
// The nomenclatures must already exist.
func (r *QuestionnaireModelRepository) Create(ctx context.Context, qm *models.QuestionnaireModel) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(qm).Error; err != nil {
		return err
	}
	return r.replaceNomenclatures(db, qm)
}

// Update overwrites label, value and campaign link and replaces the required nomenclature set
func (r *QuestionnaireModelRepository) Update(ctx context.Context, qm *models.QuestionnaireModel) error {
	db := r.db.WithContext(ctx)
	err := db.Model(&models.QuestionnaireModel{ID: qm.ID}).
		Select("label", "value", "campaign_id", "updated_at").
		Omit(clause.Associations).
		Updates(qm).Error
	if err != nil {
		return err
	}
	return r.replaceNomenclatures(db, qm)
}

func (r *QuestionnaireModelRepository) replaceNomenclatures(db *gorm.DB, qm *models.QuestionnaireModel) error {
	// only the join table is written, nomenclatures themselves are never modified
	association := db.Model(&models.QuestionnaireModel{ID: qm.ID}).
		Omit("Nomenclatures.*").
		Association("Nomenclatures")
	if len(qm.Nomenclatures) == 0 {
		return association.Clear()
	}
	return association.Replace(qm.Nomenclatures)
}

// RequiredNomenclatureIDs returns the ids of the nomenclatures a questionnaire model requires
func (r *QuestionnaireModelRepository) RequiredNomenclatureIDs(ctx context.Context, id string) ([]string, error) {
	ids := []string{}
	err := r.db.WithContext(ctx).
		Table("required_nomenclature").
		Where("questionnaire_model_id = ?", id).
		Order("nomenclature_id").
		Pluck("nomenclature_id", &ids).Error
	return ids, err
}

// ExistsByID checks whether a questionnaire model with this id is stored
func (r *QuestionnaireModelRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.QuestionnaireModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
